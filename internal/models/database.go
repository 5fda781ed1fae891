package models

type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSL      string
	Timezone string
	DSN      string
}

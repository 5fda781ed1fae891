package configs

import (
	"errors"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

var (
	config *Config
	once   sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		config = load()
	})
	return config
}

// NewConfig wraps an already populated viper instance. Unset keys fall back to defaults.
func NewConfig(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{Viper: v}
}

const DefaultJwtSecret = "change-me-in-production"

var ErrInsecureJwtSecret = errors.New("jwt.secret must be set to a non default value in production")

// Validate rejects settings that are only acceptable outside production.
func (c *Config) Validate() error {
	if c.Viper.GetString("app.env") != "production" {
		return nil
	}
	secret := c.Viper.GetString("jwt.secret")
	if secret == "" || secret == DefaultJwtSecret {
		return ErrInsecureJwtSecret
	}
	return nil
}

func load() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GRAMMABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// .env is a development convenience only
	if v.GetString("app.env") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded:", err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Failed to read config file: %v", err)
		}
		log.Println("Config file not found, using defaults and environment")
	}

	return &Config{Viper: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.uploads_dir", "./uploads")
	// a picture plus the form fields around it
	v.SetDefault("server.max_body_bytes", 11<<20)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "grammable")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.bucket", "gram-pictures")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("jwt.secret", DefaultJwtSecret)
	v.SetDefault("jwt.expiration_time", 86400)

	v.SetDefault("cors.allow_origins", []string{"http://localhost:8000"})

	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

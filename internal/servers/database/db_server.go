package database

import (
	"fmt"
	"grammable/configs"
	"grammable/internal/models"
	"sync"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

func GetDB(config *configs.Config) *gorm.DB {
	once.Do(func() {
		initialize(config)
	})
	return db
}

func initialize(config *configs.Config) {
	var err error
	db, err = Open(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migrated successfully")
}

// Open connects with the dialect named by database.driver (postgres, mysql or sqlite).
func Open(config *configs.Config) (*gorm.DB, error) {
	dbConfig := getDBConfig(config)
	dialector, err := getDialector(dbConfig)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{}
	if config.Viper.GetString("app.env") == "test" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	conn, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	if dbConfig.Driver == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// an in-memory database only exists on its own connection
		sqlDB.SetMaxOpenConns(1)
	}
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Gram{},
		&models.Comment{},
	)
}

func getDBConfig(config *configs.Config) *models.DBConfig {
	return &models.DBConfig{
		Driver:   config.Viper.GetString("database.driver"),
		Host:     config.Viper.GetString("database.host"),
		Port:     config.Viper.GetInt("database.port"),
		User:     config.Viper.GetString("database.user"),
		Password: config.Viper.GetString("database.password"),
		Name:     config.Viper.GetString("database.name"),
		SSL:      config.Viper.GetString("database.ssl"),
		Timezone: config.Viper.GetString("database.timezone"),
		DSN:      config.Viper.GetString("database.dsn"),
	}
}

func getDialector(dbConfig *models.DBConfig) (gorm.Dialector, error) {
	switch dbConfig.Driver {
	case "", "postgres":
		dsn := dbConfig.DSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
				dbConfig.Host, dbConfig.User, dbConfig.Password, dbConfig.Name, dbConfig.Port, dbConfig.SSL, dbConfig.Timezone,
			)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := dbConfig.DSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%v:%v@tcp(%v:%v)/%v?charset=utf8mb4&parseTime=True&loc=UTC",
				dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name,
			)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		dsn := dbConfig.DSN
		if dsn == "" {
			dsn = dbConfig.Name + ".db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbConfig.Driver)
	}
}

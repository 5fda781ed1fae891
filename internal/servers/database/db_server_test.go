package database

import (
	"grammable/configs"
	"grammable/internal/models"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

func TestGetDialector(t *testing.T) {
	dialector, err := getDialector(&models.DBConfig{Driver: "postgres", Host: "db", Port: 5432})
	require.NoError(t, err)
	assert.IsType(t, &postgres.Dialector{}, dialector)

	dialector, err = getDialector(&models.DBConfig{Driver: "mysql", Host: "db", Port: 3306})
	require.NoError(t, err)
	assert.IsType(t, &mysql.Dialector{}, dialector)

	_, err = getDialector(&models.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestOpenAndMigrateSqlite(t *testing.T) {
	v := viper.New()
	v.Set("app.env", "test")
	v.Set("database.driver", "sqlite")
	v.Set("database.dsn", ":memory:")

	conn, err := Open(configs.NewConfig(v))
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	assert.True(t, conn.Migrator().HasTable(&models.User{}))
	assert.True(t, conn.Migrator().HasTable(&models.Gram{}))
	assert.True(t, conn.Migrator().HasTable(&models.Comment{}))
}

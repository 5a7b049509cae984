package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "u", Pass: "p", DB: "shop"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=shop sslmode=disable", cfg.DSN())
}

func TestCloseReleasesPool(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 1, User: "u", Pass: "p", DB: "shop"}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, Close(db))
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}

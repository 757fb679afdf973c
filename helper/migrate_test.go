package helper_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/helper"
)

func TestMigrationDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "hotel_migrations"
	cfg.DB.Postgres.Write.Host = "primary.internal"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "hotel"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Name = "hotel"
	cfg.DB.Postgres.Write.SSLMode = "disable"
	cfg.DB.Postgres.Read.Host = "replica.internal"

	dsn, err := url.Parse(helper.MigrationDSN(cfg))
	require.NoError(t, err)

	assert.Equal(t, "primary.internal:5432", dsn.Host)
	assert.Equal(t, "/test_hotel", dsn.Path)
	assert.Equal(t, "hotel_migrations", dsn.Query().Get("x-migrations-table"))
	assert.Equal(t, "disable", dsn.Query().Get("sslmode"))
}

func TestRun_UnknownAction(t *testing.T) {
	err := helper.Run(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}

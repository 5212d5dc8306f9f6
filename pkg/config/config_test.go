package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.15", cfg.Sales.TaxRate)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "postgres://postgres:@localhost:5432/radiator_inventory?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("DB_PASSWORD", "p@ss:word")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("METRICS_ENABLED", "0")
	v.Set("SALES_TAX_RATE", "0.10")
	v.Set("HTTP_PORT", "not-a-number")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.10", cfg.Sales.TaxRate)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword@localhost:6543")

	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("JWT_SECRET", "x")
	_, err = fromViper(v)
	assert.NoError(t, err)
}

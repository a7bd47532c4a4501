package config

import (
	"context"
	"testing"
	"time"

	"github.com/stake-plus/qotd/src/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, data.Migrate(db))
	return db
}

func TestBotConfigPrecedence(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	require.NoError(t, db.Create(&data.Setting{Name: "command_prefix", Value: "!!", Active: true}).Error)
	require.NoError(t, db.Create(&data.Setting{Name: "command_timeout_seconds", Value: "oops", Active: true}).Error)

	t.Setenv("QOTD_PREFIX", "env!")
	t.Setenv("QOTD_ADMIN_ROLE", "mods")
	t.Setenv("CONFIG_CACHE_TTL", "60")
	t.Setenv("ENABLE_BOT", "off")

	cfg, err := LoadBotConfig(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "!!", cfg.Prefix)
	assert.Equal(t, "mods", cfg.AdminRole)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, DefaultCommandTimeout, cfg.CommandTimeout)
	assert.False(t, cfg.Enabled)
}

func TestAPIConfigDefaults(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	t.Setenv("API_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadAPIConfig(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIListen, cfg.Listen)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestParseBoolDefault(t *testing.T) {
	assert.True(t, parseBoolDefault("YES", false))
	assert.False(t, parseBoolDefault("0", true))
	assert.True(t, parseBoolDefault("maybe", true))
}

package config

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPrefix         = "q!"
	DefaultAdminRole      = "qotd_admin"
	DefaultCacheTTL       = 5 * time.Minute
	DefaultCommandTimeout = 10 * time.Second
	DefaultAPIListen      = ":8080"
)

// BotConfig drives the Discord module.
type BotConfig struct {
	Base
	Prefix         string
	AdminRole      string
	CacheTTL       time.Duration
	CommandTimeout time.Duration
	Enabled        bool
}

// LoadBotConfig loads the Discord module configuration.
func LoadBotConfig(ctx context.Context, db *gorm.DB) (BotConfig, error) {
	base, err := LoadBase(ctx, db)
	return BotConfig{
		Base:           base,
		Prefix:         GetSetting("command_prefix", "QOTD_PREFIX", DefaultPrefix),
		AdminRole:      GetSetting("admin_role", "QOTD_ADMIN_ROLE", DefaultAdminRole),
		CacheTTL:       getSecondsSetting("config_cache_ttl_seconds", "CONFIG_CACHE_TTL", DefaultCacheTTL),
		CommandTimeout: getSecondsSetting("command_timeout_seconds", "COMMAND_TIMEOUT", DefaultCommandTimeout),
		Enabled:        getBoolSetting("enable_bot", "ENABLE_BOT", true),
	}, err
}

// APIConfig drives the admin HTTP API.
type APIConfig struct {
	Base
	Listen         string
	JWTSecret      string
	AllowedOrigins []string
	Enabled        bool
}

// LoadAPIConfig loads the admin API configuration.
func LoadAPIConfig(ctx context.Context, db *gorm.DB) (APIConfig, error) {
	base, err := LoadBase(ctx, db)
	return APIConfig{
		Base:           base,
		Listen:         GetSetting("api_listen", "API_LISTEN", DefaultAPIListen),
		JWTSecret:      GetSetting("jwt_secret", "JWT_SECRET", ""),
		AllowedOrigins: parseCSV(GetSetting("api_allowed_origins", "API_ALLOWED_ORIGINS", "")),
		Enabled:        getBoolSetting("enable_api", "ENABLE_API", false),
	}, err
}

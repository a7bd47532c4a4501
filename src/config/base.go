// Package config resolves runtime settings: the settings table first, then
// the environment, then a built-in default.
package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stake-plus/qotd/src/data"
	"gorm.io/gorm"
)

// Base contains the fields every module needs.
type Base struct {
	Token    string
	RedisURL string
}

// LoadBase refreshes the settings cache and resolves the common fields.
// A failed refresh is returned but the env fallbacks still apply.
func LoadBase(ctx context.Context, db *gorm.DB) (Base, error) {
	var loadErr error
	if db != nil {
		loadErr = data.LoadSettings(ctx, db)
	}
	return Base{
		Token:    GetSetting("discord_token", "DISCORD_TOKEN", ""),
		RedisURL: GetSetting("redis_url", "REDIS_URL", ""),
	}, loadErr
}

// GetSetting retrieves a setting with env fallback.
func GetSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" && envKey != "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return val
}

func getBoolSetting(name, envKey string, defaultValue bool) bool {
	return parseBoolDefault(GetSetting(name, envKey, ""), defaultValue)
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// getSecondsSetting reads a positive whole number of seconds.
func getSecondsSetting(name, envKey string, defaultValue time.Duration) time.Duration {
	raw := GetSetting(name, envKey, "")
	if raw == "" {
		return defaultValue
	}
	secs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || secs <= 0 {
		return defaultValue
	}
	return time.Duration(secs) * time.Second
}

func parseCSV(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

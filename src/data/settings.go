package data

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all active settings from the database into cache.
func LoadSettings(ctx context.Context, db *gorm.DB) error {
	var settings []Setting
	if err := db.WithContext(ctx).Where("active = ?", true).Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string, len(settings))
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value from cache (call LoadSettings first)
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

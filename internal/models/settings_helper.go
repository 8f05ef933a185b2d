package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/nicolog/internal/constants"
)

// DefaultSettings returns the settings used on first access.
func DefaultSettings() Settings {
	return Settings{
		DailyMgLimit:        constants.DefaultDailyMgLimit,
		DailyEventLimit:     constants.DefaultDailyEventLimit,
		MorningLimitEnabled: constants.DefaultMorningLimitEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DailyMgLimit <= 0 {
		settings.DailyMgLimit = constants.DefaultDailyMgLimit
	}
	if settings.DailyEventLimit <= 0 {
		settings.DailyEventLimit = constants.DefaultDailyEventLimit
	}
}

// MergeSettings overrides only the keys present in data on top of base.
// Unknown keys are ignored.
func MergeSettings(base Settings, data map[string]json.RawMessage) (Settings, error) {
	settings := base

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingDailyMgLimit:
			err = json.Unmarshal(value, &settings.DailyMgLimit)
		case constants.SettingDailyEventLimit:
			err = json.Unmarshal(value, &settings.DailyEventLimit)
		case constants.SettingMorningLimitEnabled:
			err = json.Unmarshal(value, &settings.MorningLimitEnabled)
		case constants.SettingTimezoneOffsetMinutes:
			err = json.Unmarshal(value, &settings.TimezoneOffsetMinutes)
		}
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}

	return settings, nil
}

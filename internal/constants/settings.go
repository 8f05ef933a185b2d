package constants

const (
	// Settings keys as they appear in the settings slot and export files
	SettingDailyMgLimit          = "dailyMgLimit"
	SettingDailyEventLimit       = "dailyEventLimit"
	SettingMorningLimitEnabled   = "morningLimitEnabled"
	SettingTimezoneOffsetMinutes = "timezoneOffsetMinutes"

	// Default Settings Values
	DefaultDailyMgLimit        = 40.0
	DefaultDailyEventLimit     = 5
	DefaultMorningLimitEnabled = false

	// Level bounds for focus and anxiety
	MinLevel = 1
	MaxLevel = 10

	// Vape strength is given per ml; one ml is assumed to be this many puffs
	PuffsPerMl = 200.0

	// Default strengths offered by the entry form
	DefaultVapeStrength      = 20.0 // mg/ml
	DefaultCigaretteStrength = 1.0  // mg per cigarette
	DefaultSnusStrength      = 8.0  // mg per portion
)

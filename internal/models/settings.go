package models

// Settings represents application-wide settings
type Settings struct {
	DailyMgLimit          float64 `json:"dailyMgLimit"`          // daily nicotine budget in mg
	DailyEventLimit       int     `json:"dailyEventLimit"`       // daily intake event budget, not used by the aggregations
	MorningLimitEnabled   bool    `json:"morningLimitEnabled"`   // reserved, always false for now
	TimezoneOffsetMinutes int     `json:"timezoneOffsetMinutes"` // informational only
}

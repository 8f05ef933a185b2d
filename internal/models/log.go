package models

import "time"

// Source is the kind of nicotine product a record refers to
type Source string

const (
	SourceVape       Source = "Vape"
	SourceCigarettes Source = "Cigarettes"
	SourceSnus       Source = "Snus"
	SourceNone       Source = "None"
)

// Sources lists the selectable intake sources, check-in last
var Sources = []Source{SourceVape, SourceCigarettes, SourceSnus, SourceNone}

// Valid reports whether s is one of the known sources
func (s Source) Valid() bool {
	switch s {
	case SourceVape, SourceCigarettes, SourceSnus, SourceNone:
		return true
	}
	return false
}

// TimeOfDay is the part of the day a record was created in
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimesOfDay lists the buckets in display order
var TimesOfDay = []TimeOfDay{Morning, Afternoon, Evening, Night}

// TimeOfDayForHour maps a local hour (0-23) to its bucket.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// LogRecord is one intake or check-in event.
//
// Date and TimeOfDay are computed once when the record is created and are
// never derived from Timestamp again.
type LogRecord struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Date          string    `json:"date"` // YYYY-MM-DD format
	TimeOfDay     TimeOfDay `json:"timeOfDay,omitempty"`
	Source        Source    `json:"source"`
	UnitType      string    `json:"unitType"`
	Amount        float64   `json:"amount"`
	EstimatedMg   float64   `json:"estimatedMg"`
	Reason        *string   `json:"reason"`
	HealthEffects []string  `json:"healthEffects"`
	FocusLevel    *int      `json:"focusLevel,omitempty"`
	AnxietyLevel  *int      `json:"anxietyLevel,omitempty"`
	ClearThinking *bool     `json:"clearThinking,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// IsCheckInOnly reports whether the record carries no intake
func (r LogRecord) IsCheckInOnly() bool {
	return r.Source == SourceNone && r.Amount == 0
}

// HasCheckIn reports whether any check-in field has been filled in
func (r LogRecord) HasCheckIn() bool {
	return r.FocusLevel != nil || r.AnxietyLevel != nil || r.ClearThinking != nil || r.Notes != nil
}

// LogPatch holds field updates for an existing record. Nil fields are left
// untouched.
type LogPatch struct {
	Source        *Source   `json:"source,omitempty"`
	UnitType      *string   `json:"unitType,omitempty"`
	Amount        *float64  `json:"amount,omitempty"`
	EstimatedMg   *float64  `json:"estimatedMg,omitempty"`
	Reason        *string   `json:"reason,omitempty"`
	HealthEffects *[]string `json:"healthEffects,omitempty"`
	FocusLevel    *int      `json:"focusLevel,omitempty"`
	AnxietyLevel  *int      `json:"anxietyLevel,omitempty"`
	ClearThinking *bool     `json:"clearThinking,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// Apply shallow-merges the patch into r and returns the result
func (p LogPatch) Apply(r LogRecord) LogRecord {
	if p.Source != nil {
		r.Source = *p.Source
	}
	if p.UnitType != nil {
		r.UnitType = *p.UnitType
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.EstimatedMg != nil {
		r.EstimatedMg = *p.EstimatedMg
	}
	if p.Reason != nil {
		r.Reason = p.Reason
	}
	if p.HealthEffects != nil {
		r.HealthEffects = append([]string(nil), (*p.HealthEffects)...)
	}
	if p.FocusLevel != nil {
		r.FocusLevel = p.FocusLevel
	}
	if p.AnxietyLevel != nil {
		r.AnxietyLevel = p.AnxietyLevel
	}
	if p.ClearThinking != nil {
		r.ClearThinking = p.ClearThinking
	}
	if p.Notes != nil {
		r.Notes = p.Notes
	}
	return r
}

// CheckIn is the set of self-reported fields recorded after an intake
type CheckIn struct {
	FocusLevel    *int    `json:"focusLevel,omitempty"`
	AnxietyLevel  *int    `json:"anxietyLevel,omitempty"`
	ClearThinking *bool   `json:"clearThinking,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Patch converts the check-in into a record patch
func (c CheckIn) Patch() LogPatch {
	return LogPatch{
		FocusLevel:    c.FocusLevel,
		AnxietyLevel:  c.AnxietyLevel,
		ClearThinking: c.ClearThinking,
		Notes:         c.Notes,
	}
}

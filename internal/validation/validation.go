package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/utils"
)

// IssueType represents the type of validation issue
type IssueType string

const (
	IssueDuplicateID    IssueType = "duplicate_id"
	IssueMissingID      IssueType = "missing_id"
	IssueInvalidSource  IssueType = "invalid_source"
	IssueInvalidAmount  IssueType = "invalid_amount"
	IssueInvalidLevel   IssueType = "invalid_level"
	IssueInvalidDate    IssueType = "invalid_date"
	IssueInvalidBucket  IssueType = "invalid_time_of_day"
	IssueKindMismatch   IssueType = "kind_mismatch"
	IssueInvalidSetting IssueType = "invalid_setting"
)

// Issue represents a single problem found in stored data
type Issue struct {
	Type        IssueType
	Description string
	RecordIDs   []string
}

// ValidationResult contains all detected issues
type ValidationResult struct {
	Issues []Issue
}

// HasIssues returns true if there are any issues
func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "No issues detected."
	}

	report := "Issues detected:\n"
	for _, issue := range vr.Issues {
		report += fmt.Sprintf("- %s\n", issue.Description)
	}
	return report
}

// Validator checks records and settings
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRecords checks every record and the collection as a whole.
func (v *Validator) ValidateRecords(records []models.LogRecord) ValidationResult {
	result := ValidationResult{Issues: []Issue{}}

	idCount := make(map[string]int)
	for i, rec := range records {
		if rec.ID == "" {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueMissingID,
				Description: fmt.Sprintf("Record at position %d has no id", i),
			})
		} else {
			idCount[rec.ID]++
		}

		if err := ValidateRecord(rec); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        issueTypeOf(err),
				Description: fmt.Sprintf("Record %s: %v", label(rec, i), err),
				RecordIDs:   nonEmpty(rec.ID),
			})
		}
	}

	var duplicates []string
	for id, n := range idCount {
		if n > 1 {
			duplicates = append(duplicates, id)
		}
	}
	sort.Strings(duplicates)
	for _, id := range duplicates {
		result.Issues = append(result.Issues, Issue{
			Type:        IssueDuplicateID,
			Description: fmt.Sprintf("Duplicate record id: %s (%d copies)", id, idCount[id]),
			RecordIDs:   []string{id},
		})
	}

	return result
}

// ValidateSettings checks the settings record.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Issues: []Issue{}}
	if err := ValidateSettings(settings); err != nil {
		result.Issues = append(result.Issues, Issue{
			Type:        IssueInvalidSetting,
			Description: err.Error(),
		})
	}
	return result
}

// fieldError tags an error with the issue type it maps to
type fieldError struct {
	kind IssueType
	msg  string
}

func (e *fieldError) Error() string { return e.msg }

func issueTypeOf(err error) IssueType {
	if fe, ok := err.(*fieldError); ok {
		return fe.kind
	}
	return IssueInvalidAmount
}

func label(rec models.LogRecord, i int) string {
	if rec.ID != "" {
		return rec.ID
	}
	return fmt.Sprintf("#%d", i)
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

// ValidateRecord returns the first problem with a single record.
func ValidateRecord(rec models.LogRecord) error {
	if !rec.Source.Valid() {
		return &fieldError{IssueInvalidSource, fmt.Sprintf("unknown source %q", rec.Source)}
	}
	if err := ValidateAmount(rec.Amount); err != nil {
		return err
	}
	if math.IsNaN(rec.EstimatedMg) || rec.EstimatedMg < 0 {
		return &fieldError{IssueInvalidAmount, fmt.Sprintf("estimated mg must be non-negative, got %v", rec.EstimatedMg)}
	}
	if rec.Source == models.SourceNone && rec.Amount != 0 {
		return &fieldError{IssueKindMismatch, "check-in record has a non-zero amount"}
	}
	if !utils.ValidateDate(rec.Date) {
		return &fieldError{IssueInvalidDate, fmt.Sprintf("invalid date %q", rec.Date)}
	}
	if rec.TimeOfDay != "" && !validTimeOfDay(rec.TimeOfDay) {
		return &fieldError{IssueInvalidBucket, fmt.Sprintf("unknown time of day %q", rec.TimeOfDay)}
	}
	if err := ValidateLevel("focus", rec.FocusLevel); err != nil {
		return err
	}
	return ValidateLevel("anxiety", rec.AnxietyLevel)
}

func validTimeOfDay(tod models.TimeOfDay) bool {
	for _, t := range models.TimesOfDay {
		if t == tod {
			return true
		}
	}
	return false
}

// ValidateLevel checks an optional 1-10 rating.
func ValidateLevel(name string, level *int) error {
	if level == nil {
		return nil
	}
	if *level < constants.MinLevel || *level > constants.MaxLevel {
		return &fieldError{IssueInvalidLevel, fmt.Sprintf("%s level must be between %d and %d, got %d", name, constants.MinLevel, constants.MaxLevel, *level)}
	}
	return nil
}

// ValidateAmount checks an intake quantity.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return &fieldError{IssueInvalidAmount, fmt.Sprintf("amount must be a non-negative number, got %v", amount)}
	}
	return nil
}

// ValidateCheckIn checks the levels of a check-in.
func ValidateCheckIn(c models.CheckIn) error {
	if err := ValidateLevel("focus", c.FocusLevel); err != nil {
		return err
	}
	return ValidateLevel("anxiety", c.AnxietyLevel)
}

// ValidatePatch checks the fields a patch would set.
func ValidatePatch(p models.LogPatch) error {
	if p.Source != nil && !p.Source.Valid() {
		return &fieldError{IssueInvalidSource, fmt.Sprintf("unknown source %q", *p.Source)}
	}
	if p.Amount != nil {
		if err := ValidateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.EstimatedMg != nil && (math.IsNaN(*p.EstimatedMg) || *p.EstimatedMg < 0) {
		return &fieldError{IssueInvalidAmount, fmt.Sprintf("estimated mg must be non-negative, got %v", *p.EstimatedMg)}
	}
	if err := ValidateLevel("focus", p.FocusLevel); err != nil {
		return err
	}
	return ValidateLevel("anxiety", p.AnxietyLevel)
}

// ValidateSettings checks the user-editable limits.
func ValidateSettings(s models.Settings) error {
	if math.IsNaN(s.DailyMgLimit) || s.DailyMgLimit <= 0 {
		return &fieldError{IssueInvalidSetting, fmt.Sprintf("daily mg limit must be positive, got %v", s.DailyMgLimit)}
	}
	if s.DailyEventLimit <= 0 {
		return &fieldError{IssueInvalidSetting, fmt.Sprintf("daily event limit must be positive, got %d", s.DailyEventLimit)}
	}
	if s.TimezoneOffsetMinutes < -14*60 || s.TimezoneOffsetMinutes > 14*60 {
		return &fieldError{IssueInvalidSetting, fmt.Sprintf("timezone offset out of range: %d minutes", s.TimezoneOffsetMinutes)}
	}
	return nil
}

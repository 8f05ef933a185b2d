// Package forms builds the huh forms shared by the command line and the
// dashboard, and converts their bound values into domain types.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/dose"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/validation"
	"github.com/julianstephens/nicolog/internal/wizard"
)

// Review actions
const (
	ActionSave   = "save"
	ActionBack   = "back"
	ActionCancel = "cancel"
)

// Tri-state answers for clear thinking
const (
	AnswerSkip = ""
	AnswerYes  = "yes"
	AnswerNo   = "no"
)

// OtherReason is the select value that reveals the free-text reason input
const OtherReason = "__other__"

var ErrCancelled = errors.New("entry cancelled")

func theme() *huh.Theme {
	return huh.ThemeDracula()
}

func levelOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("Skip", 0)}
	for i := constants.MinLevel; i <= constants.MaxLevel; i++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
	}
	return opts
}

func positiveNumber(label string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", label)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be greater than zero", label)
		}
		return nil
	}
}

// CheckInFormModel holds the check-in form values. A zero level means skipped.
type CheckInFormModel struct {
	Focus         int
	Anxiety       int
	ClearThinking string
	Notes         string
}

// CheckIn converts the form values, leaving skipped fields nil
func (fm CheckInFormModel) CheckIn() models.CheckIn {
	var c models.CheckIn
	if fm.Focus > 0 {
		focus := fm.Focus
		c.FocusLevel = &focus
	}
	if fm.Anxiety > 0 {
		anxiety := fm.Anxiety
		c.AnxietyLevel = &anxiety
	}
	switch fm.ClearThinking {
	case AnswerYes:
		v := true
		c.ClearThinking = &v
	case AnswerNo:
		v := false
		c.ClearThinking = &v
	}
	if notes := strings.TrimSpace(fm.Notes); notes != "" {
		c.Notes = &notes
	}
	return c
}

// NewCheckInForm creates the focus/anxiety check-in form
func NewCheckInForm(fm *CheckInFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus (1-10)").
				Options(levelOptions()...).
				Value(&fm.Focus),
			huh.NewSelect[int]().
				Title("Anxiety (1-10)").
				Options(levelOptions()...).
				Value(&fm.Anxiety),
			huh.NewSelect[string]().
				Title("Thinking clearly?").
				Options(
					huh.NewOption("Skip", AnswerSkip),
					huh.NewOption("Yes", AnswerYes),
					huh.NewOption("No", AnswerNo),
				).
				Value(&fm.ClearThinking),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(theme())
}

// EntryFormModel holds the values bound to the intake entry forms
type EntryFormModel struct {
	Source       models.Source
	Amount       string
	Strength     string
	Reason       string
	CustomReason string
	Effects      []string
	Action       string
}

// NewEntryStepForm creates the form for the wizard's current step, pre-filled
// from what the wizard already holds.
func NewEntryStepForm(w *wizard.Wizard, fm *EntryFormModel) *huh.Form {
	var group *huh.Group

	switch w.Step() {
	case wizard.StepSource:
		if w.Source().Valid() {
			fm.Source = w.Source()
		}
		opts := make([]huh.Option[models.Source], 0, len(models.Sources))
		for _, s := range models.Sources {
			label := string(s)
			if s == models.SourceNone {
				label = "None (check-in only)"
			}
			opts = append(opts, huh.NewOption(label, s))
		}
		group = huh.NewGroup(
			huh.NewSelect[models.Source]().
				Title("What did you use?").
				Options(opts...).
				Value(&fm.Source),
		)

	case wizard.StepAmount:
		amount, strength := w.Amount()
		if amount > 0 {
			fm.Amount = strconv.FormatFloat(amount, 'f', -1, 64)
		}
		fm.Strength = strconv.FormatFloat(strength, 'f', -1, 64)
		group = huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("How many %s?", dose.UnitFor(w.Source()))).
				Value(&fm.Amount).
				Validate(positiveNumber("amount")),
			huh.NewInput().
				Title(fmt.Sprintf("Strength (%s)", dose.StrengthUnitFor(w.Source()))).
				Value(&fm.Strength).
				Validate(positiveNumber("strength")),
		)

	case wizard.StepReason:
		opts := []huh.Option[string]{huh.NewOption("Skip", "")}
		for _, r := range constants.Reasons {
			opts = append(opts, huh.NewOption(r, r))
		}
		opts = append(opts, huh.NewOption("Other...", OtherReason))
		group = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Why?").
				Options(opts...).
				Value(&fm.Reason),
			huh.NewInput().
				Title("Other reason").
				Description("Only used when 'Other...' is selected").
				Value(&fm.CustomReason),
		)

	case wizard.StepEffects:
		group = huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Any effects?").
				Options(huh.NewOptions(constants.HealthEffects...)...).
				Value(&fm.Effects),
		)

	case wizard.StepReview:
		fm.Action = ActionSave
		group = huh.NewGroup(
			huh.NewNote().
				Title("Review").
				Description(Summary(w)),
			huh.NewSelect[string]().
				Options(
					huh.NewOption("Save", ActionSave),
					huh.NewOption("Back", ActionBack),
					huh.NewOption("Cancel", ActionCancel),
				).
				Value(&fm.Action),
		)
	}

	return huh.NewForm(group).WithTheme(theme())
}

// ApplyEntryStep moves the form values into the wizard and advances it. At
// review it returns the draft on save, steps back on back, and returns
// ErrCancelled on cancel. A nil record with a nil error means keep going.
func ApplyEntryStep(w *wizard.Wizard, fm *EntryFormModel) (*models.LogRecord, error) {
	switch w.Step() {
	case wizard.StepSource:
		w.SetSource(fm.Source)

	case wizard.StepAmount:
		amount, err := strconv.ParseFloat(strings.TrimSpace(fm.Amount), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", fm.Amount)
		}
		strength, err := strconv.ParseFloat(strings.TrimSpace(fm.Strength), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid strength %q", fm.Strength)
		}
		w.SetAmount(amount, strength)

	case wizard.StepReason:
		reason := fm.Reason
		if reason == OtherReason {
			reason = fm.CustomReason
		}
		w.SetReason(reason)

	case wizard.StepEffects:
		w.SetEffects(fm.Effects)

	case wizard.StepReview:
		switch fm.Action {
		case ActionBack:
			return nil, w.Back()
		case ActionCancel:
			return nil, ErrCancelled
		default:
			draft, err := w.Draft()
			if err != nil {
				return nil, err
			}
			return &draft, nil
		}
	}

	return nil, w.Next()
}

// Summary renders the wizard's current inputs for the review step
func Summary(w *wizard.Wizard) string {
	var b strings.Builder
	source := w.Source()
	fmt.Fprintf(&b, "Source: %s\n", source)
	if source != models.SourceNone {
		amount, strength := w.Amount()
		fmt.Fprintf(&b, "Amount: %g %s at %g %s\n", amount, dose.UnitFor(source), strength, dose.StrengthUnitFor(source))
		fmt.Fprintf(&b, "Estimated: %.2f mg\n", w.EstimatedMg())
	}
	if draft, err := w.Draft(); err == nil {
		if draft.Reason != nil {
			fmt.Fprintf(&b, "Reason: %s\n", *draft.Reason)
		}
		if len(draft.HealthEffects) > 0 {
			fmt.Fprintf(&b, "Effects: %s\n", strings.Join(draft.HealthEffects, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// SettingsFormModel holds the settings form values as entered
type SettingsFormModel struct {
	DailyMgLimit          string
	DailyEventLimit       string
	MorningLimitEnabled   bool
	TimezoneOffsetMinutes string
}

// NewSettingsFormModel pre-fills the form from s
func NewSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		DailyMgLimit:          strconv.FormatFloat(s.DailyMgLimit, 'f', -1, 64),
		DailyEventLimit:       strconv.Itoa(s.DailyEventLimit),
		MorningLimitEnabled:   s.MorningLimitEnabled,
		TimezoneOffsetMinutes: strconv.Itoa(s.TimezoneOffsetMinutes),
	}
}

// Settings parses and validates the form values
func (fm SettingsFormModel) Settings() (models.Settings, error) {
	mg, err := strconv.ParseFloat(strings.TrimSpace(fm.DailyMgLimit), 64)
	if err != nil {
		return models.Settings{}, fmt.Errorf("invalid daily mg limit %q", fm.DailyMgLimit)
	}
	events, err := strconv.Atoi(strings.TrimSpace(fm.DailyEventLimit))
	if err != nil {
		return models.Settings{}, fmt.Errorf("invalid daily event limit %q", fm.DailyEventLimit)
	}
	offset, err := strconv.Atoi(strings.TrimSpace(fm.TimezoneOffsetMinutes))
	if err != nil {
		return models.Settings{}, fmt.Errorf("invalid timezone offset %q", fm.TimezoneOffsetMinutes)
	}

	s := models.Settings{
		DailyMgLimit:          mg,
		DailyEventLimit:       events,
		MorningLimitEnabled:   fm.MorningLimitEnabled,
		TimezoneOffsetMinutes: offset,
	}
	if err := validation.ValidateSettings(s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// NewSettingsForm creates the settings editing form
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily limit (mg)").
				Value(&fm.DailyMgLimit).
				Validate(positiveNumber("daily mg limit")),
			huh.NewInput().
				Title("Daily events limit").
				Value(&fm.DailyEventLimit).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("event limit must be a positive number")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Morning limit").
				Value(&fm.MorningLimitEnabled),
			huh.NewInput().
				Title("Timezone offset (minutes)").
				Description("Informational only").
				Value(&fm.TimezoneOffsetMinutes).
				Validate(func(s string) error {
					_, err := strconv.Atoi(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(theme())
}

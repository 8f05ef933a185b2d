package forms

import (
	"errors"
	"testing"

	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/wizard"
)

func TestCheckInFormModel(t *testing.T) {
	tests := []struct {
		name    string
		fm      CheckInFormModel
		focus   *int
		anxiety *int
		clear   *bool
		notes   *string
	}{
		{name: "all skipped", fm: CheckInFormModel{Notes: "   "}},
		{
			name:    "all filled",
			fm:      CheckInFormModel{Focus: 7, Anxiety: 2, ClearThinking: AnswerNo, Notes: " calm "},
			focus:   intPtr(7),
			anxiety: intPtr(2),
			clear:   boolPtr(false),
			notes:   strPtr("calm"),
		},
		{name: "clear thinking yes", fm: CheckInFormModel{ClearThinking: AnswerYes}, clear: boolPtr(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.fm.CheckIn()
			if !equalInt(c.FocusLevel, tt.focus) || !equalInt(c.AnxietyLevel, tt.anxiety) {
				t.Errorf("unexpected levels %v/%v", c.FocusLevel, c.AnxietyLevel)
			}
			if (c.ClearThinking == nil) != (tt.clear == nil) || (c.ClearThinking != nil && *c.ClearThinking != *tt.clear) {
				t.Errorf("unexpected clear thinking %v", c.ClearThinking)
			}
			if (c.Notes == nil) != (tt.notes == nil) || (c.Notes != nil && *c.Notes != *tt.notes) {
				t.Errorf("unexpected notes %v", c.Notes)
			}
		})
	}
}

func TestApplyEntryStepFullFlow(t *testing.T) {
	w := wizard.New()
	fm := &EntryFormModel{Source: models.SourceCigarettes}

	steps := []func(){
		func() {},
		func() { fm.Amount, fm.Strength = "2", "1.5" },
		func() { fm.Reason, fm.CustomReason = OtherReason, "Long drive" },
		func() { fm.Effects = []string{"Alert"} },
	}
	for _, fill := range steps {
		fill()
		record, err := ApplyEntryStep(w, fm)
		if err != nil {
			t.Fatalf("step %s failed: %v", w.Step(), err)
		}
		if record != nil {
			t.Fatalf("unexpected record before review")
		}
	}

	if w.Step() != wizard.StepReview {
		t.Fatalf("expected review, got %s", w.Step())
	}

	fm.Action = ActionSave
	record, err := ApplyEntryStep(w, fm)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected a draft on save")
	}
	if record.EstimatedMg != 3 {
		t.Errorf("expected 3 mg, got %v", record.EstimatedMg)
	}
	if record.Reason == nil || *record.Reason != "Long drive" {
		t.Errorf("expected custom reason, got %v", record.Reason)
	}
}

func TestApplyEntryStepReviewActions(t *testing.T) {
	setup := func() (*wizard.Wizard, *EntryFormModel) {
		w := wizard.New()
		fm := &EntryFormModel{Source: models.SourceNone}
		for i := 0; i < 3; i++ {
			if _, err := ApplyEntryStep(w, fm); err != nil {
				t.Fatalf("advance failed: %v", err)
			}
		}
		return w, fm
	}

	t.Run("back", func(t *testing.T) {
		w, fm := setup()
		fm.Action = ActionBack
		record, err := ApplyEntryStep(w, fm)
		if err != nil || record != nil {
			t.Fatalf("unexpected result %v, %v", record, err)
		}
		if w.Step() != wizard.StepEffects {
			t.Errorf("expected effects, got %s", w.Step())
		}
	})

	t.Run("cancel", func(t *testing.T) {
		w, fm := setup()
		fm.Action = ActionCancel
		if _, err := ApplyEntryStep(w, fm); !errors.Is(err, ErrCancelled) {
			t.Errorf("expected ErrCancelled, got %v", err)
		}
	})
}

func TestApplyEntryStepRejectsBadAmount(t *testing.T) {
	w := wizard.New()
	fm := &EntryFormModel{Source: models.SourceVape}
	if _, err := ApplyEntryStep(w, fm); err != nil {
		t.Fatalf("source step failed: %v", err)
	}

	fm.Amount, fm.Strength = "lots", "20"
	if _, err := ApplyEntryStep(w, fm); err == nil {
		t.Fatal("expected an error for a non-numeric amount")
	}
	if w.Step() != wizard.StepAmount {
		t.Errorf("expected to stay at amount, got %s", w.Step())
	}
}

func TestSettingsFormModel(t *testing.T) {
	fm := NewSettingsFormModel(models.DefaultSettings())
	got, err := fm.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Errorf("expected round trip of defaults, got %+v", got)
	}

	tests := []struct {
		name string
		edit func(*SettingsFormModel)
	}{
		{"non-numeric limit", func(fm *SettingsFormModel) { fm.DailyMgLimit = "forty" }},
		{"zero limit", func(fm *SettingsFormModel) { fm.DailyMgLimit = "0" }},
		{"negative events", func(fm *SettingsFormModel) { fm.DailyEventLimit = "-3" }},
		{"offset out of range", func(fm *SettingsFormModel) { fm.TimezoneOffsetMinutes = "5000" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := NewSettingsFormModel(models.DefaultSettings())
			tt.edit(fm)
			if _, err := fm.Settings(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

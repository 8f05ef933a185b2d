package models

import "testing"

func TestTimeOfDayForHour(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night},
		{4, Night},
		{5, Morning},
		{11, Morning},
		{12, Afternoon},
		{16, Afternoon},
		{17, Evening},
		{20, Evening},
		{21, Night},
		{23, Night},
	}

	for _, tt := range tests {
		if got := TimeOfDayForHour(tt.hour); got != tt.want {
			t.Errorf("TimeOfDayForHour(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSourceValid(t *testing.T) {
	for _, s := range Sources {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Source("Pipe").Valid() {
		t.Error("expected unknown source to be invalid")
	}
}

func TestLogPatchApply(t *testing.T) {
	focus := 7
	notes := "felt sharp"
	effects := []string{"headache"}

	original := LogRecord{
		ID:            "rec-1",
		Date:          "2024-03-01",
		TimeOfDay:     Morning,
		Source:        SourceVape,
		Amount:        40,
		EstimatedMg:   4,
		HealthEffects: []string{"dry mouth"},
	}

	updated := LogPatch{
		FocusLevel:    &focus,
		Notes:         &notes,
		HealthEffects: &effects,
	}.Apply(original)

	if updated.ID != original.ID || updated.Date != original.Date || updated.TimeOfDay != original.TimeOfDay {
		t.Errorf("identity fields changed: %+v", updated)
	}
	if updated.Amount != 40 || updated.EstimatedMg != 4 {
		t.Errorf("untouched fields changed: amount=%v mg=%v", updated.Amount, updated.EstimatedMg)
	}
	if updated.FocusLevel == nil || *updated.FocusLevel != 7 {
		t.Errorf("expected focus 7, got %v", updated.FocusLevel)
	}
	if updated.AnxietyLevel != nil {
		t.Errorf("expected anxiety to stay unset, got %v", *updated.AnxietyLevel)
	}
	if len(updated.HealthEffects) != 1 || updated.HealthEffects[0] != "headache" {
		t.Errorf("unexpected health effects %v", updated.HealthEffects)
	}

	effects[0] = "changed"
	if updated.HealthEffects[0] != "headache" {
		t.Error("patched health effects should not alias the patch slice")
	}
}

func TestHasCheckIn(t *testing.T) {
	r := LogRecord{Source: SourceNone}
	if r.HasCheckIn() {
		t.Error("empty record should not report a check-in")
	}
	clearThinking := false
	r.ClearThinking = &clearThinking
	if !r.HasCheckIn() {
		t.Error("explicit false clear-thinking should count as a check-in")
	}
	if !r.IsCheckInOnly() {
		t.Error("source None with zero amount is a check-in-only record")
	}
}

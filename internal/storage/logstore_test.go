package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/nicolog/internal/constants"
	apperrors "github.com/julianstephens/nicolog/internal/errors"
	"github.com/julianstephens/nicolog/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupTestStore(t *testing.T, start time.Time) (*LogStore, *MemoryStore, *fakeClock) {
	t.Helper()
	medium := NewMemoryStore()
	clock := &fakeClock{now: start}
	store := NewLogStore(medium, WithClock(clock.Now), WithLocation(time.UTC))
	return store, medium, clock
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func vapeDraft(puffs float64) models.LogRecord {
	return models.LogRecord{
		Source:      models.SourceVape,
		UnitType:    "puffs",
		Amount:      puffs,
		EstimatedMg: puffs * 0.1,
	}
}

func TestLoadAllEmpty(t *testing.T) {
	store, _, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	records := store.LoadAll()
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty non-nil collection, got %v", records)
	}
}

func TestLoadAllCorruptSlot(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{not json"},
		{"object instead of array", `{"id":"x"}`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, medium, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
			if err := medium.Write(constants.SlotLogs, []byte(tt.data)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			if records := store.LoadAll(); len(records) != 0 {
				t.Errorf("expected empty collection, got %d records", len(records))
			}
		})
	}
}

func TestVerifyReportsParseError(t *testing.T) {
	store, medium, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	if err := store.Verify(); err != nil {
		t.Fatalf("expected empty store to verify, got %v", err)
	}

	medium.Write(constants.SlotLogs, []byte("garbage"))

	err := store.Verify()
	if !errors.Is(err, apperrors.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	var parseErr *apperrors.ParseError
	if !errors.As(err, &parseErr) || parseErr.Slot != constants.SlotLogs {
		t.Errorf("expected ParseError for logs slot, got %v", err)
	}
}

func TestAppendStampsRecord(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	store, _, _ := setupTestStore(t, start)

	record, err := store.Append(vapeDraft(30))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if record.ID == "" {
		t.Error("expected generated id")
	}
	if !record.Timestamp.Equal(start) {
		t.Errorf("expected timestamp %v, got %v", start, record.Timestamp)
	}
	if record.Date != "2024-03-01" {
		t.Errorf("expected date 2024-03-01, got %s", record.Date)
	}
	if record.TimeOfDay != models.Morning {
		t.Errorf("expected morning, got %s", record.TimeOfDay)
	}
	if record.HealthEffects == nil {
		t.Error("expected empty health effects slice")
	}

	records := store.LoadAll()
	if len(records) != 1 || records[0].ID != record.ID {
		t.Fatalf("expected appended record to be persisted, got %v", records)
	}
}

func TestAppendUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	clock := &fakeClock{now: time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC)}
	store := NewLogStore(NewMemoryStore(), WithClock(clock.Now), WithLocation(loc))

	record, err := store.Append(vapeDraft(10))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// 02:00 UTC is 21:00 the previous day at UTC-5
	if record.Date != "2024-03-01" {
		t.Errorf("expected local date 2024-03-01, got %s", record.Date)
	}
	if record.TimeOfDay != models.Night {
		t.Errorf("expected night, got %s", record.TimeOfDay)
	}
}

func TestAppendKeepsProvidedStamp(t *testing.T) {
	store, _, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	draft := vapeDraft(10)
	draft.Date = "2024-02-28"
	draft.TimeOfDay = models.Evening

	record, err := store.Append(draft)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if record.Date != "2024-02-28" || record.TimeOfDay != models.Evening {
		t.Errorf("expected provided stamp to be kept, got %s/%s", record.Date, record.TimeOfDay)
	}
}

func TestAppendUniqueIDs(t *testing.T) {
	store, _, clock := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		record, err := store.Append(vapeDraft(float64(i + 1)))
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if seen[record.ID] {
			t.Fatalf("duplicate id %s", record.ID)
		}
		seen[record.ID] = true
		clock.Advance(time.Minute)
	}

	if got := len(store.LoadAll()); got != 20 {
		t.Errorf("expected 20 records, got %d", got)
	}
}

func TestAppendRejectedByMedium(t *testing.T) {
	medium := NewMemoryStoreWithCapacity(64)
	store := NewLogStore(medium, WithLocation(time.UTC))

	_, err := store.Append(vapeDraft(30))
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected quota cause to be preserved, got %v", err)
	}
	if got := len(store.LoadAll()); got != 0 {
		t.Errorf("expected store to be unchanged, got %d records", got)
	}
}

func TestAmend(t *testing.T) {
	store, _, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	original, err := store.Append(vapeDraft(30))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	effects := []string{"headache"}
	updated, err := store.Amend(original.ID, models.LogPatch{
		FocusLevel:    intPtr(7),
		HealthEffects: &effects,
	})
	if err != nil {
		t.Fatalf("Amend failed: %v", err)
	}

	if updated.ID != original.ID || !updated.Timestamp.Equal(original.Timestamp) {
		t.Error("expected identity fields to be unchanged")
	}
	if updated.Amount != 30 {
		t.Errorf("expected amount to be kept, got %v", updated.Amount)
	}
	if updated.FocusLevel == nil || *updated.FocusLevel != 7 {
		t.Errorf("expected focus 7, got %v", updated.FocusLevel)
	}

	stored := store.LoadAll()
	if len(stored) != 1 || len(stored[0].HealthEffects) != 1 {
		t.Errorf("expected amendment to be persisted, got %+v", stored)
	}
}

func TestAmendNotFound(t *testing.T) {
	store, medium, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	if _, err := store.Append(vapeDraft(30)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	before, _, _ := medium.Read(constants.SlotLogs)

	_, err := store.Amend("missing", models.LogPatch{FocusLevel: intPtr(3)})

	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) || notFound.ID != "missing" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	after, _, _ := medium.Read(constants.SlotLogs)
	if string(before) != string(after) {
		t.Error("expected store to be unchanged after failed amend")
	}
}

func TestMostRecentToday(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store, _, clock := setupTestStore(t, start)

	if got := store.MostRecentToday(); got != nil {
		t.Fatalf("expected nil on empty store, got %+v", got)
	}

	if _, err := store.Append(vapeDraft(10)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	clock.Advance(time.Hour)
	second, _ := store.Append(vapeDraft(20))

	got := store.MostRecentToday()
	if got == nil || got.ID != second.ID {
		t.Fatalf("expected %s, got %+v", second.ID, got)
	}

	// A record from yesterday is never returned
	clock.Advance(24 * time.Hour)
	if got := store.MostRecentToday(); got != nil {
		t.Errorf("expected nil on a new day, got %+v", got)
	}
}

func TestMostRecentTodayTieBreak(t *testing.T) {
	store, _, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	if _, err := store.Append(vapeDraft(10)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	last, err := store.Append(vapeDraft(20))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got := store.MostRecentToday()
	if got == nil || got.ID != last.ID {
		t.Errorf("expected the later stored record to win the tie, got %+v", got)
	}
}

func TestCheckInAmendsRecentRecord(t *testing.T) {
	store, _, clock := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	intake, err := store.Append(vapeDraft(30))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	clock.Advance(30 * time.Minute)

	record, created, err := store.CheckIn(models.CheckIn{
		FocusLevel:    intPtr(8),
		AnxietyLevel:  intPtr(3),
		ClearThinking: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if created {
		t.Error("expected the existing record to be amended")
	}
	if record.ID != intake.ID {
		t.Errorf("expected amended id %s, got %s", intake.ID, record.ID)
	}
	if got := len(store.LoadAll()); got != 1 {
		t.Errorf("expected 1 record, got %d", got)
	}
}

func TestCheckInAppendsWhenAlreadyCheckedIn(t *testing.T) {
	store, _, clock := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	if _, err := store.Append(vapeDraft(30)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, _, err := store.CheckIn(models.CheckIn{FocusLevel: intPtr(5)}); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	clock.Advance(time.Hour)

	record, created, err := store.CheckIn(models.CheckIn{Notes: strPtr("jittery")})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if !created {
		t.Fatal("expected a new check-in record")
	}
	if !record.IsCheckInOnly() {
		t.Errorf("expected a check-in-only record, got %+v", record)
	}
	if got := len(store.LoadAll()); got != 2 {
		t.Errorf("expected 2 records, got %d", got)
	}
}

func TestCheckInOnEmptyDay(t *testing.T) {
	store, _, _ := setupTestStore(t, time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC))

	record, created, err := store.CheckIn(models.CheckIn{AnxietyLevel: intPtr(4)})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if !created {
		t.Error("expected a new record")
	}
	if record.Source != models.SourceNone || record.Amount != 0 || record.EstimatedMg != 0 {
		t.Errorf("unexpected check-in record %+v", record)
	}
	if record.TimeOfDay != models.Night {
		t.Errorf("expected night, got %s", record.TimeOfDay)
	}
}

func TestSettingsDefaultsAndMerge(t *testing.T) {
	store, medium, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	settings := store.LoadSettings()
	if settings != models.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", settings)
	}
	if _, ok, _ := medium.Read(constants.SlotSettings); !ok {
		t.Error("expected defaults to be written on first access")
	}

	// Missing and zero fields take defaults
	medium.Write(constants.SlotSettings, []byte(`{"dailyMgLimit":25,"dailyEventLimit":0}`))
	settings = store.LoadSettings()
	if settings.DailyMgLimit != 25 {
		t.Errorf("expected limit 25, got %v", settings.DailyMgLimit)
	}
	if settings.DailyEventLimit != constants.DefaultDailyEventLimit {
		t.Errorf("expected default event limit, got %d", settings.DailyEventLimit)
	}
}

func TestSaveSettingsOverwrites(t *testing.T) {
	store, _, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	want := models.Settings{
		DailyMgLimit:          12.5,
		DailyEventLimit:       3,
		MorningLimitEnabled:   true,
		TimezoneOffsetMinutes: -300,
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if got := store.LoadSettings(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCorruptSettingsFallBackToDefaults(t *testing.T) {
	store, medium, _ := setupTestStore(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	medium.Write(constants.SlotSettings, []byte(`[1,2,3]`))

	if got := store.LoadSettings(); got != models.DefaultSettings() {
		t.Errorf("expected defaults for corrupt settings, got %+v", got)
	}
}

func TestLogStoreOverJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nicolog.json")
	medium := NewJSONStore(path)
	if err := medium.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	clock := &fakeClock{now: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)}
	store := NewLogStore(medium, WithClock(clock.Now), WithLocation(time.UTC))
	record, err := store.Append(vapeDraft(40))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	records := NewLogStore(reopened).LoadAll()
	if len(records) != 1 || records[0].ID != record.ID {
		t.Fatalf("expected record to survive reopen, got %+v", records)
	}
	if records[0].TimeOfDay != models.Afternoon {
		t.Errorf("expected afternoon, got %s", records[0].TimeOfDay)
	}
}

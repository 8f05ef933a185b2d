package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nicolog/internal/constants"
	apperrors "github.com/julianstephens/nicolog/internal/errors"
	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/utils"
)

// LogStore keeps the log collection and settings in two slots of a Medium.
//
// Every write serializes the whole slot and overwrites it. Reads never fail:
// a missing or corrupt slot reads as empty (or defaults, for settings).
type LogStore struct {
	medium Medium
	now    func() time.Time
	loc    *time.Location
}

// Option configures a LogStore
type Option func(*LogStore)

// WithClock overrides the time source used for new records.
func WithClock(now func() time.Time) Option {
	return func(s *LogStore) {
		s.now = now
	}
}

// WithLocation sets the location used to derive a record's date and time of day.
func WithLocation(loc *time.Location) Option {
	return func(s *LogStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewLogStore(medium Medium, opts ...Option) *LogStore {
	s := &LogStore{
		medium: medium,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Medium returns the underlying key-value medium
func (s *LogStore) Medium() Medium {
	return s.medium
}

// Now returns the store's current time in its location
func (s *LogStore) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the store's current calendar date
func (s *LogStore) Today() string {
	return utils.DateOf(s.Now())
}

// Location returns the location records are stamped in
func (s *LogStore) Location() *time.Location {
	return s.loc
}

func (s *LogStore) readLogs() ([]models.LogRecord, error) {
	data, ok, err := s.medium.Read(constants.SlotLogs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", constants.SlotLogs, err)
	}
	if !ok || len(data) == 0 {
		return []models.LogRecord{}, nil
	}

	var records []models.LogRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &apperrors.ParseError{Slot: constants.SlotLogs, Err: err}
	}
	if records == nil {
		records = []models.LogRecord{}
	}
	return records, nil
}

// LoadAll returns every stored record in insertion order.
func (s *LogStore) LoadAll() []models.LogRecord {
	records, err := s.readLogs()
	if err != nil {
		logger.Warn("Treating log collection as empty", "error", err)
		return []models.LogRecord{}
	}
	return records
}

// SaveAll replaces the stored collection with records.
func (s *LogStore) SaveAll(records []models.LogRecord) error {
	if records == nil {
		records = []models.LogRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize logs: %w", err)
	}
	if err := s.medium.Write(constants.SlotLogs, data); err != nil {
		return &apperrors.StorageError{Slot: constants.SlotLogs, Err: err}
	}
	logger.Debug("Saved log collection", "records", len(records))
	return nil
}

// Append assigns a fresh id and timestamp to draft, stamps its date and time
// of day if missing, and persists it at the end of the collection.
func (s *LogStore) Append(draft models.LogRecord) (models.LogRecord, error) {
	record := draft
	record.ID = uuid.New().String()
	record.Timestamp = s.now()

	date, tod := utils.Stamp(record.Timestamp, s.loc)
	if record.Date == "" {
		record.Date = date
	}
	if record.TimeOfDay == "" {
		record.TimeOfDay = tod
	}
	if record.HealthEffects == nil {
		record.HealthEffects = []string{}
	}

	records := s.LoadAll()
	records = append(records, record)
	if err := s.SaveAll(records); err != nil {
		return models.LogRecord{}, err
	}
	return record, nil
}

// Amend merges patch into the record with the given id.
func (s *LogStore) Amend(id string, patch models.LogPatch) (models.LogRecord, error) {
	records := s.LoadAll()

	for i := range records {
		if records[i].ID != id {
			continue
		}
		updated := patch.Apply(records[i])
		records[i] = updated
		if err := s.SaveAll(records); err != nil {
			return models.LogRecord{}, err
		}
		return updated, nil
	}

	return models.LogRecord{}, &apperrors.NotFoundError{ID: id}
}

// MostRecentToday returns the latest record stamped with today's date, or nil.
// Equal timestamps resolve to the record stored last.
func (s *LogStore) MostRecentToday() *models.LogRecord {
	today := s.Today()

	var latest *models.LogRecord
	records := s.LoadAll()
	for i := range records {
		if records[i].Date != today {
			continue
		}
		if latest == nil || !records[i].Timestamp.Before(latest.Timestamp) {
			latest = &records[i]
		}
	}
	if latest == nil {
		return nil
	}
	found := *latest
	return &found
}

// CheckIn attaches c to today's most recent record when that record has no
// check-in yet, and otherwise appends a check-in-only record. The bool reports
// whether a new record was created.
func (s *LogStore) CheckIn(c models.CheckIn) (models.LogRecord, bool, error) {
	if latest := s.MostRecentToday(); latest != nil && !latest.HasCheckIn() {
		record, err := s.Amend(latest.ID, c.Patch())
		return record, false, err
	}

	record, err := s.Append(models.LogRecord{
		Source:        models.SourceNone,
		HealthEffects: []string{},
		FocusLevel:    c.FocusLevel,
		AnxietyLevel:  c.AnxietyLevel,
		ClearThinking: c.ClearThinking,
		Notes:         c.Notes,
	})
	return record, true, err
}

func (s *LogStore) readSettings() (models.Settings, bool, error) {
	defaults := models.DefaultSettings()

	data, ok, err := s.medium.Read(constants.SlotSettings)
	if err != nil {
		return defaults, false, fmt.Errorf("failed to read %s: %w", constants.SlotSettings, err)
	}
	if !ok || len(data) == 0 {
		return defaults, false, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return defaults, true, &apperrors.ParseError{Slot: constants.SlotSettings, Err: err}
	}
	settings, err := models.MergeSettings(defaults, fields)
	if err != nil {
		return defaults, true, &apperrors.ParseError{Slot: constants.SlotSettings, Err: err}
	}
	models.ApplyDefaultSettings(&settings)
	return settings, true, nil
}

// LoadSettings returns the stored settings with defaults filled in. The
// defaults are written back on first access.
func (s *LogStore) LoadSettings() models.Settings {
	settings, found, err := s.readSettings()
	if err != nil {
		logger.Warn("Using default settings", "error", err)
		return settings
	}
	if !found {
		if err := s.SaveSettings(settings); err != nil {
			logger.Warn("Failed to persist default settings", "error", err)
		}
	}
	return settings
}

// SaveSettings overwrites the stored settings.
func (s *LogStore) SaveSettings(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := s.medium.Write(constants.SlotSettings, data); err != nil {
		return &apperrors.StorageError{Slot: constants.SlotSettings, Err: err}
	}
	return nil
}

// Verify reports the first slot that cannot be read or decoded.
func (s *LogStore) Verify() error {
	if _, err := s.readLogs(); err != nil {
		return err
	}
	if _, _, err := s.readSettings(); err != nil {
		return err
	}
	return nil
}

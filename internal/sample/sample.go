// Package sample seeds an empty store with plausible demo data.
package sample

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/dose"
	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/storage"
	"github.com/julianstephens/nicolog/internal/utils"
)

// DefaultDays is how much history Seed generates when asked for none
const DefaultDays = 14

var intakeSources = []models.Source{models.SourceVape, models.SourceCigarettes, models.SourceSnus}

// Seed fills an empty store with records spread over the last days days,
// ending now. It is a no-op returning 0 when the store already has records.
// The output depends only on rng and the store's clock.
func Seed(store *storage.LogStore, days int, rng *rand.Rand) (int, error) {
	if len(store.LoadAll()) > 0 {
		return 0, nil
	}
	if days <= 0 {
		days = DefaultDays
	}

	now := store.Now()
	loc := store.Location()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	var records []models.LogRecord
	for day := 0; day < days; day++ {
		midnight := start.AddDate(0, 0, day)
		events := 2 + rng.Intn(4)

		for i := 0; i < events; i++ {
			ts := midnight.Add(time.Duration(6*60+rng.Intn(17*60)) * time.Minute)
			if ts.After(now) {
				continue
			}
			record, err := generate(ts, loc, rng)
			if err != nil {
				return 0, err
			}
			records = append(records, record)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	if err := store.SaveAll(records); err != nil {
		return 0, err
	}
	logger.Info("Seeded sample data", "records", len(records), "days", days)
	return len(records), nil
}

func generate(ts time.Time, loc *time.Location, rng *rand.Rand) (models.LogRecord, error) {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return models.LogRecord{}, fmt.Errorf("failed to generate id: %w", err)
	}

	date, tod := utils.Stamp(ts, loc)
	record := models.LogRecord{
		ID:            id.String(),
		Timestamp:     ts,
		Date:          date,
		TimeOfDay:     tod,
		HealthEffects: []string{},
	}

	// One in six records is a bare check-in
	if rng.Intn(6) == 0 {
		record.Source = models.SourceNone
	} else {
		source := intakeSources[rng.Intn(len(intakeSources))]
		var amount float64
		switch source {
		case models.SourceVape:
			amount = float64(10 + rng.Intn(60))
		case models.SourceCigarettes:
			amount = float64(1 + rng.Intn(2))
		case models.SourceSnus:
			amount = float64(1 + rng.Intn(2))
		}
		reason := constants.Reasons[rng.Intn(len(constants.Reasons))]

		record.Source = source
		record.UnitType = dose.UnitFor(source)
		record.Amount = amount
		record.EstimatedMg = dose.EstimateMg(source, amount, dose.DefaultStrength(source))
		record.Reason = &reason
		if rng.Intn(4) == 0 {
			record.HealthEffects = append(record.HealthEffects, constants.HealthEffects[rng.Intn(len(constants.HealthEffects))])
		}
	}

	// Most records carry a check-in; focus peaks at moderate doses
	if record.Source == models.SourceNone || rng.Intn(10) < 7 {
		focus := clampLevel(5 + int(record.EstimatedMg/3) - int(record.EstimatedMg/12)*2 + rng.Intn(3) - 1)
		anxiety := clampLevel(3 + int(record.EstimatedMg/6) + rng.Intn(3) - 1)
		clearThinking := focus >= anxiety
		record.FocusLevel = &focus
		record.AnxietyLevel = &anxiety
		record.ClearThinking = &clearThinking
	}

	return record, nil
}

func clampLevel(v int) int {
	return max(constants.MinLevel, min(constants.MaxLevel, v))
}

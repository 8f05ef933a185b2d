package stats

import "github.com/julianstephens/nicolog/internal/models"

// TimeBucketStats summarizes the self-reported levels within one part of the day
type TimeBucketStats struct {
	AvgFocus   *float64 `json:"avgFocus"`
	AvgAnxiety *float64 `json:"avgAnxiety"`
	// Count is the number of usable samples: the larger of the focus and
	// anxiety sample counts, not the number of records.
	Count int `json:"count"`
}

// ByTimeOfDay groups records by their stored time-of-day bucket. Only buckets
// that received at least one record are present in the result.
func ByTimeOfDay(records []models.LogRecord) map[models.TimeOfDay]TimeBucketStats {
	type bucket struct {
		focus, anxiety average
	}

	buckets := make(map[models.TimeOfDay]*bucket)
	for _, r := range records {
		if r.TimeOfDay == "" {
			continue
		}
		b, ok := buckets[r.TimeOfDay]
		if !ok {
			b = &bucket{}
			buckets[r.TimeOfDay] = b
		}
		b.focus.add(r.FocusLevel)
		b.anxiety.add(r.AnxietyLevel)
	}

	result := make(map[models.TimeOfDay]TimeBucketStats, len(buckets))
	for tod, b := range buckets {
		result[tod] = TimeBucketStats{
			AvgFocus:   b.focus.value(),
			AvgAnxiety: b.anxiety.value(),
			Count:      max(b.focus.n, b.anxiety.n),
		}
	}
	return result
}

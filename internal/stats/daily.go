package stats

import (
	"time"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
)

// DailyStats summarizes the records of one calendar date
type DailyStats struct {
	Date       string   `json:"date"`
	TotalMg    float64  `json:"totalMg"`
	EventCount int      `json:"eventCount"`
	AvgFocus   *float64 `json:"avgFocus"`
	AvgAnxiety *float64 `json:"avgAnxiety"`
}

// Daily aggregates the records whose stored date equals date.
func Daily(date string, records []models.LogRecord) DailyStats {
	stats := DailyStats{Date: date}
	var focus, anxiety average

	for _, r := range records {
		if r.Date != date {
			continue
		}
		stats.EventCount++
		stats.TotalMg += r.EstimatedMg
		focus.add(r.FocusLevel)
		anxiety.add(r.AnxietyLevel)
	}

	stats.AvgFocus = focus.value()
	stats.AvgAnxiety = anxiety.value()
	return stats
}

// DayTotal is one point of the daily trend series
type DayTotal struct {
	Date       string  `json:"date"`
	TotalMg    float64 `json:"totalMg"`
	EventCount int     `json:"eventCount"`
}

// Trend returns one point per calendar day for the days ending at endDate,
// oldest first. Days without records are zero-filled. An unparseable endDate
// yields nil.
func Trend(records []models.LogRecord, endDate string, days int) []DayTotal {
	end, err := time.Parse(constants.DateFormat, endDate)
	if err != nil || days <= 0 {
		return nil
	}

	byDate := make(map[string]*DayTotal, days)
	series := make([]DayTotal, days)
	for i := 0; i < days; i++ {
		date := end.AddDate(0, 0, i-(days-1)).Format(constants.DateFormat)
		series[i] = DayTotal{Date: date}
		byDate[date] = &series[i]
	}

	for _, r := range records {
		if point, ok := byDate[r.Date]; ok {
			point.TotalMg += r.EstimatedMg
			point.EventCount++
		}
	}

	return series
}

// Progress compares a day's intake with the configured daily budget
type Progress struct {
	TotalMg float64 `json:"totalMg"`
	LimitMg float64 `json:"limitMg"`
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
}

// LimitProgress reports how much of the daily mg budget has been used.
func LimitProgress(day DailyStats, settings models.Settings) Progress {
	p := Progress{TotalMg: day.TotalMg, LimitMg: settings.DailyMgLimit}
	if settings.DailyMgLimit > 0 {
		p.Percent = day.TotalMg / settings.DailyMgLimit * 100
		p.Over = day.TotalMg > settings.DailyMgLimit
	}
	return p
}

package stats

import (
	"time"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
)

// Streak counts consecutive calendar days, ending today, that have at least
// one record. A day without records today gives 0 regardless of history.
func Streak(records []models.LogRecord, today string) int {
	day, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		return 0
	}

	dates := make(map[string]struct{}, len(records))
	for _, r := range records {
		dates[r.Date] = struct{}{}
	}

	streak := 0
	for {
		if _, ok := dates[day.Format(constants.DateFormat)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

package stats

import "github.com/julianstephens/nicolog/internal/models"

func intPtr(v int) *int { return &v }

func record(date string, tod models.TimeOfDay, mg float64, focus, anxiety *int) models.LogRecord {
	return models.LogRecord{
		ID:           date + string(tod),
		Date:         date,
		TimeOfDay:    tod,
		Source:       models.SourceVape,
		EstimatedMg:  mg,
		FocusLevel:   focus,
		AnxietyLevel: anxiety,
	}
}

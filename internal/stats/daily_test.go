package stats

import (
	"reflect"
	"testing"

	"github.com/julianstephens/nicolog/internal/models"
)

func TestDailyEmptyDate(t *testing.T) {
	records := []models.LogRecord{
		record("2024-03-01", models.Morning, 4, intPtr(6), intPtr(3)),
	}

	got := Daily("2024-03-02", records)
	if got.EventCount != 0 || got.TotalMg != 0 {
		t.Errorf("expected empty totals, got %+v", got)
	}
	if got.AvgFocus != nil || got.AvgAnxiety != nil {
		t.Errorf("expected absent averages, got focus=%v anxiety=%v", got.AvgFocus, got.AvgAnxiety)
	}
}

func TestDailyPresenceFilteredAverages(t *testing.T) {
	records := []models.LogRecord{
		record("2024-03-01", models.Morning, 4, intPtr(6), nil),
		record("2024-03-01", models.Afternoon, 6, intPtr(8), nil),
		record("2024-03-01", models.Evening, 2.5, nil, nil),
		record("2024-02-29", models.Evening, 10, intPtr(1), intPtr(1)),
	}

	got := Daily("2024-03-01", records)
	if got.EventCount != 3 {
		t.Errorf("expected 3 events, got %d", got.EventCount)
	}
	if got.TotalMg != 12.5 {
		t.Errorf("expected 12.5 mg, got %v", got.TotalMg)
	}
	if got.AvgFocus == nil || *got.AvgFocus != 7 {
		t.Errorf("expected focus average 7 over two samples, got %v", got.AvgFocus)
	}
	if got.AvgAnxiety != nil {
		t.Errorf("expected absent anxiety average, got %v", *got.AvgAnxiety)
	}
}

func TestTrend(t *testing.T) {
	records := []models.LogRecord{
		record("2024-03-01", models.Morning, 4, nil, nil),
		record("2024-03-01", models.Evening, 3, nil, nil),
		record("2024-02-28", models.Night, 1, nil, nil),
		record("2024-01-01", models.Night, 50, nil, nil),
	}

	series := Trend(records, "2024-03-01", 3)
	want := []DayTotal{
		{Date: "2024-02-28", TotalMg: 1, EventCount: 1},
		{Date: "2024-02-29", TotalMg: 0, EventCount: 0},
		{Date: "2024-03-01", TotalMg: 7, EventCount: 2},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("Trend() = %+v, want %+v", series, want)
	}

	if Trend(records, "not-a-date", 3) != nil {
		t.Error("expected nil series for invalid end date")
	}
}

func TestLimitProgress(t *testing.T) {
	settings := models.Settings{DailyMgLimit: 40}

	p := LimitProgress(DailyStats{TotalMg: 10}, settings)
	if p.Percent != 25 || p.Over {
		t.Errorf("unexpected progress %+v", p)
	}

	p = LimitProgress(DailyStats{TotalMg: 41}, settings)
	if !p.Over {
		t.Errorf("expected over-limit progress, got %+v", p)
	}
}

func TestAggregationsAreIdempotent(t *testing.T) {
	records := []models.LogRecord{
		record("2024-03-01", models.Morning, 4, intPtr(6), intPtr(2)),
		record("2024-03-01", models.Evening, 12, intPtr(3), intPtr(7)),
		record("2024-02-29", models.Night, 22, nil, intPtr(5)),
	}

	if !reflect.DeepEqual(Daily("2024-03-01", records), Daily("2024-03-01", records)) {
		t.Error("Daily is not deterministic")
	}
	if !reflect.DeepEqual(ByTimeOfDay(records), ByTimeOfDay(records)) {
		t.Error("ByTimeOfDay is not deterministic")
	}
	if !reflect.DeepEqual(SweetSpot(records), SweetSpot(records)) {
		t.Error("SweetSpot is not deterministic")
	}
	if Streak(records, "2024-03-01") != Streak(records, "2024-03-01") {
		t.Error("Streak is not deterministic")
	}
}

package cli

import (
	"fmt"

	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/stats"
	"github.com/julianstephens/nicolog/internal/utils"
)

type StatsCmd struct {
	Date string `help:"Day to summarize (YYYY-MM-DD). Defaults to today."`
	Days int    `help:"Length of the trend window." default:"7"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Store.Today()
	} else if !utils.ValidateDate(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	records := ctx.Store.LoadAll()
	settings := ctx.Store.LoadSettings()
	day := stats.Daily(date, records)
	progress := stats.LimitProgress(day, settings)

	ctx.printf("%s\n", date)
	ctx.printf("  Intake:      %.1f / %g mg (%.0f%%)\n", progress.TotalMg, progress.LimitMg, progress.Percent)
	ctx.printf("  Events:      %d / %d\n", day.EventCount, settings.DailyEventLimit)
	ctx.printf("  Avg focus:   %s\n", formatAvg(day.AvgFocus))
	ctx.printf("  Avg anxiety: %s\n", formatAvg(day.AvgAnxiety))
	ctx.printf("  Streak:      %d days\n", stats.Streak(records, ctx.Store.Today()))

	ctx.println("\nBy time of day:")
	buckets := stats.ByTimeOfDay(records)
	for _, tod := range models.TimesOfDay {
		b, ok := buckets[tod]
		if !ok {
			continue
		}
		ctx.printf("  %-9s  focus %s  anxiety %s  (n=%d)\n", tod, formatAvg(b.AvgFocus), formatAvg(b.AvgAnxiety), b.Count)
	}

	if best, ok := stats.SweetSpot(records).Best(); ok {
		ctx.printf("\nSweet spot: %s mg in the %s (score %.0f over %d entries)\n", best.Dose, best.TimeOfDay, best.Metric, best.Count)
	}

	ctx.printf("\nLast %d days:\n", c.Days)
	for _, point := range stats.Trend(records, date, c.Days) {
		ctx.printf("  %s  %6.1f mg  %d events\n", point.Date, point.TotalMg, point.EventCount)
	}
	return nil
}

func formatAvg(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.1f", *v)
}

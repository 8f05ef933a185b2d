package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/utils"
)

type ListCmd struct {
	Date  string `help:"Only show entries for this date (YYYY-MM-DD)."`
	Limit int    `short:"n" help:"Show at most this many of the newest entries." default:"20"`
	JSON  bool   `name:"json" help:"Print entries as JSON."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if c.Date != "" && !utils.ValidateDate(c.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}

	records := filterRecords(ctx.Store.LoadAll(), c.Date, c.Limit)

	if c.JSON {
		enc := json.NewEncoder(ctx.out())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		ctx.println("No entries found.")
		return nil
	}

	for _, r := range records {
		ctx.println(formatRecord(r, ctx))
	}
	return nil
}

// filterRecords keeps records on date (when set) and then the newest limit
// of them, oldest first.
func filterRecords(records []models.LogRecord, date string, limit int) []models.LogRecord {
	filtered := make([]models.LogRecord, 0, len(records))
	for _, r := range records {
		if date == "" || r.Date == date {
			filtered = append(filtered, r)
		}
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}

func formatRecord(r models.LogRecord, ctx *Context) string {
	at := r.Timestamp.In(ctx.Store.Location()).Format(constants.TimeFormat)

	what := "check-in"
	if !r.IsCheckInOnly() {
		what = fmt.Sprintf("%-10s %6g %-10s %6.2f mg", r.Source, r.Amount, r.UnitType, r.EstimatedMg)
	}

	var extra []string
	if r.FocusLevel != nil {
		extra = append(extra, fmt.Sprintf("focus %d", *r.FocusLevel))
	}
	if r.AnxietyLevel != nil {
		extra = append(extra, fmt.Sprintf("anxiety %d", *r.AnxietyLevel))
	}
	if r.ClearThinking != nil {
		extra = append(extra, fmt.Sprintf("clear %t", *r.ClearThinking))
	}
	if r.Reason != nil {
		extra = append(extra, *r.Reason)
	}
	if len(r.HealthEffects) > 0 {
		extra = append(extra, strings.Join(r.HealthEffects, ", "))
	}

	line := fmt.Sprintf("%s %s  %-9s %s", r.Date, at, r.TimeOfDay, what)
	if len(extra) > 0 {
		line += "  [" + strings.Join(extra, "; ") + "]"
	}
	return line
}

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nicolog/internal/forms"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/stats"
	"github.com/julianstephens/nicolog/internal/wizard"
)

type LogCmd struct {
	Source   string   `short:"s" help:"Vape, Cigarettes, Snus or None. Omit to use the interactive form."`
	Amount   float64  `short:"a" help:"Puffs, cigarettes or portions."`
	Strength float64  `help:"Strength per unit (mg/ml for vapes). Defaults per source."`
	Reason   string   `short:"r" help:"Why you used it."`
	Effect   []string `short:"e" help:"Health effect; repeat for several."`
}

func (c *LogCmd) Run(ctx *Context) error {
	var (
		draft models.LogRecord
		err   error
	)

	if c.Source != "" {
		draft, err = wizard.Build(wizard.Entry{
			Source:        models.Source(c.Source),
			Amount:        c.Amount,
			Strength:      c.Strength,
			Reason:        c.Reason,
			HealthEffects: c.Effect,
		})
		if err != nil {
			return err
		}
	} else {
		record, err := runEntryForms()
		if errors.Is(err, forms.ErrCancelled) {
			ctx.println("Entry cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		draft = *record
	}

	record, err := ctx.Store.Append(draft)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	if record.IsCheckInOnly() {
		ctx.printf("✓ Logged a check-in entry (%s)\n", record.ID[:8])
	} else {
		ctx.printf("✓ Logged %s: %g %s (%.2f mg)\n", record.Source, record.Amount, record.UnitType, record.EstimatedMg)
	}
	printProgress(ctx)
	return nil
}

// runEntryForms drives the wizard one huh form per step until the user saves
// or cancels.
func runEntryForms() (*models.LogRecord, error) {
	w := wizard.New()
	fm := &forms.EntryFormModel{}

	for {
		if err := forms.NewEntryStepForm(w, fm).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, forms.ErrCancelled
			}
			return nil, err
		}

		record, err := forms.ApplyEntryStep(w, fm)
		if err != nil {
			if errors.Is(err, forms.ErrCancelled) {
				return nil, err
			}
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		if record != nil {
			return record, nil
		}
	}
}

func printProgress(ctx *Context) {
	day := stats.Daily(ctx.Store.Today(), ctx.Store.LoadAll())
	settings := ctx.Store.LoadSettings()
	progress := stats.LimitProgress(day, settings)

	ctx.printf("  Today: %.1f / %g mg (%.0f%%), %d / %d events\n",
		progress.TotalMg, progress.LimitMg, progress.Percent, day.EventCount, settings.DailyEventLimit)
	if progress.Over {
		ctx.println("  ⚠ Over your daily limit")
	}
}

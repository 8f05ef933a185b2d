package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nicolog/internal/forms"
	"github.com/julianstephens/nicolog/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`
	Edit bool `help:"Edit settings in an interactive form."`

	DailyMgLimit          *float64 `help:"Daily nicotine limit in mg."`
	DailyEventLimit       *int     `help:"Daily intake events limit."`
	MorningLimitEnabled   *bool    `negatable:"" help:"Enable the morning limit."`
	TimezoneOffsetMinutes *int     `help:"UTC offset in minutes, informational."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings := ctx.Store.LoadSettings()

	if c.List {
		ctx.println("Current Settings:")
		ctx.printf("  Daily mg limit:        %g\n", settings.DailyMgLimit)
		ctx.printf("  Daily event limit:     %d\n", settings.DailyEventLimit)
		ctx.printf("  Morning limit:         %v\n", settings.MorningLimitEnabled)
		ctx.printf("  Timezone offset:       %d min\n", settings.TimezoneOffsetMinutes)
		return nil
	}

	if c.Edit {
		fm := forms.NewSettingsFormModel(settings)
		if err := forms.NewSettingsForm(fm).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.println("No changes made.")
				return nil
			}
			return err
		}
		edited, err := fm.Settings()
		if err != nil {
			return err
		}
		if err := ctx.Store.SaveSettings(edited); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.println("Settings updated successfully.")
		return nil
	}

	updated := false
	if c.DailyMgLimit != nil {
		settings.DailyMgLimit = *c.DailyMgLimit
		updated = true
	}
	if c.DailyEventLimit != nil {
		settings.DailyEventLimit = *c.DailyEventLimit
		updated = true
	}
	if c.MorningLimitEnabled != nil {
		settings.MorningLimitEnabled = *c.MorningLimitEnabled
		updated = true
	}
	if c.TimezoneOffsetMinutes != nil {
		settings.TimezoneOffsetMinutes = *c.TimezoneOffsetMinutes
		updated = true
	}

	if !updated {
		ctx.println("No changes specified. Use --list to view settings, --edit for a form, or flags to update them.")
		return nil
	}

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.println("Settings updated successfully.")
	return nil
}

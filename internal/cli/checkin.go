package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/forms"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/validation"
)

type CheckinCmd struct {
	Focus   *int    `short:"f" help:"Focus level, 1-10."`
	Anxiety *int    `short:"x" help:"Anxiety level, 1-10."`
	Clear   *bool   `negatable:"" help:"Whether you are thinking clearly."`
	Notes   *string `short:"n" help:"Free-form notes."`
}

func (c *CheckinCmd) interactive() bool {
	return c.Focus == nil && c.Anxiety == nil && c.Clear == nil && c.Notes == nil
}

func (c *CheckinCmd) checkIn() models.CheckIn {
	ci := models.CheckIn{
		FocusLevel:    c.Focus,
		AnxietyLevel:  c.Anxiety,
		ClearThinking: c.Clear,
	}
	if c.Notes != nil {
		if notes := strings.TrimSpace(*c.Notes); notes != "" {
			ci.Notes = &notes
		}
	}
	return ci
}

func (c *CheckinCmd) Run(ctx *Context) error {
	var ci models.CheckIn
	if c.interactive() {
		fm := &forms.CheckInFormModel{}
		if err := forms.NewCheckInForm(fm).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.println("Check-in cancelled.")
				return nil
			}
			return err
		}
		ci = fm.CheckIn()
	} else {
		ci = c.checkIn()
	}

	if err := validation.ValidateCheckIn(ci); err != nil {
		return err
	}
	if ci == (models.CheckIn{}) {
		return fmt.Errorf("nothing to record: set at least one of --focus, --anxiety, --clear or --notes")
	}

	record, created, err := ctx.Store.CheckIn(ci)
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	at := record.Timestamp.In(ctx.Store.Location()).Format(constants.TimeFormat)
	if created {
		ctx.printf("✓ Saved a new check-in at %s\n", at)
	} else {
		ctx.printf("✓ Added check-in to your %s entry from %s\n", record.Source, at)
	}
	return nil
}

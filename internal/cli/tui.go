package cli

import (
	"github.com/julianstephens/nicolog/internal/instance"
	"github.com/julianstephens/nicolog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	lock, err := instance.Acquire(ctx.ConfigDir, "tui")
	if err != nil {
		return err
	}
	defer lock.Release()

	// Automatic backup on startup, after a successful load
	ctx.PerformAutomaticBackup()

	return tui.Run(ctx.Store)
}

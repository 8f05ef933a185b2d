package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/nicolog/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing storage before initialization."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if _, ok := ctx.Medium.(*postgres.Store); ok {
			return fmt.Errorf("--force is not supported for PostgreSQL storage")
		}
		path := ctx.Medium.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Medium.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Medium.Init(); err != nil {
		return err
	}

	// Writes the default settings on first run
	ctx.Store.LoadSettings()

	ctx.printf("Initialized nicolog storage at: %s\n", ctx.Medium.GetConfigPath())
	return nil
}

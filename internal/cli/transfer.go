package cli

import (
	"fmt"

	"github.com/julianstephens/nicolog/internal/transfer"
)

type ExportCmd struct {
	Output string `arg:"" optional:"" help:"File to write. Omit or use - for stdout."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if c.Output == "" || c.Output == "-" {
		return transfer.Export(ctx.Store, ctx.out())
	}

	path := ExpandHome(c.Output)
	if err := transfer.ExportFile(ctx.Store, path); err != nil {
		return err
	}
	ctx.printf("✓ Exported %d entries to %s\n", len(ctx.Store.LoadAll()), path)
	return nil
}

type ImportCmd struct {
	File     string `arg:"" help:"Export file to merge in."`
	NoBackup bool   `help:"Skip the automatic backup taken before importing."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	added, err := transfer.ImportFile(ctx.Store, ExpandHome(c.File))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.printf("✓ Imported %d new entries\n", added)
	return nil
}

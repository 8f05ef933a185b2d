package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/nicolog/internal/instance"
	"github.com/julianstephens/nicolog/internal/validation"
)

type DoctorCmd struct{}

type schemaVersioner interface {
	SchemaVersion() (int, int, error)
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			ctx.printf("❌ %s: FAIL\n", name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.printf("✓ %s: OK\n", name)
	}
	skip := func(name string) {
		ctx.printf("⊘ %s: SKIPPED (storage not reachable)\n", name)
	}

	reachable := checkReachable(ctx)
	report("Storage reachable", reachable)

	if reachable == nil {
		report("Schema version", checkSchemaVersion(ctx))
		report("Slots readable", ctx.Store.Verify())
		report("Data validation", checkValidation(ctx))
	} else {
		skip("Schema version")
		skip("Slots readable")
		skip("Data validation")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		ctx.printf("⚠ Backups present: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Backups present: OK\n")
	}

	if holder, held := instance.IsHeld(ctx.ConfigDir); held {
		ctx.printf("ℹ Instance lock: held by pid %d (%s) since %s\n",
			holder.PID, holder.Command, holder.StartedAt.Format(time.RFC3339))
	} else {
		ctx.printf("✓ Instance lock: free\n")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkReachable(ctx *Context) error {
	if err := ctx.Medium.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sv, ok := ctx.Medium.(schemaVersioner)
	if !ok {
		return nil
	}

	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind latest %d", current, latest)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this binary supports (%d)", current, latest)
	}
	return nil
}

func checkValidation(ctx *Context) error {
	v := validation.New()

	result := v.ValidateRecords(ctx.Store.LoadAll())
	if result.HasIssues() {
		return fmt.Errorf("found %d issue(s)\n%s", len(result.Issues), result.FormatReport())
	}

	result = v.ValidateSettings(ctx.Store.LoadSettings())
	if result.HasIssues() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}

	age := time.Since(backups[0].Timestamp)
	if age > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

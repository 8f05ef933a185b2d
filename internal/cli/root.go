package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/nicolog/internal/backup"
	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/storage"
	"github.com/julianstephens/nicolog/internal/storage/sqlite"
)

// ErrBackupUnsupported is returned for media that are not a local file
var ErrBackupUnsupported = errors.New("backups are only supported for SQLite and JSON storage")

type Context struct {
	Store     *storage.LogStore
	Medium    storage.Medium
	ConfigDir string
	Out       io.Writer
}

// NewContext wraps medium in a LogStore. configDir holds logs and the
// instance lockfile.
func NewContext(medium storage.Medium, configDir string, opts ...storage.Option) *Context {
	return &Context{
		Store:     storage.NewLogStore(medium, opts...),
		Medium:    medium,
		ConfigDir: configDir,
		Out:       os.Stdout,
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// BackupManager returns the backup manager for file-backed media
func (c *Context) BackupManager() (*backup.Manager, error) {
	switch c.Medium.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return backup.NewManager(c.Medium.GetConfigPath()), nil
	}
	return nil, ErrBackupUnsupported
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Package instance keeps long-running commands from sharing one store.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	nowFunc         = time.Now
	pidFunc         = os.Getpid
)

// ErrAlreadyRunning is returned when another live process holds the lock
var ErrAlreadyRunning = errors.New("another nicolog process is using this store")

// Holder describes the process recorded in a lockfile
type Holder struct {
	PID       int
	Command   string
	StartedAt time.Time
}

// Lock is a held lockfile. Release it when the command exits.
type Lock struct {
	path string
	pid  int
}

// LockPath returns the lockfile location for a store kept in dir
func LockPath(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire takes the lock in dir for command. A lockfile left by a dead or
// unrelated process, or one older than constants.LockStaleTimeout, is replaced.
func Acquire(dir, command string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := LockPath(dir)

	holder, err := Read(dir)
	switch {
	case err == nil && isLive(holder):
		return nil, fmt.Errorf("%w (pid %d, %s)", ErrAlreadyRunning, holder.PID, holder.Command)
	case err == nil || !os.IsNotExist(err):
		logger.Warn("Replacing stale lockfile", "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	pid := pidFunc()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	_, err = fmt.Fprintf(f, "%d|%s|%d", pid, command, nowFunc().Unix())
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	logger.Debug("Acquired lock", "path", path, "command", command)
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := Read(filepath.Dir(l.path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Read parses the lockfile in dir. A missing lockfile returns an error that
// satisfies os.IsNotExist.
func Read(dir string) (Holder, error) {
	content, err := os.ReadFile(LockPath(dir))
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Holder{}, errors.New("lockfile is malformed")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Holder{}, errors.New("invalid start time in lockfile")
	}

	return Holder{PID: pid, Command: parts[1], StartedAt: time.Unix(started, 0)}, nil
}

// IsHeld reports whether a live process currently holds the lock in dir
func IsHeld(dir string) (Holder, bool) {
	holder, err := Read(dir)
	if err != nil {
		return Holder{}, false
	}
	return holder, isLive(holder)
}

func isLive(h Holder) bool {
	if nowFunc().Sub(h.StartedAt) > constants.LockStaleTimeout {
		return false
	}
	process, err := findProcessFunc(h.PID)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/storage"
)

// ConfigSources supplies the fallbacks consulted when --config is left at
// its default.
type ConfigSources struct {
	Getenv  func(string) string
	Keyring func() (string, error)
}

// ResolveConfig picks the storage location. An explicit --config wins, then
// NICOLOG_DB_CONNECTION, then a connection string stored in the OS keyring,
// then the default path.
func ResolveConfig(flagValue string, src ConfigSources) string {
	if flagValue != "" && flagValue != constants.DefaultConfigPath {
		return ExpandHome(flagValue)
	}

	if src.Getenv != nil {
		if v := strings.TrimSpace(src.Getenv(constants.ConnectionEnvVar)); v != "" {
			logger.Debug("Using storage from environment", "var", constants.ConnectionEnvVar)
			return ExpandHome(v)
		}
	}

	if src.Keyring != nil {
		if v, err := src.Keyring(); err == nil && strings.TrimSpace(v) != "" {
			logger.Debug("Using connection string from OS keyring")
			return strings.TrimSpace(v)
		}
	}

	return ExpandHome(constants.DefaultConfigPath)
}

// ExpandHome replaces a leading ~ with the user's home directory. Connection
// strings are returned unchanged.
func ExpandHome(path string) string {
	if storage.IsPostgres(path) {
		return path
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ConfigDir is where logs and the lockfile live: next to a file store, or
// the default config directory for PostgreSQL.
func ConfigDir(config string) string {
	if storage.IsPostgres(config) {
		return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(config)
}

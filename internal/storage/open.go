package storage

import (
	"strings"

	"github.com/julianstephens/nicolog/internal/storage/postgres"
	"github.com/julianstephens/nicolog/internal/storage/sqlite"
)

// IsPostgres reports whether config is a PostgreSQL connection string.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// Open selects a Medium for config: a PostgreSQL connection string, a .json
// file, or a SQLite database path. The medium is returned unopened.
func Open(config string) (Medium, error) {
	switch {
	case IsPostgres(config):
		if ok, err := postgres.ValidateConnString(config); !ok {
			return nil, err
		}
		return postgres.New(config), nil
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return NewJSONStore(config), nil
	default:
		return sqlite.NewStore(config), nil
	}
}

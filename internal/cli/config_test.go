package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/nicolog/internal/constants"
)

func TestResolveConfig(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	defaultPath := filepath.Join(home, ".config", "nicolog", "nicolog.db")

	env := func(v string) func(string) string {
		return func(key string) string {
			if key == constants.ConnectionEnvVar {
				return v
			}
			return ""
		}
	}
	stored := func(v string, err error) func() (string, error) {
		return func() (string, error) { return v, err }
	}

	tests := []struct {
		name string
		flag string
		src  ConfigSources
		want string
	}{
		{
			name: "explicit flag wins",
			flag: "/tmp/custom.db",
			src:  ConfigSources{Getenv: env("postgres://env@host/db"), Keyring: stored("postgres://kr@host/db", nil)},
			want: "/tmp/custom.db",
		},
		{
			name: "environment beats keyring",
			flag: constants.DefaultConfigPath,
			src:  ConfigSources{Getenv: env("postgres://env@host/db"), Keyring: stored("postgres://kr@host/db", nil)},
			want: "postgres://env@host/db",
		},
		{
			name: "keyring used when environment empty",
			flag: constants.DefaultConfigPath,
			src:  ConfigSources{Getenv: env(""), Keyring: stored("postgres://kr@host/db", nil)},
			want: "postgres://kr@host/db",
		},
		{
			name: "keyring error falls through to default",
			flag: constants.DefaultConfigPath,
			src:  ConfigSources{Getenv: env(""), Keyring: stored("", errors.New("locked"))},
			want: defaultPath,
		},
		{
			name: "no sources",
			flag: "",
			want: defaultPath,
		},
		{
			name: "environment path is expanded",
			flag: constants.DefaultConfigPath,
			src:  ConfigSources{Getenv: env("~/logs/nicolog.json")},
			want: filepath.Join(home, "logs", "nicolog.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveConfig(tt.flag, tt.src); got != tt.want {
				t.Errorf("ResolveConfig() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/a/b.db", filepath.Join(home, "a", "b.db")},
		{"/abs/path.db", "/abs/path.db"},
		{"~other/x", "~other/x"},
		{"postgres://~user@host/db", "postgres://~user@host/db"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	if got := ConfigDir("/data/nicolog/store.db"); got != "/data/nicolog" {
		t.Errorf("unexpected dir for file store: %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	want := filepath.Join(home, ".config", "nicolog")
	if got := ConfigDir("postgresql://user@host/db"); got != want {
		t.Errorf("ConfigDir(postgres) = %q, want %q", got, want)
	}
}

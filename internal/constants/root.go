package constants

import "time"

// SessionState represents the current view of the TUI dashboard
type SessionState int

const (
	AppName            = "nicolog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/nicolog/nicolog.db"
	ConnectionEnvVar   = "NICOLOG_DB_CONNECTION"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage slot keys
	SlotLogs     = "logs"
	SlotSettings = "settings"

	// Export format
	ExportVersion = "1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "nicolog-"
	BackupFileSuffix = ".db"

	// Instance lock
	LockfileName     = "nicolog.lock"
	LockStaleTimeout = 24 * time.Hour

	// Server defaults
	DefaultListenAddr = "127.0.0.1:7474"

	// Dashboard defaults
	DefaultTrendDays = 14
)

// Session States
const (
	StateToday SessionState = iota
	StateTrend
	StateTimes
	StateMatrix
	StateLogs
	StateCheckIn
	StateEditSettings
)

// TabCount is the number of dashboard tabs; tab states come first
const TabCount = int(StateLogs) + 1

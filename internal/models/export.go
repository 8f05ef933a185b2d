package models

import (
	"encoding/json"
	"time"
)

// ExportFile is the document written by export and accepted by import
type ExportFile struct {
	Version    string      `json:"version"`
	ExportDate time.Time   `json:"exportDate"`
	Logs       []LogRecord `json:"logs"`
	Settings   Settings    `json:"settings"`
}

// ImportFile is the loosely-typed shape read during import, so that missing
// keys can be told apart from zero values.
type ImportFile struct {
	Version  string                     `json:"version"`
	Logs     json.RawMessage            `json:"logs"`
	Settings map[string]json.RawMessage `json:"settings"`
}

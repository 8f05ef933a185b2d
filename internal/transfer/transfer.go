// Package transfer moves the log collection and settings in and out of the
// portable export document.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/julianstephens/nicolog/internal/constants"
	apperrors "github.com/julianstephens/nicolog/internal/errors"
	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/storage"
	"github.com/julianstephens/nicolog/internal/utils"
)

// Snapshot builds the export document for the store's current contents.
func Snapshot(store *storage.LogStore) models.ExportFile {
	return models.ExportFile{
		Version:    constants.ExportVersion,
		ExportDate: store.Now(),
		Logs:       store.LoadAll(),
		Settings:   store.LoadSettings(),
	}
}

// Export writes the store's contents to w as indented JSON.
func Export(store *storage.LogStore, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(store)); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportFile writes an export document to path.
func ExportFile(store *storage.LogStore, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Export(store, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Import merges an export document into the store and returns the number of
// records added. Records whose id is already stored are skipped, and only the
// settings keys present in the document override the stored ones. A document
// that fails validation leaves the store untouched.
func Import(store *storage.LogStore, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, &apperrors.ImportReadError{Err: err}
	}

	incoming, file, err := decode(data)
	if err != nil {
		return 0, err
	}

	records := store.LoadAll()
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		seen[rec.ID] = true
	}

	added := 0
	for _, rec := range incoming {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if seen[rec.ID] {
			continue
		}
		if rec.Date == "" && !rec.Timestamp.IsZero() {
			rec.Date, rec.TimeOfDay = utils.Stamp(rec.Timestamp, store.Location())
		}
		if rec.HealthEffects == nil {
			rec.HealthEffects = []string{}
		}
		seen[rec.ID] = true
		records = append(records, rec)
		added++
	}

	if added > 0 {
		if err := store.SaveAll(records); err != nil {
			return 0, err
		}
	}

	if len(file.Settings) > 0 {
		settings, err := models.MergeSettings(store.LoadSettings(), file.Settings)
		if err != nil {
			return added, &apperrors.ImportValidationError{Reason: err.Error()}
		}
		models.ApplyDefaultSettings(&settings)
		if err := store.SaveSettings(settings); err != nil {
			return added, err
		}
	}

	logger.Info("Imported logs", "added", added, "skipped", len(incoming)-added)
	return added, nil
}

func decode(data []byte) ([]models.LogRecord, models.ImportFile, error) {
	var file models.ImportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, file, &apperrors.ImportValidationError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	raw := bytes.TrimSpace(file.Logs)
	if len(raw) == 0 {
		return nil, file, &apperrors.ImportValidationError{Reason: "logs is missing"}
	}
	if raw[0] != '[' {
		return nil, file, &apperrors.ImportValidationError{Reason: "logs is not an array"}
	}

	var records []models.LogRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, file, &apperrors.ImportValidationError{Reason: fmt.Sprintf("malformed log record: %v", err)}
	}

	if _, err := models.MergeSettings(models.DefaultSettings(), file.Settings); err != nil {
		return nil, file, &apperrors.ImportValidationError{Reason: err.Error()}
	}

	return records, file, nil
}

// ImportFile merges the export document at path into the store.
func ImportFile(store *storage.LogStore, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &apperrors.ImportReadError{Err: err}
	}
	defer f.Close()
	return Import(store, f)
}

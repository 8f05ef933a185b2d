package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/nicolog/internal/constants"
	apperrors "github.com/julianstephens/nicolog/internal/errors"
	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/sample"
	"github.com/julianstephens/nicolog/internal/stats"
	"github.com/julianstephens/nicolog/internal/transfer"
	"github.com/julianstephens/nicolog/internal/utils"
	"github.com/julianstephens/nicolog/internal/validation"
	"github.com/julianstephens/nicolog/internal/wizard"
)

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeError maps the error taxonomy onto HTTP status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrImportValidation), errors.Is(err, apperrors.ErrImportRead):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrStorage):
		status = http.StatusInsufficientStorage
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// dateParam reads an optional YYYY-MM-DD query parameter, defaulting to today
func (s *Server) dateParam(c *gin.Context, name string) (string, error) {
	date := c.Query(name)
	if date == "" {
		return s.store.Today(), nil
	}
	if !utils.ValidateDate(date) {
		return "", fmt.Errorf("%s must be YYYY-MM-DD, got %q", name, date)
	}
	return date, nil
}

func (s *Server) listLogs(c *gin.Context) {
	records := s.store.LoadAll()

	if date := c.Query("date"); date != "" {
		if !utils.ValidateDate(date) {
			badRequest(c, fmt.Errorf("date must be YYYY-MM-DD, got %q", date))
			return
		}
		filtered := []models.LogRecord{}
		for _, r := range records {
			if r.Date == date {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			badRequest(c, fmt.Errorf("limit must be a non-negative integer"))
			return
		}
		if limit < len(records) {
			records = records[len(records)-limit:]
		}
	}

	c.JSON(http.StatusOK, records)
}

func (s *Server) createLog(c *gin.Context) {
	var entry wizard.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		badRequest(c, err)
		return
	}

	draft, err := wizard.Build(entry)
	if err != nil {
		badRequest(c, err)
		return
	}

	record, err := s.store.Append(draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) latestToday(c *gin.Context) {
	record := s.store.MostRecentToday()
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no records today"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) amendLog(c *gin.Context) {
	var patch models.LogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := validation.ValidatePatch(patch); err != nil {
		badRequest(c, err)
		return
	}

	record, err := s.store.Amend(c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) checkIn(c *gin.Context) {
	var checkIn models.CheckIn
	if err := c.ShouldBindJSON(&checkIn); err != nil {
		badRequest(c, err)
		return
	}
	if err := validation.ValidateCheckIn(checkIn); err != nil {
		badRequest(c, err)
		return
	}

	record, created, err := s.store.CheckIn(checkIn)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"record": record, "created": created})
}

func (s *Server) dailyStats(c *gin.Context) {
	date, err := s.dateParam(c, "date")
	if err != nil {
		badRequest(c, err)
		return
	}

	day := stats.Daily(date, s.store.LoadAll())
	c.JSON(http.StatusOK, gin.H{
		"stats":    day,
		"progress": stats.LimitProgress(day, s.store.LoadSettings()),
	})
}

func (s *Server) timeOfDayStats(c *gin.Context) {
	c.JSON(http.StatusOK, stats.ByTimeOfDay(s.store.LoadAll()))
}

func (s *Server) sweetSpot(c *gin.Context) {
	c.JSON(http.StatusOK, stats.SweetSpot(s.store.LoadAll()))
}

func (s *Server) streak(c *gin.Context) {
	today := s.store.Today()
	c.JSON(http.StatusOK, gin.H{
		"today":  today,
		"streak": stats.Streak(s.store.LoadAll(), today),
	})
}

func (s *Server) trend(c *gin.Context) {
	end, err := s.dateParam(c, "end")
	if err != nil {
		badRequest(c, err)
		return
	}

	days := constants.DefaultTrendDays
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 || days > 366 {
			badRequest(c, fmt.Errorf("days must be between 1 and 366"))
			return
		}
	}

	c.JSON(http.StatusOK, stats.Trend(s.store.LoadAll(), end, days))
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.LoadSettings())
}

func (s *Server) putSettings(c *gin.Context) {
	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}

	settings, err := models.MergeSettings(models.DefaultSettings(), fields)
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := validation.ValidateSettings(settings); err != nil {
		badRequest(c, err)
		return
	}

	if err := s.store.SaveSettings(settings); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) export(c *gin.Context) {
	filename := fmt.Sprintf("%s-export-%s.json", constants.AppName, s.store.Today())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, transfer.Snapshot(s.store))
}

func (s *Server) importLogs(c *gin.Context) {
	if s.beforeImport != nil {
		if err := s.beforeImport(); err != nil {
			writeError(c, fmt.Errorf("pre-import backup failed: %w", err))
			return
		}
	}

	added, err := transfer.Import(s.store, c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (s *Server) seed(c *gin.Context) {
	days := sample.DefaultDays
	if raw := c.Query("days"); raw != "" {
		var err error
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 || days > 366 {
			badRequest(c, fmt.Errorf("days must be between 1 and 366"))
			return
		}
	}

	added, err := sample.Seed(s.store, days, s.newRand())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// Package server exposes the log store and statistics as a local JSON API.
package server

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/nicolog/internal/logger"
	"github.com/julianstephens/nicolog/internal/storage"
)

// Server serves one LogStore. Requests are handled one at a time so that
// read-modify-write cycles on the store never interleave.
type Server struct {
	store        *storage.LogStore
	engine       *gin.Engine
	mu           sync.Mutex
	beforeImport func() error
	newRand      func() *rand.Rand
}

// Option configures a Server
type Option func(*Server)

// WithBeforeImport runs fn before every import; a failure aborts the import.
func WithBeforeImport(fn func() error) Option {
	return func(s *Server) {
		s.beforeImport = fn
	}
}

// WithRand sets the random source used for sample data.
func WithRand(fn func() *rand.Rand) Option {
	return func(s *Server) {
		s.newRand = fn
	}
}

func New(store *storage.LogStore, opts ...Option) *Server {
	s := &Server{
		store: store,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the API
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), s.serialize())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		api.GET("/logs", s.listLogs)
		api.POST("/logs", s.createLog)
		api.GET("/logs/today/latest", s.latestToday)
		api.PATCH("/logs/:id", s.amendLog)
		api.POST("/checkin", s.checkIn)

		api.GET("/stats/daily", s.dailyStats)
		api.GET("/stats/time-of-day", s.timeOfDayStats)
		api.GET("/stats/sweet-spot", s.sweetSpot)
		api.GET("/stats/streak", s.streak)
		api.GET("/stats/trend", s.trend)

		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.putSettings)

		api.GET("/export", s.export)
		api.POST("/import", s.importLogs)
		api.POST("/seed", s.seed)
	}

	return r
}

func (s *Server) serialize() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Package server exposes the daily and weekly layouts over a read-only JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/grid"
	"github.com/chris/planner/internal/log"
	"github.com/chris/planner/internal/timetable"
)

const (
	dateLayout      = "2006-01-02"
	shutdownTimeout = 5 * time.Second
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NowResponse is the body of GET /api/now.
type NowResponse struct {
	Time   time.Time            `json:"time"`
	Date   string               `json:"date"`
	Label  string               `json:"label"`
	Daily  grid.NowMarker       `json:"daily"`
	Weekly *grid.WeeklyPosition `json:"weekly,omitempty"`
}

// Server serves layouts built from the entries in a database.
type Server struct {
	db     *db.DB
	cfg    grid.Config
	now    func() time.Time
	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithNow sets the function used to get the current time (for testing)
func WithNow(fn func() time.Time) Option {
	return func(s *Server) {
		s.now = fn
	}
}

// New builds a Server and its routes.
func New(database *db.DB, cfg grid.Config, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		db:  database,
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/health", s.health)
	api := r.Group("/api")
	{
		api.GET("/daily", s.daily)
		api.GET("/weekly", s.weekly)
		api.GET("/now", s.current)
	}

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func jsonError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
		if status >= http.StatusInternalServerError {
			log.Error(message, err)
		}
	}
	c.JSON(status, resp)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// date reads the ?date= query, defaulting to the grid day containing now.
func (s *Server) date(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return s.cfg.GridDate(s.now()), true
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return time.Time{}, false
	}
	return d, true
}

func (s *Server) daily(c *gin.Context) {
	date, ok := s.date(c)
	if !ok {
		return
	}

	unit := grid.UnitMinutes
	switch c.DefaultQuery("unit", "minutes") {
	case "minutes":
	case "blocks":
		unit = grid.UnitBlocks
	default:
		jsonError(c, http.StatusBadRequest, "invalid unit, expected minutes or blocks", nil)
		return
	}

	start, end := s.cfg.DayRange(date)
	entries, err := s.db.GetEntriesByRange(start, end)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to load entries", err)
		return
	}

	now := s.now()
	c.JSON(http.StatusOK, timetable.BuildDaily(s.cfg, entries, date, unit, timetable.Options{Now: &now}))
}

func (s *Server) weekly(c *gin.Context) {
	date, ok := s.date(c)
	if !ok {
		return
	}

	start, end := s.cfg.WeekRange(date)
	entries, err := s.db.GetEntriesByRange(start, end)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to load entries", err)
		return
	}

	now := s.now()
	c.JSON(http.StatusOK, timetable.BuildWeekly(s.cfg, entries, date, timetable.Options{Now: &now}))
}

func (s *Server) current(c *gin.Context) {
	now := s.now()
	date := s.cfg.GridDate(now)
	m := s.cfg.NowPosition(now)

	resp := NowResponse{
		Time:  now,
		Date:  date.Format(dateLayout),
		Label: s.cfg.FormatMinutes(m.Minutes, now),
		Daily: m,
	}
	if pos, ok := s.cfg.WeeklyNowPosition(now, s.cfg.WeekOrigin(date)); ok {
		resp.Weekly = &pos
	}
	c.JSON(http.StatusOK, resp)
}

package stats

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/internal/config"
)

const (
	DefaultAddr   = "127.0.0.1:1111"
	defaultPeriod = "7days"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// filterFromQuery resolves the period, start and end query parameters the
// same way the command line flags are resolved. Without any of them the
// last seven days are reported.
func (s *Stats) filterFromQuery(c *gin.Context) (*config.FilterConfig, error) {
	opts := config.FilterOptions{
		Now:    s.now(),
		Period: c.Query("period"),
		Start:  c.Query("start"),
		End:    c.Query("end"),
	}

	if opts.Period == "" && opts.Start == "" {
		opts.Period = defaultPeriod
	}

	return config.NewFilter(opts)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	if apperr.CodeOf(err) == apperr.CodeValidation {
		status = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

// getStats serves the summary for the requested period.
// GET /api/stats
func (s *Stats) getStats(c *gin.Context) {
	f, err := s.filterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := s.Summary(f)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to compute stats", slog.Any("error", err))
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, summary)
}

// listSessions serves the closed sessions of the requested period, most
// recent first.
// GET /api/sessions
func (s *Stats) listSessions(c *gin.Context) {
	f, err := s.filterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	sessions, err := s.Sessions(f)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to list sessions", slog.Any("error", err))
		writeError(c, err)

		return
	}

	sessions = filterSessions(sessions)

	out := make([]gin.H, 0, len(sessions))

	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]

		out = append(out, gin.H{
			"id":               sess.ID,
			"start_time":       sess.StartTime,
			"end_time":         sess.EndTime,
			"duration_minutes": sess.DurationMinutes,
			"wake_ups":         sess.WakeUps,
			"quality":          sess.Quality,
			"notes":            sess.Notes,
			"synced":           sess.Synced,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": out,
		"count":    len(out),
	})
}

// requestLogger logs every request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.DebugContext(c.Request.Context(), "api request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// Router returns the HTTP handler exposing the stats API.
func (s *Stats) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	api := router.Group("/api")
	{
		api.GET("/stats", s.getStats)
		api.GET("/sessions", s.listSessions)
	}

	return router
}

// Serve exposes the stats API on addr until ctx is cancelled.
func (s *Stats) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.InfoContext(ctx, "stats server started", slog.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}

// Package server hosts the report dashboard: the rendered HTML page plus
// the JSON endpoint its scripts (and any external tooling) read.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mpavlovic/rankwatch/internal/apperr"
	"github.com/mpavlovic/rankwatch/internal/report/html"
	"github.com/mpavlovic/rankwatch/internal/stats"
	mw "github.com/mpavlovic/rankwatch/pkg/middleware"
)

const gracefulShutdownTimeout = 10 * time.Second

// Report is the data the server exposes.
type Report struct {
	Title       string
	Engine      string
	GeneratedAt time.Time
	Groups      *stats.Groups
	Overall     stats.Overall
}

type Server struct {
	Echo *echo.Echo

	cfg    *Config
	report Report
}

func New(cfg *Config, report Report) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := &Server{Echo: e, cfg: cfg, report: report}
	s.setupMiddlewares()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet},
	}))
}

func (s *Server) setupRoutes() {
	s.Echo.GET("/", s.handleDashboard)
	s.Echo.GET("/api/report", s.handleReport)
	s.Echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) handleDashboard(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return html.Render(c.Response(), html.Payload{
		Title:       s.report.Title,
		Engine:      s.report.Engine,
		GeneratedAt: s.report.GeneratedAt,
		Groups:      s.report.Groups,
		Overall:     s.report.Overall,
	})
}

func (s *Server) handleReport(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"engine":  s.report.Engine,
		"groups":  s.report.Groups,
		"overall": s.report.Overall,
	})
}

func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	return s.Echo.Shutdown(shutdownCtx)
}

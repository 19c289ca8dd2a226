package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/solarwork/crewledger/internal/ledger"
	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/store"
)

// Server exposes the work ledger over HTTP so phones and office
// machines on the same network can read and record entries.
type Server struct {
	store    *store.Store
	ledger   *ledger.Ledger
	echo     *echo.Echo
	apiToken string
}

// New opens the ledger database at dbPath and builds the HTTP server.
// apiToken, when non-empty, is required as a Bearer token on /api/v1
// routes.
func New(dbPath, apiToken string) (*Server, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	led, notice, err := ledger.Open(st)
	if err != nil {
		st.Close()
		return nil, err
	}
	if notice != "" {
		logger.Info("migration notice", logger.F("notice", notice))
	}

	s := &Server{
		store:    st,
		ledger:   led,
		apiToken: apiToken,
	}
	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			duration := time.Since(start)

			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", duration.String()))

			fmt.Printf("REQUEST: %s %s  status=%d  size=%d  duration=%s\n",
				req.Method, req.RequestURI, res.Status, res.Size, duration)

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")
	api.Use(s.authMiddleware)

	api.GET("/workers", s.handleListWorkers)
	api.POST("/workers", s.handleAddWorker)
	api.POST("/workers/import", s.handleImportWorkers)
	api.PATCH("/workers/:id", s.handleUpdateWorker)
	api.DELETE("/workers/:id", s.handleDeleteWorker)

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleAddProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)
	api.GET("/projects/:id/plan", s.handleGetPlan)
	api.PUT("/projects/:id/plan", s.handlePutPlan)

	api.GET("/entries", s.handleListEntries)
	api.DELETE("/entries/:id", s.handleDeleteEntry)

	api.POST("/tasks", s.handleAddTask)
	api.POST("/tasks/import", s.handleImportTasks)
	api.PATCH("/tasks/:id", s.handleUpdateTask)

	api.GET("/shift", s.handleShiftStatus)
	api.POST("/shift/start", s.handleShiftStart)
	api.POST("/shift/stop", s.handleShiftStop)
	api.POST("/shift/break/start", s.handleBreakStart)
	api.POST("/shift/break/end", s.handleBreakEnd)

	api.GET("/stats", s.handleStats)

	api.GET("/backup", s.handleBackup)
	api.POST("/restore", s.handleRestore)

	s.echo = e
}

// Close closes the underlying database.
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

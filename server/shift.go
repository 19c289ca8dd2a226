package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solarwork/crewledger/internal/ledger"
)

type shiftStatus struct {
	IsRunning     bool   `json:"isRunning"`
	WorkerID      string `json:"workerId,omitempty"`
	WorkerName    string `json:"workerName,omitempty"`
	OnBreak       bool   `json:"onBreak"`
	ElapsedMillis int64  `json:"elapsedMillis"`
}

func (s *Server) handleShiftStatus(c echo.Context) error {
	timer := s.ledger.Timer()
	status := shiftStatus{IsRunning: timer.IsRunning}
	if timer.IsRunning {
		status.WorkerID = timer.WorkerID
		status.WorkerName = s.ledger.WorkerName(timer.WorkerID)
		status.OnBreak = timer.BreakStart != nil
		status.ElapsedMillis = ledger.Elapsed(time.Now(), timer).Milliseconds()
	}
	return c.JSON(http.StatusOK, status)
}

func (s *Server) handleShiftStart(c echo.Context) error {
	var req struct {
		WorkerID string `json:"workerId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	timer, err := s.ledger.StartShift(req.WorkerID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, timer)
}

func (s *Server) handleShiftStop(c echo.Context) error {
	entry, err := s.ledger.StopShift()
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleBreakStart(c echo.Context) error {
	if err := s.ledger.StartBreak(); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, s.ledger.Timer())
}

func (s *Server) handleBreakEnd(c echo.Context) error {
	if err := s.ledger.EndBreak(); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, s.ledger.Timer())
}

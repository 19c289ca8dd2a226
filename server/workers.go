package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarwork/crewledger/internal/ledger"
)

type workerRequest struct {
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	HourlyRate *float64 `json:"hourlyRate"`
	Color      string   `json:"color"`
}

func (s *Server) handleListWorkers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.ledger.Workers())
}

func (s *Server) handleAddWorker(c echo.Context) error {
	var req workerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	rate := 0.0
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}
	w, err := s.ledger.AddWorker(req.Name, req.Code, rate, req.Color)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

func (s *Server) handleImportWorkers(c echo.Context) error {
	var inputs []ledger.WorkerInput
	if err := c.Bind(&inputs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	return c.JSON(http.StatusOK, s.ledger.AddMultipleWorkers(inputs))
}

// workerPatchRequest distinguishes absent fields from empty ones, so
// a PATCH with "code": "" clears the code while an omitted code leaves
// it alone.
type workerPatchRequest struct {
	Name       *string  `json:"name"`
	Code       *string  `json:"code"`
	HourlyRate *float64 `json:"hourlyRate"`
}

func (s *Server) handleUpdateWorker(c echo.Context) error {
	var req workerPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	w, err := s.ledger.UpdateWorker(c.Param("id"), ledger.WorkerPatch{
		Name:       req.Name,
		Code:       req.Code,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (s *Server) handleDeleteWorker(c echo.Context) error {
	if err := s.ledger.DeleteWorker(c.Param("id")); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solarwork/crewledger/internal/ledger"
	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
)

// entryFilter builds a query filter from the request's query params:
// type, workerId, projectId, range, from, to (dates as YYYY-MM-DD).
func entryFilter(c echo.Context, hourlyPassProject bool) (query.Filter, error) {
	f := query.Filter{
		Type:              model.EntryType(c.QueryParam("type")),
		WorkerID:          c.QueryParam("workerId"),
		ProjectID:         c.QueryParam("projectId"),
		HourlyPassProject: hourlyPassProject,
	}

	if r := c.QueryParam("range"); r != "" {
		from, to, err := query.ResolveRange(r, time.Now())
		if err != nil {
			return f, err
		}
		f.DateFrom, f.DateTo = from, to
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return f, err
		}
		f.DateFrom = model.Millis(t)
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return f, err
		}
		f.DateTo = model.Millis(t.Add(24*time.Hour - time.Millisecond))
	}
	return f, nil
}

func (s *Server) handleListEntries(c echo.Context) error {
	f, err := entryFilter(c, false)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entries := query.Entries(s.ledger.Entries(), f)
	query.SortNewestFirst(entries)
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleDeleteEntry(c echo.Context) error {
	if err := s.ledger.DeleteEntry(c.Param("id")); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAddTask(c echo.Context) error {
	var in ledger.TaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	entry, err := s.ledger.AddTask(in)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleImportTasks(c echo.Context) error {
	var inputs []ledger.TaskInput
	if err := c.Bind(&inputs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	return c.JSON(http.StatusOK, s.ledger.AddMultipleTasks(inputs))
}

type taskPatchRequest struct {
	TableNumber     *string  `json:"tableNumber"`
	RewardPerWorker *float64 `json:"rewardPerWorker"`
	WorkerIDs       []string `json:"workerIds"`
	X               *float64 `json:"x"`
	Y               *float64 `json:"y"`
	PageNum         *int     `json:"pageNum"`
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req taskPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	entry, err := s.ledger.UpdateTask(c.Param("id"), ledger.TaskPatch{
		TableNumber:     req.TableNumber,
		RewardPerWorker: req.RewardPerWorker,
		WorkerIDs:       req.WorkerIDs,
		X:               req.X,
		Y:               req.Y,
		PageNum:         req.PageNum,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleStats(c echo.Context) error {
	f, err := entryFilter(c, true)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, query.Aggregate(query.Entries(s.ledger.Entries(), f)))
}

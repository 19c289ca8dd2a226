package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarwork/crewledger/internal/model"
)

// maxPlanBytes caps uploaded floor plans at 32 MiB.
const maxPlanBytes = 32 << 20

type projectView struct {
	model.Project
	HasPlan bool `json:"hasPlan"`
}

func (s *Server) handleListProjects(c echo.Context) error {
	ctx := c.Request().Context()
	projects := s.ledger.Projects()

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		has, err := s.store.HasPlan(ctx, p.ID)
		if err != nil {
			return httpError(c, err)
		}
		views = append(views, projectView{Project: p, HasPlan: has})
	}
	return c.JSON(http.StatusOK, views)
}

// handleAddProject accepts multipart form data with a "name" field and
// an optional "plan" PDF file.
func (s *Server) handleAddProject(c echo.Context) error {
	name := c.FormValue("name")

	plan, err := readPlanUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	p, err := s.ledger.AddProject(c.Request().Context(), name, plan)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.ledger.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetPlan(c echo.Context) error {
	pdf, err := s.ledger.Plan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// handlePutPlan replaces the stored floor plan. The body is the raw
// PDF bytes.
func (s *Server) handlePutPlan(c echo.Context) error {
	pdf, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPlanBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
	}
	if len(pdf) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty plan upload"})
	}

	p, err := s.ledger.UpdateProject(c.Request().Context(), c.Param("id"), "", pdf)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func readPlanUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("plan")
	if err != nil {
		// No file attached is fine; projects can exist without a plan.
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxPlanBytes))
}

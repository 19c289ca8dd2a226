package model

import (
	"strings"

	"github.com/google/uuid"
)

// Project is a job site. The floor-plan PDF is stored out of band in the
// plan blob store under the same id; a project may exist without one.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewProject creates a project with a fresh id.
func NewProject(name string) Project {
	return Project{
		ID:   "proj-" + uuid.NewString(),
		Name: strings.TrimSpace(name),
	}
}

package ledger

import (
	"context"
	"strings"

	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/model"
)

// AddProject creates a project, storing the plan document first when
// one is supplied so a failed upload never leaves a project pointing at
// a plan that was not written.
func (l *Ledger) AddProject(ctx context.Context, name string, plan []byte) (model.Project, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return model.Project{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	p := model.NewProject(name)
	if len(plan) > 0 {
		if err := l.store.SavePlan(ctx, p.ID, plan); err != nil {
			return model.Project{}, err
		}
	}

	l.state.Projects = append(l.state.Projects, p)
	if err := l.persist(); err != nil {
		l.state.Projects = l.state.Projects[:len(l.state.Projects)-1]
		return model.Project{}, err
	}

	logger.Info("project added", logger.F("id", p.ID), logger.F("name", p.Name),
		logger.F("hasPlan", len(plan) > 0))
	return p, nil
}

// UpdateProject renames a project and optionally replaces its plan.
func (l *Ledger) UpdateProject(ctx context.Context, id, name string, plan []byte) (model.Project, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.state.FindProject(id)
	if p == nil {
		return model.Project{}, &NotFoundError{Kind: "project", ID: id}
	}

	if len(plan) > 0 {
		if err := l.store.SavePlan(ctx, id, plan); err != nil {
			return model.Project{}, err
		}
	}

	prev := p.Name
	if strings.TrimSpace(name) != "" {
		p.Name = strings.TrimSpace(name)
	}
	if err := l.persist(); err != nil {
		p.Name = prev
		return model.Project{}, err
	}
	return *p, nil
}

// DeleteProject removes a project, its plan document and every work
// entry referencing the project id.
func (l *Ledger) DeleteProject(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.state.Projects {
		if l.state.Projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "project", ID: id}
	}

	projects := append([]model.Project(nil), l.state.Projects[:idx]...)
	projects = append(projects, l.state.Projects[idx+1:]...)

	kept := make([]model.WorkEntry, 0, len(l.state.WorkEntries))
	removed := 0
	for _, e := range l.state.WorkEntries {
		if e.Type == model.EntryTask && e.ProjectID == id {
			removed++
			continue
		}
		kept = append(kept, e)
	}

	prevProjects, prevEntries := l.state.Projects, l.state.WorkEntries
	l.state.Projects = projects
	l.state.WorkEntries = kept
	if err := l.persist(); err != nil {
		l.state.Projects = prevProjects
		l.state.WorkEntries = prevEntries
		return err
	}

	// The plan blob goes last so a persist failure leaves the upload
	// intact. The delete itself is idempotent.
	if err := l.store.DeletePlan(ctx, id); err != nil {
		return err
	}

	logger.Info("project deleted", logger.F("id", id), logger.F("cascadedEntries", removed))
	return nil
}

// Plan returns the stored plan document for a project. A project with
// no upload yields store.ErrNotFound, which callers surface as a
// "plan missing, please re-upload" condition rather than a failure.
func (l *Ledger) Plan(ctx context.Context, id string) ([]byte, error) {
	if _, err := l.Project(id); err != nil {
		return nil, err
	}
	return l.store.LoadPlan(ctx, id)
}

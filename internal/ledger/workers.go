package ledger

import (
	"math"
	"strings"

	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/model"
)

// WorkerPatch holds the editable worker fields. Nil fields are left
// unchanged. The id and color are never patched, and task entries keep
// the worker-code snapshots taken when they were created.
type WorkerPatch struct {
	Name       *string
	Code       *string
	HourlyRate *float64
}

// AddWorker creates a worker. The color comes from the palette by
// worker count unless one is supplied.
func (l *Ledger) AddWorker(name, code string, hourlyRate float64, color string) (model.Worker, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return model.Worker{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if hourlyRate < 0 || math.IsNaN(hourlyRate) || math.IsInf(hourlyRate, 0) {
		return model.Worker{}, &ValidationError{Field: "hourlyRate", Reason: "must be a non-negative number"}
	}
	if color == "" {
		color = nextColor(len(l.state.Workers))
	}

	w := model.NewWorker(name, code, hourlyRate, color)
	l.state.Workers = append(l.state.Workers, w)
	if err := l.persist(); err != nil {
		l.state.Workers = l.state.Workers[:len(l.state.Workers)-1]
		return model.Worker{}, err
	}

	logger.Info("worker added", logger.F("id", w.ID), logger.F("name", w.Name))
	return w, nil
}

// UpdateWorker merges a patch into an existing worker.
func (l *Ledger) UpdateWorker(id string, patch WorkerPatch) (model.Worker, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.state.FindWorker(id)
	if w == nil {
		return model.Worker{}, &NotFoundError{Kind: "worker", ID: id}
	}

	prev := *w
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return model.Worker{}, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		w.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Code != nil {
		w.Code = strings.TrimSpace(*patch.Code)
	}
	if patch.HourlyRate != nil {
		if *patch.HourlyRate < 0 {
			return model.Worker{}, &ValidationError{Field: "hourlyRate", Reason: "must be a non-negative number"}
		}
		w.HourlyRate = *patch.HourlyRate
	}

	if err := l.persist(); err != nil {
		*w = prev
		return model.Worker{}, err
	}
	return *w, nil
}

// DeleteWorker removes a worker. Work entries referencing the id are
// left untouched and resolve to the unknown-worker placeholder.
func (l *Ledger) DeleteWorker(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.state.Workers {
		if l.state.Workers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "worker", ID: id}
	}

	removed := l.state.Workers[idx]
	l.state.Workers = append(l.state.Workers[:idx], l.state.Workers[idx+1:]...)
	if err := l.persist(); err != nil {
		l.state.Workers = append(l.state.Workers[:idx],
			append([]model.Worker{removed}, l.state.Workers[idx:]...)...)
		return err
	}

	logger.Info("worker deleted", logger.F("id", id), logger.F("name", removed.Name))
	return nil
}

package ledger

import (
	"math"
	"strings"

	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/model"
)

// TaskInput describes a task entry to create. X and Y are unscaled
// plan-document coordinates, nil for manual entries without a pin.
type TaskInput struct {
	ProjectID       string   `json:"projectId" yaml:"projectId"`
	TableNumber     string   `json:"tableNumber" yaml:"tableNumber"`
	WorkerIDs       []string `json:"workerIds" yaml:"workerIds"`
	RewardPerWorker float64  `json:"rewardPerWorker" yaml:"rewardPerWorker"`
	X               *float64 `json:"x" yaml:"x"`
	Y               *float64 `json:"y" yaml:"y"`
	PageNum         int      `json:"pageNum" yaml:"pageNum"`
}

// AddTask records a completed task. The worker snapshot is taken from
// the current worker codes; a missing worker snapshots as "?" so the
// pin still renders.
func (l *Ledger) AddTask(in TaskInput) (model.WorkEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addTaskLocked(in)
}

func (l *Ledger) addTaskLocked(in TaskInput) (model.WorkEntry, error) {
	if l.state.FindProject(in.ProjectID) == nil {
		return model.WorkEntry{}, &NotFoundError{Kind: "project", ID: in.ProjectID}
	}
	if len(in.WorkerIDs) == 0 {
		return model.WorkEntry{}, &ValidationError{Field: "workerIds", Reason: "must not be empty"}
	}
	if in.RewardPerWorker < 0 || math.IsNaN(in.RewardPerWorker) || math.IsInf(in.RewardPerWorker, 0) {
		return model.WorkEntry{}, &ValidationError{Field: "rewardPerWorker", Reason: "must be a non-negative number"}
	}

	snapshot := make([]model.TaskWorker, 0, len(in.WorkerIDs))
	for _, id := range in.WorkerIDs {
		code := model.UnknownWorkerCode
		if w := l.state.FindWorker(id); w != nil && w.Code != "" {
			code = w.Code
		}
		snapshot = append(snapshot, model.TaskWorker{WorkerID: id, WorkerCode: code})
	}

	pageNum := in.PageNum
	if pageNum < 1 {
		pageNum = 1
	}

	e := model.WorkEntry{
		ID:              model.NewEntryID(),
		Type:            model.EntryTask,
		ProjectID:       in.ProjectID,
		TableNumber:     strings.TrimSpace(in.TableNumber),
		RewardPerWorker: in.RewardPerWorker,
		X:               in.X,
		Y:               in.Y,
		PageNum:         pageNum,
		Timestamp:       model.Millis(l.now()),
		Workers:         snapshot,
	}

	l.state.WorkEntries = append(l.state.WorkEntries, e)
	if err := l.persist(); err != nil {
		l.state.WorkEntries = l.state.WorkEntries[:len(l.state.WorkEntries)-1]
		return model.WorkEntry{}, err
	}

	logger.Info("task added", logger.F("id", e.ID), logger.F("table", e.TableNumber),
		logger.F("workers", len(e.Workers)))
	return e, nil
}

// TaskPatch holds the editable task-entry fields. Nil fields are left
// unchanged. Position fields X/Y are applied together.
type TaskPatch struct {
	TableNumber     *string
	RewardPerWorker *float64
	WorkerIDs       []string
	X               *float64
	Y               *float64
	PageNum         *int
}

// UpdateTask edits a task entry, re-snapshotting worker codes when the
// worker list changes.
func (l *Ledger) UpdateTask(id string, patch TaskPatch) (model.WorkEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.state.FindEntry(id)
	if e == nil || e.Type != model.EntryTask {
		return model.WorkEntry{}, &NotFoundError{Kind: "entry", ID: id}
	}

	prev := *e
	if patch.TableNumber != nil {
		e.TableNumber = strings.TrimSpace(*patch.TableNumber)
	}
	if patch.RewardPerWorker != nil {
		if *patch.RewardPerWorker < 0 || math.IsNaN(*patch.RewardPerWorker) || math.IsInf(*patch.RewardPerWorker, 0) {
			return model.WorkEntry{}, &ValidationError{Field: "rewardPerWorker", Reason: "must be a non-negative number"}
		}
		e.RewardPerWorker = *patch.RewardPerWorker
	}
	if patch.WorkerIDs != nil {
		if len(patch.WorkerIDs) == 0 {
			return model.WorkEntry{}, &ValidationError{Field: "workerIds", Reason: "must not be empty"}
		}
		snapshot := make([]model.TaskWorker, 0, len(patch.WorkerIDs))
		for _, wid := range patch.WorkerIDs {
			code := model.UnknownWorkerCode
			if w := l.state.FindWorker(wid); w != nil && w.Code != "" {
				code = w.Code
			}
			snapshot = append(snapshot, model.TaskWorker{WorkerID: wid, WorkerCode: code})
		}
		e.Workers = snapshot
	}
	if patch.X != nil && patch.Y != nil {
		e.X = patch.X
		e.Y = patch.Y
	}
	if patch.PageNum != nil && *patch.PageNum >= 1 {
		e.PageNum = *patch.PageNum
	}

	if err := l.persist(); err != nil {
		*e = prev
		return model.WorkEntry{}, err
	}
	return *e, nil
}

// DeleteEntry removes a work entry of either type.
func (l *Ledger) DeleteEntry(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.state.WorkEntries {
		if l.state.WorkEntries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "entry", ID: id}
	}

	removed := l.state.WorkEntries[idx]
	l.state.WorkEntries = append(l.state.WorkEntries[:idx], l.state.WorkEntries[idx+1:]...)
	if err := l.persist(); err != nil {
		l.state.WorkEntries = append(l.state.WorkEntries[:idx],
			append([]model.WorkEntry{removed}, l.state.WorkEntries[idx:]...)...)
		return err
	}
	return nil
}

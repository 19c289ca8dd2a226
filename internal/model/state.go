package model

import "encoding/json"

// AppState is the root aggregate persisted as a single JSON blob.
// Templates are opaque to the core and carried through untouched.
type AppState struct {
	Workers     []Worker          `json:"workers"`
	Projects    []Project         `json:"projects"`
	WorkEntries []WorkEntry       `json:"workEntries"`
	Templates   []json.RawMessage `json:"templates"`
	Settings    map[string]any    `json:"settings"`
}

// NewAppState returns an empty state with all collections allocated.
func NewAppState() *AppState {
	return &AppState{
		Workers:     []Worker{},
		Projects:    []Project{},
		WorkEntries: []WorkEntry{},
		Templates:   []json.RawMessage{},
		Settings:    map[string]any{},
	}
}

// FindWorker returns the worker with the given id, or nil.
func (s *AppState) FindWorker(id string) *Worker {
	for i := range s.Workers {
		if s.Workers[i].ID == id {
			return &s.Workers[i]
		}
	}
	return nil
}

// FindProject returns the project with the given id, or nil.
func (s *AppState) FindProject(id string) *Project {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i]
		}
	}
	return nil
}

// FindEntry returns the work entry with the given id, or nil.
func (s *AppState) FindEntry(id string) *WorkEntry {
	for i := range s.WorkEntries {
		if s.WorkEntries[i].ID == id {
			return &s.WorkEntries[i]
		}
	}
	return nil
}

// TimerState is the singleton shift timer, persisted independently of
// the ledger so a running shift survives restarts. StartTime is epoch
// milliseconds. The display refresh handle is never persisted; elapsed
// time is always recomputed as now minus StartTime, never accumulated.
type TimerState struct {
	IsRunning bool   `json:"isRunning"`
	StartTime *int64 `json:"startTime"`
	WorkerID  string `json:"workerId,omitempty"`

	// Break tracking: BreakStart is set while a break is open,
	// TotalBreakMillis accumulates closed breaks. Break time is
	// excluded from the shift's totalHours.
	BreakStart       *int64 `json:"breakStartTime"`
	TotalBreakMillis int64  `json:"totalBreakTime"`
}

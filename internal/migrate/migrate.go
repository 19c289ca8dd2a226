// Package migrate loads persisted state blobs of unknown vintage and
// upgrades them to the current schema. All legacy field coalescing
// lives here so downstream code can assume one canonical shape.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/store"
)

// Notice produced when state was recovered from the previous major
// version's storage key. Shown to the user once; the migrated blob is
// persisted under the current key so the legacy path never runs again.
const LegacyMigrationNotice = "Data migrated from the v3 schema"

// wireProject tolerates the legacy project-name key.
type wireProject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LegacyName string `json:"jmenoProjektu"`
}

// wireEntry is a work entry as it may appear on disk, including fields
// that only legacy schemas carry: a singular workerId/workerCode pair
// and a singular reward on task entries.
type wireEntry struct {
	ID   string          `json:"id"`
	Type model.EntryType `json:"type"`

	WorkerID    string  `json:"workerId"`
	StartTime   int64   `json:"startTime"`
	EndTime     int64   `json:"endTime"`
	TotalHours  float64 `json:"totalHours"`
	TotalEarned float64 `json:"totalEarned"`

	ProjectID       string             `json:"projectId"`
	TableNumber     string             `json:"tableNumber"`
	RewardPerWorker *float64           `json:"rewardPerWorker"`
	Reward          *float64           `json:"reward"`
	WorkerCode      string             `json:"workerCode"`
	X               *float64           `json:"x"`
	Y               *float64           `json:"y"`
	PageNum         int                `json:"pageNum"`
	Timestamp       int64              `json:"timestamp"`
	Workers         []model.TaskWorker `json:"workers"`
}

type wireState struct {
	Workers     []model.Worker    `json:"workers"`
	Projects    []wireProject     `json:"projects"`
	WorkEntries []wireEntry       `json:"workEntries"`
	Templates   []json.RawMessage `json:"templates"`
	Settings    map[string]any    `json:"settings"`
}

// LoadState reads the persisted application state, upgrading it to the
// current schema. If the current key is absent it falls back to the
// legacy v3 key and returns LegacyMigrationNotice. The corrected state
// is re-persisted immediately so the on-disk copy never regresses to a
// legacy shape on the next load.
func LoadState(st *store.Store) (*model.AppState, string, error) {
	raw, err := st.Get(store.StateKey)
	if err == nil {
		state, err := decode(raw)
		if err != nil {
			return nil, "", err
		}
		if err := SaveState(st, state); err != nil {
			return nil, "", err
		}
		return state, "", nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	raw, err = st.Get(store.LegacyStateKey)
	if errors.Is(err, store.ErrNotFound) {
		return model.NewAppState(), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	state, err := decode(raw)
	if err != nil {
		return nil, "", err
	}
	if err := SaveState(st, state); err != nil {
		return nil, "", err
	}
	logger.Info("migrated state from legacy key",
		logger.F("from", store.LegacyStateKey),
		logger.F("entries", len(state.WorkEntries)))
	return state, LegacyMigrationNotice, nil
}

// SaveState persists the application state under the current key.
func SaveState(st *store.Store, state *model.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return st.Put(store.StateKey, string(data))
}

// LoadTimer reads the persisted timer state. An absent key yields a
// stopped timer.
func LoadTimer(st *store.Store) (model.TimerState, error) {
	raw, err := st.Get(store.TimerKey)
	if errors.Is(err, store.ErrNotFound) {
		return model.TimerState{}, nil
	}
	if err != nil {
		return model.TimerState{}, err
	}

	var timer model.TimerState
	if err := json.Unmarshal([]byte(raw), &timer); err != nil {
		return model.TimerState{}, fmt.Errorf("failed to decode timer state: %w", err)
	}
	return timer, nil
}

// SaveTimer persists the timer state.
func SaveTimer(st *store.Store, timer model.TimerState) error {
	data, err := json.Marshal(timer)
	if err != nil {
		return fmt.Errorf("failed to encode timer state: %w", err)
	}
	return st.Put(store.TimerKey, string(data))
}

func decode(raw string) (*model.AppState, error) {
	var ws wireState
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		return nil, fmt.Errorf("failed to decode state blob: %w", err)
	}
	return upgrade(&ws), nil
}

// upgrade normalizes a decoded blob to the current schema. It is
// idempotent: an already-current blob passes through unchanged.
func upgrade(ws *wireState) *model.AppState {
	state := model.NewAppState()

	if ws.Workers != nil {
		state.Workers = ws.Workers
	}
	if ws.Templates != nil {
		state.Templates = ws.Templates
	}
	if ws.Settings != nil {
		state.Settings = ws.Settings
	}

	for _, p := range ws.Projects {
		name := p.Name
		if name == "" {
			name = p.LegacyName
		}
		state.Projects = append(state.Projects, model.Project{ID: p.ID, Name: name})
	}

	for _, we := range ws.WorkEntries {
		state.WorkEntries = append(state.WorkEntries, upgradeEntry(we))
	}
	return state
}

func upgradeEntry(we wireEntry) model.WorkEntry {
	e := model.WorkEntry{
		ID:          we.ID,
		Type:        we.Type,
		WorkerID:    we.WorkerID,
		StartTime:   we.StartTime,
		EndTime:     we.EndTime,
		TotalHours:  we.TotalHours,
		TotalEarned: we.TotalEarned,

		ProjectID:   we.ProjectID,
		TableNumber: we.TableNumber,
		X:           we.X,
		Y:           we.Y,
		PageNum:     we.PageNum,
		Timestamp:   we.Timestamp,
		Workers:     we.Workers,
	}
	if we.RewardPerWorker != nil {
		e.RewardPerWorker = *we.RewardPerWorker
	}

	switch e.Type {
	case model.EntryTask:
		if len(e.Workers) == 0 && we.WorkerID != "" {
			code := we.WorkerCode
			if code == "" {
				code = model.UnknownWorkerCode
			}
			e.Workers = []model.TaskWorker{{WorkerID: we.WorkerID, WorkerCode: code}}
		}
		// Rendering and aggregation assume a non-empty worker list.
		if len(e.Workers) == 0 {
			e.Workers = []model.TaskWorker{{
				WorkerID:   model.UnknownWorkerID,
				WorkerCode: model.UnknownWorkerCode,
			}}
		}
		if we.RewardPerWorker == nil && we.Reward != nil {
			e.RewardPerWorker = *we.Reward
		}
		if e.PageNum < 1 {
			e.PageNum = 1
		}
		// The singular worker fields are legacy-only on tasks; the
		// snapshot now lives in Workers.
		e.WorkerID = ""
	case model.EntryHourly:
		// Hourly entries have kept the same shape across versions.
	}
	return e
}

// Package ledger exposes the mutating operations on the work-entry
// ledger: workers, projects, task entries, and the shift timer. Every
// successful mutation is persisted through the store before returning.
package ledger

import (
	"sync"
	"time"

	"github.com/solarwork/crewledger/internal/migrate"
	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/store"
)

// Ledger owns the application state and the shift timer. It is safe
// for concurrent callers (the HTTP server shares one instance with the
// TUI); across processes the persisted blob is last-write-wins.
type Ledger struct {
	mu    sync.Mutex
	state *model.AppState
	timer model.TimerState
	store *store.Store

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// Open loads the persisted state through the schema migration and
// returns a ready ledger plus any one-time migration notice.
func Open(st *store.Store) (*Ledger, string, error) {
	state, notice, err := migrate.LoadState(st)
	if err != nil {
		return nil, "", err
	}
	timer, err := migrate.LoadTimer(st)
	if err != nil {
		return nil, "", err
	}
	return &Ledger{
		state: state,
		timer: timer,
		store: st,
		now:   time.Now,
	}, notice, nil
}

// Reload replaces the in-memory state and timer with what the store
// currently holds. Called after a restore rewrote the underlying rows,
// so handlers sharing this instance never see a stale ledger.
func (l *Ledger) Reload() error {
	state, _, err := migrate.LoadState(l.store)
	if err != nil {
		return err
	}
	timer, err := migrate.LoadTimer(l.store)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
	l.timer = timer
	return nil
}

// SetClock overrides the time source. Intended for tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// persist writes the current state under the store lock held by the
// caller. Mutations call it before returning success.
func (l *Ledger) persist() error {
	return migrate.SaveState(l.store, l.state)
}

func (l *Ledger) persistTimer() error {
	return migrate.SaveTimer(l.store, l.timer)
}

// Workers returns a copy of the worker collection.
func (l *Ledger) Workers() []model.Worker {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Worker, len(l.state.Workers))
	copy(out, l.state.Workers)
	return out
}

// Projects returns a copy of the project collection.
func (l *Ledger) Projects() []model.Project {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Project, len(l.state.Projects))
	copy(out, l.state.Projects)
	return out
}

// Entries returns a copy of the work-entry collection.
func (l *Ledger) Entries() []model.WorkEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.WorkEntry, len(l.state.WorkEntries))
	copy(out, l.state.WorkEntries)
	return out
}

// Worker returns the worker with the given id.
func (l *Ledger) Worker(id string) (model.Worker, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.state.FindWorker(id)
	if w == nil {
		return model.Worker{}, &NotFoundError{Kind: "worker", ID: id}
	}
	return *w, nil
}

// Project returns the project with the given id.
func (l *Ledger) Project(id string) (model.Project, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := l.state.FindProject(id)
	if p == nil {
		return model.Project{}, &NotFoundError{Kind: "project", ID: id}
	}
	return *p, nil
}

// Timer returns the current timer state.
func (l *Ledger) Timer() model.TimerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timer
}

// WorkerName resolves a worker id to a display name, falling back to
// the unknown-worker placeholder for entries whose worker was deleted.
func (l *Ledger) WorkerName(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w := l.state.FindWorker(id); w != nil {
		return w.Name
	}
	return "Unknown"
}

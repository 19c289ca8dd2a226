package ledger

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/store"
)

// testClock is an adjustable time source for deterministic timer math.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLedger(t *testing.T) (*Ledger, *store.Store, *testClock) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	led, notice, err := Open(st)
	require.NoError(t, err)
	require.Empty(t, notice)

	clock := &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)}
	led.SetClock(clock.Now)
	return led, st, clock
}

func addWorker(t *testing.T, led *Ledger, name, code string, rate float64) model.Worker {
	t.Helper()
	w, err := led.AddWorker(name, code, rate, "")
	require.NoError(t, err)
	return w
}

func addProject(t *testing.T, led *Ledger, name string) model.Project {
	t.Helper()
	p, err := led.AddProject(context.Background(), name, nil)
	require.NoError(t, err)
	return p
}

func TestAddWorkerAssignsPaletteColors(t *testing.T) {
	led, _, _ := newTestLedger(t)

	for i := 0; i < len(WorkerColors)+2; i++ {
		w := addWorker(t, led, "Worker", "", 10)
		assert.Equal(t, WorkerColors[i%len(WorkerColors)], w.Color)
	}
}

func TestAddWorkerValidation(t *testing.T) {
	led, _, _ := newTestLedger(t)

	tests := []struct {
		name  string
		wname string
		rate  float64
	}{
		{"empty name", "", 10},
		{"blank name", "   ", 10},
		{"negative rate", "Ana", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := led.AddWorker(tt.wname, "", tt.rate, "")
			assert.True(t, IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestAddWorkerKeepsExplicitColor(t *testing.T) {
	led, _, _ := newTestLedger(t)

	w, err := led.AddWorker("Ana", "A1", 10, "#123456")
	require.NoError(t, err)
	assert.Equal(t, "#123456", w.Color)
}

func TestUpdateWorker(t *testing.T) {
	led, _, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)

	name := "Anna"
	rate := 15.5
	updated, err := led.UpdateWorker(w.ID, WorkerPatch{Name: &name, HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, 15.5, updated.HourlyRate)
	assert.Equal(t, "A1", updated.Code, "unpatched fields stay")
	assert.Equal(t, w.Color, updated.Color, "color is never reassigned")

	_, err = led.UpdateWorker("worker-missing", WorkerPatch{Name: &name})
	assert.True(t, IsNotFound(err))
}

func TestDeleteWorkerLeavesEntries(t *testing.T) {
	led, _, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)
	p := addProject(t, led, "Hall 3")

	entry, err := led.AddTask(TaskInput{
		ProjectID: p.ID, TableNumber: "5", WorkerIDs: []string{w.ID}, RewardPerWorker: 40,
	})
	require.NoError(t, err)

	require.NoError(t, led.DeleteWorker(w.ID))

	entries := led.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "A1", entries[0].Workers[0].WorkerCode, "snapshot survives deletion")
	assert.Equal(t, "Unknown", led.WorkerName(w.ID))
}

func TestAddTaskSnapshotsWorkerCodes(t *testing.T) {
	led, _, _ := newTestLedger(t)
	ana := addWorker(t, led, "Ana", "A1", 10)
	bob := addWorker(t, led, "Bob", "", 12)
	p := addProject(t, led, "Hall 3")

	entry, err := led.AddTask(TaskInput{
		ProjectID:       p.ID,
		TableNumber:     "  T-12  ",
		WorkerIDs:       []string{ana.ID, bob.ID, "worker-gone"},
		RewardPerWorker: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, "T-12", entry.TableNumber)
	assert.Equal(t, 1, entry.PageNum, "zero pageNum defaults to 1")
	require.Len(t, entry.Workers, 3)
	assert.Equal(t, "A1", entry.Workers[0].WorkerCode)
	assert.Equal(t, model.UnknownWorkerCode, entry.Workers[1].WorkerCode, "empty code snapshots as placeholder")
	assert.Equal(t, model.UnknownWorkerCode, entry.Workers[2].WorkerCode, "missing worker snapshots as placeholder")
}

func TestAddTaskValidation(t *testing.T) {
	led, _, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)
	p := addProject(t, led, "Hall 3")

	_, err := led.AddTask(TaskInput{ProjectID: "proj-missing", WorkerIDs: []string{w.ID}})
	assert.True(t, IsNotFound(err))

	_, err = led.AddTask(TaskInput{ProjectID: p.ID, WorkerIDs: nil})
	assert.True(t, IsValidation(err))

	_, err = led.AddTask(TaskInput{ProjectID: p.ID, WorkerIDs: []string{w.ID}, RewardPerWorker: -5})
	assert.True(t, IsValidation(err))

	_, err = led.AddTask(TaskInput{ProjectID: p.ID, WorkerIDs: []string{w.ID}, RewardPerWorker: math.NaN()})
	assert.True(t, IsValidation(err))

	_, err = led.AddTask(TaskInput{ProjectID: p.ID, WorkerIDs: []string{w.ID}, RewardPerWorker: math.Inf(1)})
	assert.True(t, IsValidation(err))
}

func TestUpdateTaskRejectsNonFiniteReward(t *testing.T) {
	led, _, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)
	p := addProject(t, led, "Hall 3")

	entry, err := led.AddTask(TaskInput{ProjectID: p.ID, WorkerIDs: []string{w.ID}, RewardPerWorker: 40})
	require.NoError(t, err)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		reward := bad
		_, err := led.UpdateTask(entry.ID, TaskPatch{RewardPerWorker: &reward})
		assert.True(t, IsValidation(err))
	}
}

func TestUpdateTaskResnapshotsWorkers(t *testing.T) {
	led, _, _ := newTestLedger(t)
	ana := addWorker(t, led, "Ana", "A1", 10)
	bob := addWorker(t, led, "Bob", "B2", 12)
	p := addProject(t, led, "Hall 3")

	entry, err := led.AddTask(TaskInput{
		ProjectID: p.ID, TableNumber: "5", WorkerIDs: []string{ana.ID}, RewardPerWorker: 40,
	})
	require.NoError(t, err)

	reward := 55.0
	updated, err := led.UpdateTask(entry.ID, TaskPatch{
		RewardPerWorker: &reward,
		WorkerIDs:       []string{bob.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 55.0, updated.RewardPerWorker)
	require.Len(t, updated.Workers, 1)
	assert.Equal(t, "B2", updated.Workers[0].WorkerCode)
}

func TestUpdateTaskPositionAppliedTogether(t *testing.T) {
	led, _, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)
	p := addProject(t, led, "Hall 3")

	entry, err := led.AddTask(TaskInput{
		ProjectID: p.ID, TableNumber: "5", WorkerIDs: []string{w.ID}, RewardPerWorker: 40,
	})
	require.NoError(t, err)
	assert.False(t, entry.HasPosition())

	x, y := 120.5, 88.25
	updated, err := led.UpdateTask(entry.ID, TaskPatch{X: &x, Y: &y})
	require.NoError(t, err)
	assert.True(t, updated.HasPosition())

	// A lone X is ignored; the position stays consistent.
	lonely := 999.0
	updated, err = led.UpdateTask(entry.ID, TaskPatch{X: &lonely})
	require.NoError(t, err)
	assert.Equal(t, 120.5, *updated.X)
}

func TestUpdateHourlyEntryRejected(t *testing.T) {
	led, _, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)

	_, err := led.StartShift(w.ID)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	entry, err := led.StopShift()
	require.NoError(t, err)

	table := "5"
	_, err = led.UpdateTask(entry.ID, TaskPatch{TableNumber: &table})
	assert.True(t, IsNotFound(err), "hourly entries are not task-editable")
}

func TestDeleteProjectCascades(t *testing.T) {
	led, st, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)

	ctx := context.Background()
	p, err := led.AddProject(ctx, "Hall 3", []byte("%PDF-1.4 plan"))
	require.NoError(t, err)
	other := addProject(t, led, "Hall 4")

	_, err = led.AddTask(TaskInput{ProjectID: p.ID, TableNumber: "1", WorkerIDs: []string{w.ID}, RewardPerWorker: 10})
	require.NoError(t, err)
	keep, err := led.AddTask(TaskInput{ProjectID: other.ID, TableNumber: "2", WorkerIDs: []string{w.ID}, RewardPerWorker: 10})
	require.NoError(t, err)

	// An hourly entry never belongs to a project and must survive.
	_, err = led.StartShift(w.ID)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	hourly, err := led.StopShift()
	require.NoError(t, err)

	require.NoError(t, led.DeleteProject(ctx, p.ID))

	ids := []string{}
	for _, e := range led.Entries() {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{keep.ID, hourly.ID}, ids)

	_, err = st.LoadPlan(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "plan document is removed with the project")
}

func TestDeleteProjectRollsBackOnPersistFailure(t *testing.T) {
	led, st, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)
	p := addProject(t, led, "Hall 3")

	entry, err := led.AddTask(TaskInput{ProjectID: p.ID, TableNumber: "7", WorkerIDs: []string{w.ID}, RewardPerWorker: 5})
	require.NoError(t, err)

	// A closed store makes the persist fail after the in-memory removal.
	require.NoError(t, st.Close())

	err = led.DeleteProject(context.Background(), p.ID)
	require.Error(t, err)

	projects := led.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, p.ID, projects[0].ID)

	entries := led.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestReloadReplacesState(t *testing.T) {
	led, st, _ := newTestLedger(t)
	addWorker(t, led, "Ana", "A1", 10)

	// A second ledger over the same store persists a worker this one
	// has not seen yet.
	other, _, err := Open(st)
	require.NoError(t, err)
	_, err = other.AddWorker("Bob", "B2", 12, "")
	require.NoError(t, err)

	require.Len(t, led.Workers(), 1)
	require.NoError(t, led.Reload())

	names := []string{}
	for _, w := range led.Workers() {
		names = append(names, w.Name)
	}
	assert.ElementsMatch(t, []string{"Ana", "Bob"}, names)
}

func TestProjectPlanLifecycle(t *testing.T) {
	led, _, _ := newTestLedger(t)
	ctx := context.Background()

	p, err := led.AddProject(ctx, "Hall 3", []byte("v1"))
	require.NoError(t, err)

	pdf, err := led.Plan(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), pdf)

	// Replace the plan without renaming.
	_, err = led.UpdateProject(ctx, p.ID, "", []byte("v2"))
	require.NoError(t, err)

	pdf, err = led.Plan(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), pdf)

	got, err := led.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall 3", got.Name, "empty name leaves the project name alone")

	// A project without an upload reports a missing plan, not a failure
	// of the project itself.
	bare := addProject(t, led, "Hall 5")
	_, err = led.Plan(ctx, bare.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = led.Plan(ctx, "proj-missing")
	assert.True(t, IsNotFound(err))
}

func TestBatchPartialSuccess(t *testing.T) {
	led, _, _ := newTestLedger(t)

	result := led.AddMultipleWorkers([]WorkerInput{
		{Name: "Ana", Code: "A1", HourlyRate: 10},
		{Name: "", Code: "X", HourlyRate: 10},
		{Name: "Bob", Code: "B2", HourlyRate: 12},
	})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 3, result.Total)
	assert.False(t, result.OK())
	assert.Equal(t, "added 2/3 workers", result.Message("workers"))

	require.Len(t, result.Items, 3)
	assert.NotEmpty(t, result.Items[0].ID)
	assert.NotEmpty(t, result.Items[1].Error)
	assert.NotEmpty(t, result.Items[2].ID)

	assert.Len(t, led.Workers(), 2, "failures never abort the rest")
}

func TestBatchTasks(t *testing.T) {
	led, _, _ := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)
	p := addProject(t, led, "Hall 3")

	result := led.AddMultipleTasks([]TaskInput{
		{ProjectID: p.ID, TableNumber: "1", WorkerIDs: []string{w.ID}, RewardPerWorker: 10},
		{ProjectID: "proj-missing", TableNumber: "2", WorkerIDs: []string{w.ID}, RewardPerWorker: 10},
	})
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Total)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer st.Close()

	led, _, err := Open(st)
	require.NoError(t, err)
	w, err := led.AddWorker("Ana", "A1", 10, "")
	require.NoError(t, err)

	reopened, notice, err := Open(st)
	require.NoError(t, err)
	assert.Empty(t, notice)

	workers := reopened.Workers()
	require.Len(t, workers, 1)
	assert.Equal(t, w.ID, workers[0].ID)
}

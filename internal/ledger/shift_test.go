package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarwork/crewledger/internal/model"
)

func TestShiftLifecycle(t *testing.T) {
	led, _, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 20)

	timer, err := led.StartShift(w.ID)
	require.NoError(t, err)
	assert.True(t, timer.IsRunning)
	require.NotNil(t, timer.StartTime)
	assert.Equal(t, model.Millis(clock.Now()), *timer.StartTime)

	clock.Advance(2 * time.Hour)

	entry, err := led.StopShift()
	require.NoError(t, err)
	assert.Equal(t, model.EntryHourly, entry.Type)
	assert.Equal(t, w.ID, entry.WorkerID)
	assert.InDelta(t, 2.0, entry.TotalHours, 1e-9)
	assert.InDelta(t, 40.0, entry.TotalEarned, 1e-9)

	assert.False(t, led.Timer().IsRunning)
	require.Len(t, led.Entries(), 1)
}

func TestShiftSingleton(t *testing.T) {
	led, _, _ := newTestLedger(t)
	ana := addWorker(t, led, "Ana", "A1", 20)
	bob := addWorker(t, led, "Bob", "B2", 15)

	_, err := led.StartShift(ana.ID)
	require.NoError(t, err)

	_, err = led.StartShift(bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestShiftErrors(t *testing.T) {
	led, _, _ := newTestLedger(t)

	_, err := led.StartShift("worker-missing")
	assert.True(t, IsNotFound(err))

	_, err = led.StopShift()
	assert.ErrorIs(t, err, ErrNotRunning)

	assert.ErrorIs(t, led.StartBreak(), ErrNotRunning)
	assert.ErrorIs(t, led.EndBreak(), ErrNotRunning)
}

func TestBreakExcludedFromHours(t *testing.T) {
	led, _, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)

	_, err := led.StartShift(w.ID)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	require.NoError(t, led.StartBreak())
	assert.ErrorIs(t, led.StartBreak(), ErrOnBreak)

	clock.Advance(30 * time.Minute)
	require.NoError(t, led.EndBreak())
	assert.ErrorIs(t, led.EndBreak(), ErrNoBreak)

	clock.Advance(time.Hour)

	entry, err := led.StopShift()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, entry.TotalHours, 1e-9, "the 30 min break is excluded")
	assert.InDelta(t, 20.0, entry.TotalEarned, 1e-9)
}

func TestStopDuringOpenBreak(t *testing.T) {
	led, _, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)

	_, err := led.StartShift(w.ID)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	require.NoError(t, led.StartBreak())
	clock.Advance(time.Hour)

	entry, err := led.StopShift()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, entry.TotalHours, 1e-9, "an open break counts up to the stop instant")
}

func TestStopShiftDeletedWorkerEarnsZero(t *testing.T) {
	led, _, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 25)

	_, err := led.StartShift(w.ID)
	require.NoError(t, err)
	require.NoError(t, led.DeleteWorker(w.ID))

	clock.Advance(3 * time.Hour)

	entry, err := led.StopShift()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, entry.TotalHours, 1e-9, "hours are kept")
	assert.Zero(t, entry.TotalEarned, "no rate to bill against")
}

func TestElapsed(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	start := model.Millis(base)
	breakStart := model.Millis(base.Add(time.Hour))

	tests := []struct {
		name  string
		now   time.Time
		timer model.TimerState
		want  time.Duration
	}{
		{
			name:  "stopped timer",
			now:   base.Add(time.Hour),
			timer: model.TimerState{},
			want:  0,
		},
		{
			name: "running, no breaks",
			now:  base.Add(90 * time.Minute),
			timer: model.TimerState{
				IsRunning: true, StartTime: &start,
			},
			want: 90 * time.Minute,
		},
		{
			name: "closed break subtracted",
			now:  base.Add(2 * time.Hour),
			timer: model.TimerState{
				IsRunning: true, StartTime: &start,
				TotalBreakMillis: int64(15 * time.Minute / time.Millisecond),
			},
			want: 105 * time.Minute,
		},
		{
			name: "open break counts to now",
			now:  base.Add(2 * time.Hour),
			timer: model.TimerState{
				IsRunning: true, StartTime: &start, BreakStart: &breakStart,
			},
			want: time.Hour,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Elapsed(tt.now, tt.timer))
		})
	}
}

func TestShiftTimerPersisted(t *testing.T) {
	led, st, clock := newTestLedger(t)
	w := addWorker(t, led, "Ana", "A1", 10)

	_, err := led.StartShift(w.ID)
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)
	require.NoError(t, led.StartBreak())

	// A second process opening the same store sees the running shift.
	reopened, _, err := Open(st)
	require.NoError(t, err)

	timer := reopened.Timer()
	assert.True(t, timer.IsRunning)
	assert.Equal(t, w.ID, timer.WorkerID)
	assert.NotNil(t, timer.BreakStart)
}

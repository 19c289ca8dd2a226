package ledger

import (
	"time"

	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/model"
)

const millisPerHour = float64(60 * 60 * 1000)

// StartShift starts the singleton shift timer for a worker. At most
// one shift runs system-wide.
func (l *Ledger) StartShift(workerID string) (model.TimerState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer.IsRunning {
		return l.timer, ErrAlreadyRunning
	}
	w := l.state.FindWorker(workerID)
	if w == nil {
		return l.timer, &NotFoundError{Kind: "worker", ID: workerID}
	}

	start := model.Millis(l.now())
	l.timer = model.TimerState{
		IsRunning: true,
		StartTime: &start,
		WorkerID:  workerID,
	}
	if err := l.persistTimer(); err != nil {
		l.timer = model.TimerState{}
		return l.timer, err
	}

	logger.Info("shift started", logger.F("worker", w.Name), logger.F("startTime", start))
	return l.timer, nil
}

// StartBreak opens a break inside the running shift. Break time is
// excluded from the shift's total hours at stop.
func (l *Ledger) StartBreak() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.timer.IsRunning {
		return ErrNotRunning
	}
	if l.timer.BreakStart != nil {
		return ErrOnBreak
	}
	start := model.Millis(l.now())
	l.timer.BreakStart = &start
	return l.persistTimer()
}

// EndBreak closes the open break, folding it into the accumulated
// break total.
func (l *Ledger) EndBreak() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.timer.IsRunning {
		return ErrNotRunning
	}
	if l.timer.BreakStart == nil {
		return ErrNoBreak
	}
	l.timer.TotalBreakMillis += model.Millis(l.now()) - *l.timer.BreakStart
	l.timer.BreakStart = nil
	return l.persistTimer()
}

// StopShift closes the running shift and appends an hourly work entry.
// Earnings are fixed at the worker's current rate (0 if the worker was
// deleted mid-shift) and are not recomputed if the rate later changes.
func (l *Ledger) StopShift() (model.WorkEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.timer.IsRunning || l.timer.StartTime == nil {
		return model.WorkEntry{}, ErrNotRunning
	}

	end := model.Millis(l.now())
	start := *l.timer.StartTime

	breakMillis := l.timer.TotalBreakMillis
	if l.timer.BreakStart != nil {
		breakMillis += end - *l.timer.BreakStart
	}

	totalHours := (float64(end-start) - float64(breakMillis)) / millisPerHour
	if totalHours < 0 {
		totalHours = 0
	}

	rate := 0.0
	if w := l.state.FindWorker(l.timer.WorkerID); w != nil {
		rate = w.HourlyRate
	}

	e := model.WorkEntry{
		ID:          model.NewEntryID(),
		Type:        model.EntryHourly,
		WorkerID:    l.timer.WorkerID,
		StartTime:   start,
		EndTime:     end,
		TotalHours:  totalHours,
		TotalEarned: totalHours * rate,
	}

	l.state.WorkEntries = append(l.state.WorkEntries, e)
	if err := l.persist(); err != nil {
		l.state.WorkEntries = l.state.WorkEntries[:len(l.state.WorkEntries)-1]
		return model.WorkEntry{}, err
	}

	l.timer = model.TimerState{}
	if err := l.persistTimer(); err != nil {
		return model.WorkEntry{}, err
	}

	logger.Info("shift stopped", logger.F("worker", e.WorkerID),
		logger.F("hours", e.TotalHours), logger.F("earned", e.TotalEarned))
	return e, nil
}

// Elapsed returns the shift time worked so far, excluding breaks. It
// recomputes from the stored start on every call instead of
// accumulating, so a suspended display never drifts.
func Elapsed(now time.Time, timer model.TimerState) time.Duration {
	if !timer.IsRunning || timer.StartTime == nil {
		return 0
	}
	nowMs := model.Millis(now)
	breakMillis := timer.TotalBreakMillis
	if timer.BreakStart != nil {
		breakMillis += nowMs - *timer.BreakStart
	}
	d := time.Duration(nowMs-*timer.StartTime-breakMillis) * time.Millisecond
	if d < 0 {
		return 0
	}
	return d
}

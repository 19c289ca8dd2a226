package model

import (
	"time"

	"github.com/google/uuid"
)

// EntryType tags the two work-entry variants. Code that branches on it
// must switch exhaustively over EntryHourly and EntryTask so a new
// variant cannot fall through unhandled.
type EntryType string

const (
	EntryHourly EntryType = "hourly"
	EntryTask   EntryType = "task"
)

// TaskWorker is a snapshot of a participating worker taken when the task
// entry was created. The code is deliberately denormalized: historic
// records keep the label that was painted on the plan at the time, even
// if the worker later edits their code.
type TaskWorker struct {
	WorkerID   string `json:"workerId"`
	WorkerCode string `json:"workerCode"`
}

// WorkEntry is one ledger record, either a timed hourly shift or a
// piece-rate completed task. All timestamps are epoch milliseconds, the
// wire format of the persisted state blob.
//
// Hourly entries use WorkerID, StartTime, EndTime, TotalHours and
// TotalEarned, and always have exactly one worker. Task entries use
// ProjectID, TableNumber, RewardPerWorker, X/Y/PageNum, Timestamp and
// Workers, and always have at least one worker; each listed worker is
// paid the full RewardPerWorker.
type WorkEntry struct {
	ID   string    `json:"id"`
	Type EntryType `json:"type"`

	// Hourly fields.
	WorkerID    string  `json:"workerId,omitempty"`
	StartTime   int64   `json:"startTime,omitempty"`
	EndTime     int64   `json:"endTime,omitempty"`
	TotalHours  float64 `json:"totalHours,omitempty"`
	TotalEarned float64 `json:"totalEarned,omitempty"`

	// Task fields. X and Y are unscaled plan-document coordinates
	// (zoom=1, pan=0), nil for entries created without a plan position.
	ProjectID       string       `json:"projectId,omitempty"`
	TableNumber     string       `json:"tableNumber,omitempty"`
	RewardPerWorker float64      `json:"rewardPerWorker,omitempty"`
	X               *float64     `json:"x"`
	Y               *float64     `json:"y"`
	PageNum         int          `json:"pageNum,omitempty"`
	Timestamp       int64        `json:"timestamp,omitempty"`
	Workers         []TaskWorker `json:"workers,omitempty"`
}

// NewEntryID returns a fresh work-entry id.
func NewEntryID() string {
	return "entry-" + uuid.NewString()
}

// When returns the instant an entry is dated by: the creation timestamp
// for tasks, the shift start for hourly entries.
func (e WorkEntry) When() int64 {
	switch e.Type {
	case EntryTask:
		return e.Timestamp
	case EntryHourly:
		return e.StartTime
	default:
		return 0
	}
}

// TotalCost is what an entry costs in total: rewardPerWorker times the
// worker count for tasks, totalEarned for hourly shifts.
func (e WorkEntry) TotalCost() float64 {
	switch e.Type {
	case EntryTask:
		return e.RewardPerWorker * float64(len(e.Workers))
	case EntryHourly:
		return e.TotalEarned
	default:
		return 0
	}
}

// HasPosition reports whether a task entry carries a plan coordinate.
func (e WorkEntry) HasPosition() bool {
	return e.Type == EntryTask && e.X != nil && e.Y != nil
}

// Millis converts a time to the epoch-millisecond wire format.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts an epoch-millisecond timestamp to local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

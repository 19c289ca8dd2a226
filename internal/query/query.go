// Package query filters and aggregates work entries for the records
// list and the statistics dashboard.
package query

import (
	"sort"

	"github.com/solarwork/crewledger/internal/model"
)

// Filter selects work entries. All fields are optional and combine
// with AND. A project filter only matches task entries unless
// HourlyPassProject is set, which lets hourly entries through any
// project filter (the statistics view uses this: hourly shifts are not
// project-scoped).
type Filter struct {
	ProjectID         string
	WorkerID          string
	Type              model.EntryType
	DateFrom          int64 // epoch ms, inclusive; 0 means unbounded
	DateTo            int64 // epoch ms, inclusive; 0 means unbounded
	HourlyPassProject bool
}

// Matches reports whether one entry passes the filter.
func (f Filter) Matches(e model.WorkEntry) bool {
	if f.ProjectID != "" {
		switch e.Type {
		case model.EntryTask:
			if e.ProjectID != f.ProjectID {
				return false
			}
		case model.EntryHourly:
			if !f.HourlyPassProject {
				return false
			}
		}
	}

	if f.WorkerID != "" {
		switch e.Type {
		case model.EntryHourly:
			if e.WorkerID != f.WorkerID {
				return false
			}
		case model.EntryTask:
			found := false
			for _, w := range e.Workers {
				if w.WorkerID == f.WorkerID {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	if f.Type != "" && e.Type != f.Type {
		return false
	}

	when := e.When()
	if f.DateFrom != 0 && when < f.DateFrom {
		return false
	}
	if f.DateTo != 0 && when > f.DateTo {
		return false
	}
	return true
}

// Entries returns the entries passing the filter, in input order.
func Entries(entries []model.WorkEntry, f Filter) []model.WorkEntry {
	out := make([]model.WorkEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortNewestFirst orders entries for the records list: tasks by
// creation timestamp, hourly shifts by end time, newest first.
func SortNewestFirst(entries []model.WorkEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return sortKey(entries[i]) > sortKey(entries[j])
	})
}

func sortKey(e model.WorkEntry) int64 {
	if e.Type == model.EntryHourly {
		return e.EndTime
	}
	return e.Timestamp
}

// Statistics is the aggregation over a filtered entry set.
//
// TotalTaskEarnings is total cost: rewardPerWorker times worker count
// per task. PerWorkerEarnings credits the full rewardPerWorker to each
// listed worker, so the sum of per-worker totals exceeds
// TotalTaskEarnings when entries have multiple workers. That asymmetry
// is intentional: each worker individually earned the full reward.
type Statistics struct {
	TotalTaskEarnings   float64            `json:"totalTaskEarnings"`
	TotalHourlyEarnings float64            `json:"totalHourlyEarnings"`
	TotalEarnings       float64            `json:"totalEarnings"`
	TotalHours          float64            `json:"totalHours"`
	TotalTables         int                `json:"totalTables"`
	AvgRewardPerTable   float64            `json:"avgRewardPerTable"`
	PerWorkerEarnings   map[string]float64 `json:"perWorkerEarnings"`
	PerWorkerHours      map[string]float64 `json:"perWorkerHours"`
}

// Aggregate computes statistics over the given entries.
func Aggregate(entries []model.WorkEntry) Statistics {
	stats := Statistics{
		PerWorkerEarnings: map[string]float64{},
		PerWorkerHours:    map[string]float64{},
	}

	for _, e := range entries {
		switch e.Type {
		case model.EntryTask:
			stats.TotalTaskEarnings += e.RewardPerWorker * float64(len(e.Workers))
			stats.TotalTables++
			for _, w := range e.Workers {
				stats.PerWorkerEarnings[w.WorkerID] += e.RewardPerWorker
			}
		case model.EntryHourly:
			stats.TotalHourlyEarnings += e.TotalEarned
			stats.TotalHours += e.TotalHours
			stats.PerWorkerEarnings[e.WorkerID] += e.TotalEarned
			stats.PerWorkerHours[e.WorkerID] += e.TotalHours
		}
	}

	stats.TotalEarnings = stats.TotalTaskEarnings + stats.TotalHourlyEarnings
	if stats.TotalTables > 0 {
		stats.AvgRewardPerTable = stats.TotalTaskEarnings / float64(stats.TotalTables)
	}
	return stats
}

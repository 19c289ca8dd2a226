package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/solarwork/crewledger/internal/model"
)

var csvHeader = []string{
	"date", "type", "workerId", "workerName", "workerCode",
	"project", "table", "hours", "earned",
}

// WriteCSV renders entries as RFC4180 CSV: one row per hourly entry
// and one row per worker per task entry, each task row carrying the
// full rewardPerWorker. Quoting is handled by encoding/csv.
func WriteCSV(w io.Writer, entries []model.WorkEntry, workers []model.Worker, projects []model.Project) error {
	look := newLookup(workers, projects)
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		for _, row := range csvRows(e, look) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRows(e model.WorkEntry, look lookup) [][]string {
	switch e.Type {
	case model.EntryHourly:
		return [][]string{{
			model.FromMillis(e.StartTime).Format("2006-01-02 15:04"),
			string(model.EntryHourly),
			e.WorkerID,
			look.workerName(e.WorkerID),
			look.workerCode(e.WorkerID),
			"", // project
			"", // table
			fmt.Sprintf("%.2f", e.TotalHours),
			fmt.Sprintf("%.2f", e.TotalEarned),
		}}
	case model.EntryTask:
		rows := make([][]string, 0, len(e.Workers))
		for _, tw := range e.Workers {
			rows = append(rows, []string{
				model.FromMillis(e.Timestamp).Format("2006-01-02 15:04"),
				string(model.EntryTask),
				tw.WorkerID,
				look.workerName(tw.WorkerID),
				tw.WorkerCode,
				look.projectName(e.ProjectID),
				e.TableNumber,
				"", // hours
				fmt.Sprintf("%.2f", e.RewardPerWorker),
			})
		}
		return rows
	default:
		return nil
	}
}

package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
)

// WritePDFReport renders entries as a tabular PDF report with a
// statistics footer.
func WritePDFReport(path string, entries []model.WorkEntry, workers []model.Worker, projects []model.Project, from, to time.Time, currency string) error {
	look := newLookup(workers, projects)

	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Work Report", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				dateRange := fmt.Sprintf("%s - %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
				m.Text(dateRange, props.Text{
					Top:   2,
					Align: consts.Center,
					Size:  11,
				})
			})
		})
	})

	headers := []string{"Date", "Worker", "Project / Table", "Hours", "Earned"}
	rows := [][]string{}
	for _, e := range entries {
		switch e.Type {
		case model.EntryTask:
			for _, tw := range e.Workers {
				rows = append(rows, []string{
					model.FromMillis(e.Timestamp).Format("2006-01-02"),
					look.workerName(tw.WorkerID),
					fmt.Sprintf("%s / %s", look.projectName(e.ProjectID), e.TableNumber),
					"",
					fmt.Sprintf("%s%.2f", currency, e.RewardPerWorker),
				})
			}
		case model.EntryHourly:
			rows = append(rows, []string{
				model.FromMillis(e.StartTime).Format("2006-01-02"),
				look.workerName(e.WorkerID),
				"",
				fmt.Sprintf("%.2f", e.TotalHours),
				fmt.Sprintf("%s%.2f", currency, e.TotalEarned),
			})
		}
	}

	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{2, 3, 4, 1, 2},
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: []uint{2, 3, 4, 1, 2},
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	stats := query.Aggregate(entries)
	m.Row(12, func() {
		m.Col(12, func() {
			summary := fmt.Sprintf("Total: %s%.2f   (tasks %s%.2f, hourly %s%.2f, %.1f h, %d tables)",
				currency, stats.TotalEarnings,
				currency, stats.TotalTaskEarnings,
				currency, stats.TotalHourlyEarnings,
				stats.TotalHours, stats.TotalTables)
			m.Text(summary, props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  10,
			})
		})
	})

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}

package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/solarwork/crewledger/internal/model"
)

const reportWidth = 56

// WriteDailyReport renders a plain-text report of the given entries
// (typically pre-filtered to one day), grouped by worker name, with
// per-worker and grand-total sums. Task entries credit the full
// rewardPerWorker to each listed worker.
func WriteDailyReport(w io.Writer, day time.Time, entries []model.WorkEntry, workers []model.Worker, projects []model.Project, currency string) error {
	look := newLookup(workers, projects)

	type line struct {
		text   string
		amount float64
	}
	perWorker := map[string][]line{}

	for _, e := range entries {
		switch e.Type {
		case model.EntryTask:
			for _, tw := range e.Workers {
				name := look.workerName(tw.WorkerID)
				perWorker[name] = append(perWorker[name], line{
					text:   fmt.Sprintf("Table %s  %s", e.TableNumber, look.projectName(e.ProjectID)),
					amount: e.RewardPerWorker,
				})
			}
		case model.EntryHourly:
			name := look.workerName(e.WorkerID)
			perWorker[name] = append(perWorker[name], line{
				text:   fmt.Sprintf("%.2f h worked", e.TotalHours),
				amount: e.TotalEarned,
			})
		}
	}

	names := make([]string, 0, len(perWorker))
	for name := range perWorker {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("DAILY REPORT  %s\n", day.Format("2006-01-02")))
	b.WriteString(strings.Repeat("=", reportWidth) + "\n")

	grandTotal := 0.0
	for _, name := range names {
		b.WriteString("\n" + name + "\n")
		b.WriteString(strings.Repeat("-", reportWidth) + "\n")

		workerTotal := 0.0
		for _, ln := range perWorker[name] {
			b.WriteString(amountLine("  "+ln.text, ln.amount, currency))
			workerTotal += ln.amount
		}
		b.WriteString(amountLine("  Worker total:", workerTotal, currency))
		grandTotal += workerTotal
	}

	b.WriteString("\n" + strings.Repeat("=", reportWidth) + "\n")
	b.WriteString(amountLine("GRAND TOTAL:", grandTotal, currency))

	_, err := io.WriteString(w, b.String())
	return err
}

// amountLine right-aligns an amount to the report width.
func amountLine(text string, amount float64, currency string) string {
	value := fmt.Sprintf("%s%.2f", currency, amount)
	pad := reportWidth - len([]rune(text)) - len([]rune(value))
	if pad < 1 {
		pad = 1
	}
	return text + strings.Repeat(" ", pad) + value + "\n"
}

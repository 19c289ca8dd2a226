package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solarwork/crewledger/internal/config"
	"github.com/solarwork/crewledger/internal/ledger"
	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
	"github.com/solarwork/crewledger/internal/store"
)

// openLedger opens the store at the configured path and loads the
// ledger through the schema migration, printing any one-time notice.
func openLedger() (*ledger.Ledger, *store.Store, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	led, notice, err := ledger.Open(st)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if notice != "" {
		fmt.Println("ℹ " + notice)
	}
	return led, st, nil
}

// confirm asks a yes/no question on stdin, honoring the
// confirm_delete setting.
func confirm(prompt string) bool {
	if cfg != nil && !cfg.ConfirmDelete {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// money formats an amount with the configured currency symbol.
func money(amount float64) string {
	symbol := "€"
	if cfg != nil {
		symbol = cfg.Currency
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// Shared filter flags used by records, stats and export.
var (
	filterType    string
	filterWorker  string
	filterProject string
	filterRange   string
	filterFrom    string
	filterTo      string
)

// bindFilterFlags registers the shared filter flags on a command.
func bindFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterType, "type", "t", "", "Entry type (task or hourly)")
	cmd.Flags().StringVarP(&filterWorker, "worker", "w", "", "Filter by worker id")
	cmd.Flags().StringVarP(&filterProject, "project", "P", "", "Filter by project id")
	cmd.Flags().StringVarP(&filterRange, "range", "r", "", "Named range (today, this_week, this_month)")
	cmd.Flags().StringVar(&filterFrom, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&filterTo, "to", "", "End date (YYYY-MM-DD, inclusive)")
}

// buildFilter assembles a query filter from the shared flags.
// hourlyPassProject is set for statistics-style views where hourly
// entries are not project-scoped.
func buildFilter(hourlyPassProject bool) (query.Filter, error) {
	f := query.Filter{
		ProjectID:         filterProject,
		WorkerID:          filterWorker,
		HourlyPassProject: hourlyPassProject,
	}

	switch filterType {
	case "", "all":
	case string(model.EntryTask):
		f.Type = model.EntryTask
	case string(model.EntryHourly):
		f.Type = model.EntryHourly
	default:
		return f, fmt.Errorf("unknown entry type %q (want task or hourly)", filterType)
	}

	if filterRange != "" {
		from, to, err := query.ResolveRange(filterRange, time.Now())
		if err != nil {
			return f, err
		}
		f.DateFrom, f.DateTo = from, to
	}
	if filterFrom != "" {
		t, err := time.ParseInLocation("2006-01-02", filterFrom, time.Local)
		if err != nil {
			return f, fmt.Errorf("bad --from date: %w", err)
		}
		f.DateFrom = model.Millis(t)
	}
	if filterTo != "" {
		t, err := time.ParseInLocation("2006-01-02", filterTo, time.Local)
		if err != nil {
			return f, fmt.Errorf("bad --to date: %w", err)
		}
		f.DateTo = model.Millis(t.Add(24*time.Hour - time.Millisecond))
	}
	return f, nil
}

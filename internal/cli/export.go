package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/solarwork/crewledger/internal/export"
	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export work entries",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [file]",
	Short: "Export entries as CSV",
	Long: `Export the (optionally filtered) entries as CSV: one row per
hourly entry, one row per worker per task entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportCSV,
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx [file]",
	Short: "Export entries as an XLSX workbook with a summary sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportXLSX,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "Export a tabular PDF report",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportPDF,
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the daily text report",
	Long: `Print a plain-text report of one day's entries grouped by
worker, with per-worker and grand totals.`,
	RunE: runExportReport,
}

var reportDate string

func init() {
	bindFilterFlags(exportCSVCmd)
	bindFilterFlags(exportXLSXCmd)
	bindFilterFlags(exportPDFCmd)
	exportReportCmd.Flags().StringVar(&reportDate, "date", "", "Report day (YYYY-MM-DD, default today)")

	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportXLSXCmd)
	exportCmd.AddCommand(exportPDFCmd)
	exportCmd.AddCommand(exportReportCmd)
}

// filteredEntries loads the ledger and applies the shared filter flags.
func filteredEntries(hourlyPassProject bool) ([]model.WorkEntry, []model.Worker, []model.Project, func() error, error) {
	led, st, err := openLedger()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	f, err := buildFilter(hourlyPassProject)
	if err != nil {
		st.Close()
		return nil, nil, nil, nil, err
	}

	entries := query.Entries(led.Entries(), f)
	query.SortNewestFirst(entries)
	return entries, led.Workers(), led.Projects(), st.Close, nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	entries, workers, projects, closeStore, err := filteredEntries(false)
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, entries, workers, projects); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d entries to %s\n", len(entries), args[0])
	return nil
}

func runExportXLSX(cmd *cobra.Command, args []string) error {
	entries, workers, projects, closeStore, err := filteredEntries(false)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := export.WriteXLSX(args[0], entries, workers, projects); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d entries to %s\n", len(entries), args[0])
	return nil
}

func runExportPDF(cmd *cobra.Command, args []string) error {
	entries, workers, projects, closeStore, err := filteredEntries(false)
	if err != nil {
		return err
	}
	defer closeStore()

	from, to := time.Now(), time.Now()
	if len(entries) > 0 {
		// Entries are newest first.
		to = model.FromMillis(entries[0].When())
		from = model.FromMillis(entries[len(entries)-1].When())
	}

	if err := export.WritePDFReport(args[0], entries, workers, projects, from, to, cfg.Currency); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d entries to %s\n", len(entries), args[0])
	return nil
}

func runExportReport(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	day := time.Now()
	if reportDate != "" {
		day, err = time.ParseInLocation("2006-01-02", reportDate, time.Local)
		if err != nil {
			return fmt.Errorf("bad --date: %w", err)
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	f := query.Filter{
		DateFrom: model.Millis(start),
		DateTo:   model.Millis(start.Add(24*time.Hour - time.Millisecond)),
	}
	entries := query.Entries(led.Entries(), f)

	return export.WriteDailyReport(os.Stdout, day, entries, led.Workers(), led.Projects(), cfg.Currency)
}

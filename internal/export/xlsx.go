package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
)

// WriteXLSX renders entries as a workbook: an Entries sheet using the
// same row model as the CSV export, plus a Summary sheet with the
// aggregated statistics.
func WriteXLSX(path string, entries []model.WorkEntry, workers []model.Worker, projects []model.Project) error {
	look := newLookup(workers, projects)
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Entries"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	rowNum := 2
	for _, e := range entries {
		for _, row := range csvRows(e, look) {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fmt.Errorf("failed to write row: %w", err)
				}
			}
			rowNum++
		}
	}

	if err := writeSummarySheet(f, entries); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, entries []model.WorkEntry) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	stats := query.Aggregate(entries)
	rows := [][]any{
		{"Total earnings", stats.TotalEarnings},
		{"Task earnings", stats.TotalTaskEarnings},
		{"Hourly earnings", stats.TotalHourlyEarnings},
		{"Total hours", stats.TotalHours},
		{"Tables completed", stats.TotalTables},
		{"Avg reward per table", stats.AvgRewardPerTable},
	}
	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	return nil
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/solarwork/crewledger/internal/query"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show earnings statistics",
	Long: `Aggregate earnings and hours over the (optionally filtered)
ledger. With a project filter, hourly entries still count: shifts are
not project-scoped.

Examples:
  crewledger stats
  crewledger stats --range this_month
  crewledger stats --worker worker-1`,
	RunE: runStats,
}

func init() {
	bindFilterFlags(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := buildFilter(true)
	if err != nil {
		return err
	}

	entries := query.Entries(led.Entries(), f)
	stats := query.Aggregate(entries)

	fmt.Printf("Total earnings:    %s\n", money(stats.TotalEarnings))
	fmt.Printf("  from tasks:      %s\n", money(stats.TotalTaskEarnings))
	fmt.Printf("  from hours:      %s\n", money(stats.TotalHourlyEarnings))
	fmt.Printf("Hours worked:      %.1f h\n", stats.TotalHours)
	fmt.Printf("Tables completed:  %d\n", stats.TotalTables)
	fmt.Printf("Avg per table:     %s\n", money(stats.AvgRewardPerTable))

	if len(stats.PerWorkerEarnings) == 0 {
		return nil
	}

	fmt.Println("\nPer worker (each task credits the full reward to every listed worker):")
	ids := make([]string, 0, len(stats.PerWorkerEarnings))
	for id := range stats.PerWorkerEarnings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.PerWorkerEarnings[ids[i]] > stats.PerWorkerEarnings[ids[j]]
	})
	for _, id := range ids {
		line := fmt.Sprintf("  %-20s %10s", led.WorkerName(id), money(stats.PerWorkerEarnings[id]))
		if hours := stats.PerWorkerHours[id]; hours > 0 {
			line += fmt.Sprintf("  (%.1f h)", hours)
		}
		fmt.Println(line)
	}
	return nil
}

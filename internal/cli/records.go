package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Browse and delete work entries",
}

var recordsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List work entries, newest first",
	Long: `List work entries with optional filters.

Examples:
  crewledger records list
  crewledger records list --type task --project proj-1
  crewledger records list --worker worker-1 --range this_week`,
	RunE: runRecordsList,
}

var recordsDeleteCmd = &cobra.Command{
	Use:     "delete [entry-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a work entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runRecordsDelete,
}

func init() {
	bindFilterFlags(recordsListCmd)
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := buildFilter(false)
	if err != nil {
		return err
	}

	entries := query.Entries(led.Entries(), f)
	query.SortNewestFirst(entries)

	if len(entries) == 0 {
		fmt.Println("No entries match the filters")
		return nil
	}

	projects := map[string]string{}
	for _, p := range led.Projects() {
		projects[p.ID] = p.Name
	}

	for _, e := range entries {
		switch e.Type {
		case model.EntryTask:
			project := projects[e.ProjectID]
			if project == "" {
				project = "Unknown project"
			}
			codes := make([]string, 0, len(e.Workers))
			for _, w := range e.Workers {
				codes = append(codes, w.WorkerCode)
			}
			position := "manual entry"
			if e.HasPosition() {
				position = fmt.Sprintf("pin (%.0f, %.0f) p.%d", *e.X, *e.Y, e.PageNum)
			}
			fmt.Printf("%s  %s  table %-6s  %s  %dx %s  [%s]  %s\n",
				model.FromMillis(e.Timestamp).Format("2006-01-02 15:04"),
				e.ID, e.TableNumber, project,
				len(e.Workers), money(e.RewardPerWorker),
				strings.Join(codes, ","), position)
		case model.EntryHourly:
			fmt.Printf("%s  %s  %.2f h  %s  %s\n",
				model.FromMillis(e.StartTime).Format("2006-01-02 15:04"),
				e.ID, e.TotalHours, money(e.TotalEarned),
				led.WorkerName(e.WorkerID))
		}
	}
	return nil
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	if !confirm("Delete entry " + args[0] + "?") {
		fmt.Println("Cancelled")
		return nil
	}
	if err := led.DeleteEntry(args[0]); err != nil {
		return err
	}
	fmt.Println("✓ Entry deleted")
	return nil
}

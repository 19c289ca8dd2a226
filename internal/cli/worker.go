package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solarwork/crewledger/internal/ledger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage workers",
	Long:  `Create, list, edit and delete crew members.`,
}

var workerAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a worker",
	Long: `Add a crew member.

Examples:
  crewledger worker add "Jan Novák" --code 001 --rate 12.50
  crewledger worker add "Petr" --rate 10 --color "#3b82f6"`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkerAdd,
}

var workerListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workers",
	RunE:    runWorkerList,
}

var workerUpdateCmd = &cobra.Command{
	Use:   "update [worker-id]",
	Short: "Edit a worker's name, code or rate",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkerUpdate,
}

var workerDeleteCmd = &cobra.Command{
	Use:     "delete [worker-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a worker (their recorded entries are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runWorkerDelete,
}

var workerImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Add workers in bulk from a YAML or JSON file",
	Long: `Add workers in bulk. The file holds a list of {name, code,
hourlyRate, color} objects. Elements are processed independently; a
failed element never aborts the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkerImport,
}

var (
	workerCode  string
	workerRate  float64
	workerColor string
)

func init() {
	workerAddCmd.Flags().StringVar(&workerCode, "code", "", "Short pin label")
	workerAddCmd.Flags().Float64Var(&workerRate, "rate", 0, "Hourly rate")
	workerAddCmd.Flags().StringVar(&workerColor, "color", "", "Display color (hex), palette-assigned if omitted")

	workerUpdateCmd.Flags().String("name", "", "New name")
	workerUpdateCmd.Flags().String("code", "", "New pin label")
	workerUpdateCmd.Flags().Float64("rate", 0, "New hourly rate")

	workerCmd.AddCommand(workerAddCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerUpdateCmd)
	workerCmd.AddCommand(workerDeleteCmd)
	workerCmd.AddCommand(workerImportCmd)
}

func runWorkerAdd(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := led.AddWorker(args[0], workerCode, workerRate, workerColor)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added worker %s (%s) at %s/h\n", w.Name, w.ID, money(w.HourlyRate))
	return nil
}

func runWorkerList(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	workers := led.Workers()
	if len(workers) == 0 {
		fmt.Println("No workers yet. Add one with: crewledger worker add \"Name\" --rate 12.5")
		return nil
	}
	for _, w := range workers {
		code := w.Code
		if code == "" {
			code = "-"
		}
		fmt.Printf("%-42s  %-6s  %8s/h  %s\n", w.ID, code, money(w.HourlyRate), w.Name)
	}
	return nil
}

func runWorkerUpdate(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	var patch ledger.WorkerPatch
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		patch.Name = &v
	}
	if cmd.Flags().Changed("code") {
		v, _ := cmd.Flags().GetString("code")
		patch.Code = &v
	}
	if cmd.Flags().Changed("rate") {
		v, _ := cmd.Flags().GetFloat64("rate")
		patch.HourlyRate = &v
	}

	w, err := led.UpdateWorker(args[0], patch)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated worker %s\n", w.Name)
	return nil
}

func runWorkerDelete(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	name := led.WorkerName(args[0])
	if !confirm(fmt.Sprintf("Delete worker %q? Their entries are kept", name)) {
		fmt.Println("Cancelled")
		return nil
	}
	if err := led.DeleteWorker(args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted worker %s\n", name)
	return nil
}

func runWorkerImport(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var inputs []ledger.WorkerInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	result := led.AddMultipleWorkers(inputs)
	fmt.Println("✓ " + result.Message("workers"))
	for i, item := range result.Items {
		if item.Error != "" {
			fmt.Printf("  element %d failed: %s\n", i+1, item.Error)
		}
	}
	return nil
}

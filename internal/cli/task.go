package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solarwork/crewledger/internal/ledger"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Record completed tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a completed task",
	Long: `Record a completed task for one or more workers. Each listed
worker is paid the full reward.

Examples:
  crewledger task add -P proj-1 --table T1 --workers w1,w2 --reward 20
  crewledger task add -P proj-1 --table T2 --workers w1 --reward 15 --x 120.5 --y 340 --page 2`,
	RunE: runTaskAdd,
}

var taskImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Record tasks in bulk from a YAML or JSON file",
	Long: `Record tasks in bulk. The file holds a list of task objects
(projectId, tableNumber, workerIds, rewardPerWorker, optional x/y/
pageNum). Elements are processed independently; a failed element never
aborts the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskImport,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [entry-id]",
	Short: "Edit a recorded task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var (
	taskProject string
	taskTable   string
	taskWorkers string
	taskReward  float64
	taskX       float64
	taskY       float64
	taskPage    int
)

func init() {
	taskAddCmd.Flags().StringVarP(&taskProject, "project", "P", "", "Project id (required)")
	taskAddCmd.Flags().StringVar(&taskTable, "table", "", "Table number (required)")
	taskAddCmd.Flags().StringVar(&taskWorkers, "workers", "", "Comma-separated worker ids (required)")
	taskAddCmd.Flags().Float64Var(&taskReward, "reward", 0, "Reward paid to each worker")
	taskAddCmd.Flags().Float64Var(&taskX, "x", 0, "Pin X in plan-document coordinates")
	taskAddCmd.Flags().Float64Var(&taskY, "y", 0, "Pin Y in plan-document coordinates")
	taskAddCmd.Flags().IntVar(&taskPage, "page", 1, "Plan page number")
	taskAddCmd.MarkFlagRequired("project")
	taskAddCmd.MarkFlagRequired("table")
	taskAddCmd.MarkFlagRequired("workers")

	taskEditCmd.Flags().String("table", "", "New table number")
	taskEditCmd.Flags().Float64("reward", 0, "New reward per worker")
	taskEditCmd.Flags().String("workers", "", "New comma-separated worker ids")
	taskEditCmd.Flags().Float64("x", 0, "New pin X")
	taskEditCmd.Flags().Float64("y", 0, "New pin Y")
	taskEditCmd.Flags().Int("page", 0, "New plan page number")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskImportCmd)
	taskCmd.AddCommand(taskEditCmd)
}

func splitWorkerIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	in := ledger.TaskInput{
		ProjectID:       taskProject,
		TableNumber:     taskTable,
		WorkerIDs:       splitWorkerIDs(taskWorkers),
		RewardPerWorker: taskReward,
		PageNum:         taskPage,
	}
	if cmd.Flags().Changed("x") && cmd.Flags().Changed("y") {
		x, y := taskX, taskY
		in.X, in.Y = &x, &y
	}

	e, err := led.AddTask(in)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Recorded table %s (%d worker(s) x %s)\n",
		e.TableNumber, len(e.Workers), money(e.RewardPerWorker))
	return nil
}

func runTaskImport(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var inputs []ledger.TaskInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	result := led.AddMultipleTasks(inputs)
	fmt.Println("✓ " + result.Message("tasks"))
	for i, item := range result.Items {
		if item.Error != "" {
			fmt.Printf("  element %d failed: %s\n", i+1, item.Error)
		}
	}
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	var patch ledger.TaskPatch
	if cmd.Flags().Changed("table") {
		v, _ := cmd.Flags().GetString("table")
		patch.TableNumber = &v
	}
	if cmd.Flags().Changed("reward") {
		v, _ := cmd.Flags().GetFloat64("reward")
		patch.RewardPerWorker = &v
	}
	if cmd.Flags().Changed("workers") {
		v, _ := cmd.Flags().GetString("workers")
		patch.WorkerIDs = splitWorkerIDs(v)
	}
	if cmd.Flags().Changed("x") && cmd.Flags().Changed("y") {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		patch.X, patch.Y = &x, &y
	}
	if cmd.Flags().Changed("page") {
		v, _ := cmd.Flags().GetInt("page")
		patch.PageNum = &v
	}

	e, err := led.UpdateTask(args[0], patch)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated table %s\n", e.TableNumber)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects and their plan documents",
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a project",
	Long: `Create a project, optionally attaching a floor-plan PDF.

Examples:
  crewledger project new "Site A"
  crewledger project new "Site B" --plan floorplan.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE:    runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project, its plan and all its task entries",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectPlanCmd = &cobra.Command{
	Use:   "plan [project-id] [pdf-file]",
	Short: "Upload or replace a project's plan document",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectPlan,
}

var projectPlanFile string

func init() {
	projectNewCmd.Flags().StringVar(&projectPlanFile, "plan", "", "Floor-plan PDF to attach")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectPlanCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	var plan []byte
	if projectPlanFile != "" {
		plan, err = os.ReadFile(projectPlanFile)
		if err != nil {
			return fmt.Errorf("failed to read plan file: %w", err)
		}
	}

	p, err := led.AddProject(context.Background(), args[0], plan)
	if err != nil {
		return err
	}
	if len(plan) > 0 {
		fmt.Printf("✓ Created project %s (%s) with plan\n", p.Name, p.ID)
	} else {
		fmt.Printf("✓ Created project %s (%s)\n", p.Name, p.ID)
	}
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	projects := led.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects yet. Add one with: crewledger project new \"Site A\"")
		return nil
	}

	ctx := context.Background()
	for _, p := range projects {
		planNote := "no plan"
		has, err := st.HasPlan(ctx, p.ID)
		if err == nil && has {
			planNote = "plan uploaded"
		}
		fmt.Printf("%-40s  %-14s  %s\n", p.ID, planNote, p.Name)
	}
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := led.Project(args[0])
	if err != nil {
		return err
	}
	if !confirm(fmt.Sprintf("Delete project %q, its plan and ALL its task entries", p.Name)) {
		fmt.Println("Cancelled")
		return nil
	}
	if err := led.DeleteProject(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted project %s\n", p.Name)
	return nil
}

func runProjectPlan(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	plan, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read plan file: %w", err)
	}

	if _, err := led.UpdateProject(context.Background(), args[0], "", plan); err != nil {
		return err
	}
	fmt.Printf("✓ Plan stored for project %s\n", args[0])
	return nil
}

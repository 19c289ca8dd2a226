package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solarwork/crewledger/internal/ledger"
	"github.com/solarwork/crewledger/internal/model"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Manage the hourly shift timer",
	Long: `Start and stop the shift timer. At most one shift runs at a
time; a running shift survives restarts.`,
}

var shiftStartCmd = &cobra.Command{
	Use:   "start [worker-id]",
	Short: "Start a shift for a worker",
	Args:  cobra.ExactArgs(1),
	RunE:  runShiftStart,
}

var shiftStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running shift and record the hourly entry",
	RunE:  runShiftStop,
}

var shiftStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running shift",
	RunE:  runShiftStatus,
}

var shiftBreakCmd = &cobra.Command{
	Use:   "break [start|end]",
	Short: "Open or close a break (excluded from paid hours)",
	Args:  cobra.ExactArgs(1),
	RunE:  runShiftBreak,
}

func init() {
	shiftCmd.AddCommand(shiftStartCmd)
	shiftCmd.AddCommand(shiftStopCmd)
	shiftCmd.AddCommand(shiftStatusCmd)
	shiftCmd.AddCommand(shiftBreakCmd)
}

func runShiftStart(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	timer, err := led.StartShift(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ Shift started for %s at %s\n",
		led.WorkerName(args[0]),
		model.FromMillis(*timer.StartTime).Format("15:04:05"))
	return nil
}

func runShiftStop(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := led.StopShift()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Shift ended: %.2f h, %s earned by %s\n",
		e.TotalHours, money(e.TotalEarned), led.WorkerName(e.WorkerID))
	return nil
}

func runShiftStatus(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	timer := led.Timer()
	if !timer.IsRunning {
		fmt.Println("No shift running")
		return nil
	}

	elapsed := ledger.Elapsed(time.Now(), timer)
	status := fmt.Sprintf("Shift running for %s: %s worked",
		led.WorkerName(timer.WorkerID), formatDuration(elapsed))
	if timer.BreakStart != nil {
		status += " (on break)"
	}
	fmt.Println(status)
	return nil
}

func runShiftBreak(cmd *cobra.Command, args []string) error {
	led, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	switch args[0] {
	case "start":
		if err := led.StartBreak(); err != nil {
			return err
		}
		fmt.Println("✓ Break started")
	case "end":
		if err := led.EndBreak(); err != nil {
			return err
		}
		fmt.Println("✓ Break ended")
	default:
		return fmt.Errorf("unknown break action %q (want start or end)", args[0])
	}
	return nil
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

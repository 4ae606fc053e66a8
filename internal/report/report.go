// Package report prints the analytics of a finished run.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"procsim/internal/sim"
)

// Write prints the end time, the idle time and one summary line per
// terminated process, in termination order.
func Write(w io.Writer, res *sim.Result) error {
	if _, err := fmt.Fprintf(w, "\nSimulation ended at time: %d\n", res.FinalTime); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "System idle time: %d\n\n", res.TotalIdle); err != nil {
		return err
	}
	for _, s := range res.Finished {
		_, err := fmt.Fprintf(w, "PID: %d, PRIORITY: %d, READY WAIT TIME: %d, I/O WAIT TIME: %d\n",
			s.PID, s.Priority, s.ReadyTime, s.BlockedTime)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Table renders the same analytics as a table with arrival, finish and
// turnaround columns and a footer of averages.
func Table(w io.Writer, res *sim.Result) {
	_, _ = fmt.Fprintf(w, "Schedule table (%s, run %s)\n", res.Policy, res.RunID)

	var totalReady, totalBlocked, totalTurnaround float64
	rows := make([][]string, 0, len(res.Finished))
	for _, s := range res.Finished {
		totalReady += float64(s.ReadyTime)
		totalBlocked += float64(s.BlockedTime)
		totalTurnaround += float64(s.Turnaround())
		rows = append(rows, []string{
			fmt.Sprint(s.PID),
			fmt.Sprint(s.Priority),
			fmt.Sprint(s.Arrived),
			fmt.Sprint(s.Finished),
			fmt.Sprint(s.ReadyTime),
			fmt.Sprint(s.BlockedTime),
			fmt.Sprint(s.Turnaround()),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"PID", "Priority", "Arrival", "Exit", "Ready", "I/O Wait", "Turnaround"})
	table.AppendBulk(rows)
	if n := float64(len(rows)); n > 0 {
		table.SetFooter([]string{"", "", "", "",
			fmt.Sprintf("Average\n%.2f", totalReady/n),
			fmt.Sprintf("Average\n%.2f", totalBlocked/n),
			fmt.Sprintf("Average\n%.2f", totalTurnaround/n)})
	}
	table.Render()

	_, _ = fmt.Fprintf(w, "Simulated time: %d, CPU idle: %d\n", res.FinalTime, res.TotalIdle)
}

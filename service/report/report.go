// Package report renders an end-of-run summary of per-process metrics as a
// human-readable table, plus aggregate averages over completed work.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/schedo/schedo/runtime/scheduler"
)

// Render writes the summary table for a finished run.
func Render(w io.Writer, out *scheduler.Outcome) {
	fmt.Fprintf(w, "Policy: %s, run %s (%s)\n", out.Policy, out.RunID, out.Elapsed.Round(time.Millisecond))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Command", "State", "Burst (ms)", "Turnaround (ms)", "Waiting (ms)", "Response (ms)"})

	var finished int64
	var totalTurnaround, totalWaiting, totalResponse int64
	for _, rec := range out.Records {
		table.Append([]string{
			rec.Command,
			rec.State,
			strconv.FormatInt(rec.Burst, 10),
			strconv.FormatInt(rec.Turnaround, 10),
			strconv.FormatInt(rec.Waiting, 10),
			strconv.FormatInt(rec.Response, 10),
		})
		if rec.Finished {
			finished++
			totalTurnaround += rec.Turnaround
			totalWaiting += rec.Waiting
			totalResponse += rec.Response
		}
	}
	table.Render()

	if finished > 0 {
		fmt.Fprintf(w, "Average turnaround: %dms, waiting: %dms, response: %dms over %d completed\n",
			totalTurnaround/finished, totalWaiting/finished, totalResponse/finished, finished)
	}
	counters := out.Counters
	fmt.Fprintf(w, "Arrived: %d, completed: %d, failed: %d, preempted: %d, boosts: %d\n",
		counters.Arrived, counters.Completed, counters.Failed, counters.Preempted, counters.Boosts)
}

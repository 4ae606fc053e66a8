package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procsim/internal/sched"
	"procsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		RunID:     "run-1",
		Policy:    sched.PolicyPriority,
		FinalTime: 12,
		TotalIdle: 3,
		Finished: []sched.Summary{
			{PID: 2, Priority: 7, ReadyTime: 0, BlockedTime: 2, Arrived: 5, Finished: 10},
			{PID: 1, Priority: 3, ReadyTime: 7, BlockedTime: 0, Arrived: 0, Finished: 12},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult()))

	want := `
Simulation ended at time: 12
System idle time: 3

PID: 2, PRIORITY: 7, READY WAIT TIME: 0, I/O WAIT TIME: 2
PID: 1, PRIORITY: 3, READY WAIT TIME: 7, I/O WAIT TIME: 0

`
	assert.Equal(t, want, buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, sampleResult())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Schedule table (priority, run run-1)\n"))
	assert.Contains(t, out, "Turnaround")
	assert.Contains(t, out, "3.50") // average ready time
	assert.Contains(t, out, "8.50") // average turnaround
	assert.Contains(t, out, "Simulated time: 12, CPU idle: 3")
}

func TestTableWithoutFinishedProcesses(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, &sim.Result{Policy: sched.PolicyFCFS, FinalTime: 4, TotalIdle: 4})
	assert.NotContains(t, buf.String(), "Average")
	assert.Contains(t, buf.String(), "CPU idle: 4")
}

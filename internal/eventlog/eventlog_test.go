package eventlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procsim/internal/sched"
)

func TestTextLogPreemptiveRun(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLog(&buf)
	log.Start(sched.PolicyPriority)

	e := sched.New(sched.PolicyPriority, 2, sched.WithObserver(log))
	_, err := e.Arrive(3, 0)
	require.NoError(t, err)
	_, err = e.Arrive(7, 5)
	require.NoError(t, err)
	require.NoError(t, e.RequestIO(1, 6))
	require.NoError(t, e.CompleteIO(1, 8))
	_, err = e.Terminate(10)
	require.NoError(t, err)
	_, err = e.Terminate(12)
	require.NoError(t, err)
	require.NoError(t, log.Err())

	want := `Simulation Starting. Preemption: true

0: Starting process with PID: 1 PRIORITY: 3
0: Process scheduled to run with PID: 1 PRIORITY: 3
5: Starting process with PID: 2 PRIORITY: 7
5: Process preempted with PID: 1 PRIORITY: 3
5: Process scheduled to run with PID: 2 PRIORITY: 7
6: Process with PID: 2 waiting for I/O device 1
6: Process scheduled to run with PID: 1 PRIORITY: 3
8: I/O completed for I/O device 1
8: Process preempted with PID: 1 PRIORITY: 3
8: Process scheduled to run with PID: 2 PRIORITY: 7
10: Ending process with PID: 2
10: Process scheduled to run with PID: 1 PRIORITY: 3
12: Ending process with PID: 1
12: CPU idle
`
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextLogKeepsFirstError(t *testing.T) {
	log := NewTextLog(failingWriter{})
	log.Start(sched.PolicyFCFS)
	log.Observe(sched.StatusEvent{Kind: sched.StatusIdle})
	assert.EqualError(t, log.Err(), "disk full")
}

func TestCSVLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	log, err := CreateCSVLog(path, "run-1")
	require.NoError(t, err)

	e := sched.New(sched.PolicyFCFS, 3, sched.WithObserver(log))
	_, err = e.Arrive(2, 1)
	require.NoError(t, err)
	require.NoError(t, e.RequestIO(2, 4))
	require.NoError(t, log.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"run_id", "time", "event", "pid", "priority", "device"},
		{"run-1", "1", "Arrive", "1", "2", ""},
		{"run-1", "1", "Dispatch", "1", "2", ""},
		{"run-1", "4", "Block", "1", "2", "2"},
		{"run-1", "4", "Idle", "", "", ""},
	}, rows)
}

package eventlog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"procsim/internal/sched"
)

var csvHeader = []string{"run_id", "time", "event", "pid", "priority", "device"}

// CSVLog writes status events as CSV rows.
type CSVLog struct {
	runID  string
	closer io.Closer
	w      *csv.Writer
	err    error
}

// NewCSVLog writes rows to w, starting with the header.
func NewCSVLog(w io.Writer, runID string) *CSVLog {
	l := &CSVLog{runID: runID, w: csv.NewWriter(w)}
	l.write(csvHeader)
	return l
}

// CreateCSVLog opens the given file path for CSV logging of events.
func CreateCSVLog(path, runID string) (*CSVLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := NewCSVLog(f, runID)
	l.closer = f
	return l, nil
}

func (l *CSVLog) Observe(ev sched.StatusEvent) {
	rec := []string{
		l.runID,
		strconv.FormatInt(int64(ev.Time), 10),
		ev.Kind.String(),
		"",
		"",
		"",
	}
	if ev.PID != 0 {
		rec[3] = strconv.Itoa(int(ev.PID))
		rec[4] = strconv.Itoa(ev.Priority)
	}
	if ev.Device >= 0 {
		rec[5] = strconv.Itoa(ev.Device)
	}
	l.write(rec)
}

func (l *CSVLog) write(rec []string) {
	if l.err != nil {
		return
	}
	l.err = l.w.Write(rec)
}

// Close flushes buffered rows and closes the file opened by CreateCSVLog.
func (l *CSVLog) Close() error {
	l.w.Flush()
	if l.err == nil {
		l.err = l.w.Error()
	}
	if l.closer != nil {
		if err := l.closer.Close(); err != nil && l.err == nil {
			l.err = err
		}
	}
	return l.err
}

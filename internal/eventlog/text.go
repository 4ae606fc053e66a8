// Package eventlog records engine status events as they happen.
package eventlog

import (
	"fmt"
	"io"

	"procsim/internal/sched"
)

// TextLog writes one human readable line per status event.
type TextLog struct {
	w   io.Writer
	err error
}

// NewTextLog writes to w.
func NewTextLog(w io.Writer) *TextLog {
	return &TextLog{w: w}
}

// Start prints the banner that opens every run.
func (l *TextLog) Start(kind sched.PolicyKind) {
	l.printf("Simulation Starting. Preemption: %t\n\n", kind.Preemptive())
}

func (l *TextLog) Observe(ev sched.StatusEvent) {
	switch ev.Kind {
	case sched.StatusArrive:
		l.printf("%d: Starting process with PID: %d PRIORITY: %d\n", ev.Time, ev.PID, ev.Priority)
	case sched.StatusDispatch:
		l.printf("%d: Process scheduled to run with PID: %d PRIORITY: %d\n", ev.Time, ev.PID, ev.Priority)
	case sched.StatusPreempt:
		l.printf("%d: Process preempted with PID: %d PRIORITY: %d\n", ev.Time, ev.PID, ev.Priority)
	case sched.StatusBlock:
		l.printf("%d: Process with PID: %d waiting for I/O device %d\n", ev.Time, ev.PID, ev.Device)
	case sched.StatusIOComplete:
		l.printf("%d: I/O completed for I/O device %d\n", ev.Time, ev.Device)
	case sched.StatusFinish:
		l.printf("%d: Ending process with PID: %d\n", ev.Time, ev.PID)
	case sched.StatusIdle:
		l.printf("%d: CPU idle\n", ev.Time)
	}
	// Enqueue is implied by Arrive, Preempt and IOComplete and is not printed.
}

// Err returns the first write error, if any.
func (l *TextLog) Err() error { return l.err }

func (l *TextLog) printf(format string, args ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format, args...)
}

package sched

import "errors"

// Invariant violations. Any of these means the trace contradicts itself and
// the run must stop.
var (
	ErrEmptyQueue     = errors.New("ready queue is empty")
	ErrCPUIdle        = errors.New("no process is running")
	ErrDeviceIdle     = errors.New("device has no active request")
	ErrNoSuchDevice   = errors.New("no such device")
	ErrUnknownProcess = errors.New("unknown process")
	ErrTimeReversed   = errors.New("event time is earlier than the clock")
)

// ErrInvariant is returned by Engine.Validate.
var ErrInvariant = errors.New("scheduler invariant violated")

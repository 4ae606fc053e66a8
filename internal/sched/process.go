package sched

import "fmt"

// PID uniquely identifies a process for the lifetime of a run.
type PID int

// Time is a simulated timestamp taken from the trace.
type Time int64

// State is the scheduling state of a live process.
type State int

const (
	Ready State = iota
	Running
	Blocked
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Blocked:
		return "Blocked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// noDevice marks a process that is not waiting on any device.
const noDevice = -1

// Process is the control block of one simulated process.
type Process struct {
	PID      PID
	Priority int // higher is more urgent
	State    State
	Device   int  // device the process is blocked on, or -1
	Arrived  Time // arrival timestamp

	ReadyStart Time
	ReadyEnd   Time
	TotalReady Time

	BlockedStart Time
	BlockedEnd   Time
	TotalBlocked Time
}

// newProcess creates a process with zeroed accumulators.
func newProcess(pid PID, priority int, now Time) *Process {
	return &Process{
		PID:      pid,
		Priority: priority,
		State:    Ready,
		Device:   noDevice,
		Arrived:  now,
	}
}

// openReady starts a ready interval.
func (p *Process) openReady(now Time) {
	p.State = Ready
	p.ReadyStart = now
}

// closeReady ends the current ready interval and accrues its length.
func (p *Process) closeReady(now Time) {
	p.ReadyEnd = now
	p.TotalReady += p.ReadyEnd - p.ReadyStart
}

// openBlocked starts a blocked interval on the given device.
func (p *Process) openBlocked(device int, now Time) {
	p.State = Blocked
	p.Device = device
	p.BlockedStart = now
}

// closeBlocked ends the current blocked interval and accrues its length.
func (p *Process) closeBlocked(now Time) {
	p.BlockedEnd = now
	p.TotalBlocked += p.BlockedEnd - p.BlockedStart
	p.Device = noDevice
	p.State = Ready
}

// Summary is the immutable record of a terminated process.
type Summary struct {
	PID         PID
	Priority    int
	ReadyTime   Time
	BlockedTime Time
	Arrived     Time
	Finished    Time
}

// Turnaround is the time from arrival to termination.
func (s Summary) Turnaround() Time {
	return s.Finished - s.Arrived
}

func (p *Process) summary(now Time) Summary {
	return Summary{
		PID:         p.PID,
		Priority:    p.Priority,
		ReadyTime:   p.TotalReady,
		BlockedTime: p.TotalBlocked,
		Arrived:     p.Arrived,
		Finished:    now,
	}
}

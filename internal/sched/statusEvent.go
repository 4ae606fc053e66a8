// internal/sched/statusEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusArrive
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusBlock
	StatusIOComplete
	StatusFinish
)

// StatusEvent is emitted on every state change, in the order the changes
// happen while handling a trace event.
type StatusEvent struct {
	Time     Time
	Kind     StatusKind
	PID      PID // zero for Idle and IOComplete
	Priority int
	Device   int // -1 unless Block or IOComplete
}

// Observer receives status events synchronously from the engine.
type Observer interface {
	Observe(ev StatusEvent)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(ev StatusEvent)

func (f ObserverFunc) Observe(ev StatusEvent) { f(ev) }

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusArrive:
		return "Arrive"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusBlock:
		return "Block"
	case StatusIOComplete:
		return "IOComplete"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

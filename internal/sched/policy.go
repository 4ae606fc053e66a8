package sched

import (
	"cmp"
	"fmt"
	"slices"
)

// PolicyKind selects how the ready container is ordered and whether newly
// ready processes may displace the running one.
type PolicyKind int

const (
	PolicyFCFS     PolicyKind = iota // first come first served, non-preemptive
	PolicyPriority                   // priority ordered, preemptive
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyFCFS:
		return "fcfs"
	case PolicyPriority:
		return "priority"
	default:
		return fmt.Sprintf("PolicyKind(%d)", int(k))
	}
}

// Preemptive reports whether the policy can displace a running process.
func (k PolicyKind) Preemptive() bool { return k == PolicyPriority }

// ParsePolicy maps the trace header flag: 0 is FCFS, 1 is preemptive priority.
func ParsePolicy(flag int) (PolicyKind, error) {
	switch flag {
	case 0:
		return PolicyFCFS, nil
	case 1:
		return PolicyPriority, nil
	default:
		return 0, fmt.Errorf("preemption flag must be 0 or 1, got %d", flag)
	}
}

// Policy owns the ready container and makes the placement decisions for
// arrivals and completed I/O batches. The engine supplies the mechanics.
type Policy interface {
	Kind() PolicyKind
	Len() int
	ReadyPIDs() []PID

	admit(e *Engine, p *Process, now Time) error
	release(e *Engine, batch []*Process, now Time) error
	push(p *Process)
	pop() (PID, error)
}

func newPolicy(kind PolicyKind) Policy {
	if kind == PolicyPriority {
		return &priorityPolicy{ready: NewPriorityQueue()}
	}
	return &fcfsPolicy{ready: NewReadyQueue()}
}

// fcfsPolicy never takes the CPU away from a running process.
type fcfsPolicy struct {
	ready *ReadyQueue
}

func (f *fcfsPolicy) Kind() PolicyKind  { return PolicyFCFS }
func (f *fcfsPolicy) Len() int          { return f.ready.Len() }
func (f *fcfsPolicy) ReadyPIDs() []PID  { return f.ready.PIDs() }
func (f *fcfsPolicy) push(p *Process)   { f.ready.Enqueue(p.PID) }
func (f *fcfsPolicy) pop() (PID, error) { return f.ready.Dequeue() }

func (f *fcfsPolicy) admit(e *Engine, p *Process, now Time) error {
	if !e.hasCPU {
		e.run(p, now)
		return nil
	}
	e.makeReady(p, now)
	return nil
}

// release queues the batch in drain order. An idle CPU takes the first one.
func (f *fcfsPolicy) release(e *Engine, batch []*Process, now Time) error {
	for _, p := range batch {
		if !e.hasCPU {
			e.run(p, now)
			continue
		}
		e.makeReady(p, now)
	}
	return nil
}

// priorityPolicy preempts when a strictly higher priority process becomes
// ready. Equal priority never preempts.
type priorityPolicy struct {
	ready *PriorityQueue
}

func (q *priorityPolicy) Kind() PolicyKind { return PolicyPriority }
func (q *priorityPolicy) Len() int         { return q.ready.Len() }
func (q *priorityPolicy) push(p *Process)  { q.ready.Enqueue(p.PID, p.Priority) }

func (q *priorityPolicy) ReadyPIDs() []PID {
	entries := q.ready.Entries()
	out := make([]PID, len(entries))
	for i, e := range entries {
		out[i] = e.PID
	}
	return out
}

func (q *priorityPolicy) pop() (PID, error) {
	e, err := q.ready.Dequeue()
	if err != nil {
		return 0, err
	}
	return e.PID, nil
}

func (q *priorityPolicy) admit(e *Engine, p *Process, now Time) error {
	if !e.hasCPU {
		e.run(p, now)
		return nil
	}
	cur, err := e.current()
	if err != nil {
		return err
	}
	if p.Priority > cur.Priority {
		return e.preempt(p, now)
	}
	e.makeReady(p, now)
	return nil
}

// release orders the batch by descending priority, keeping drain order among
// equals, and tests only the head of the batch against the running process.
func (q *priorityPolicy) release(e *Engine, batch []*Process, now Time) error {
	if len(batch) == 0 {
		return nil
	}
	slices.SortStableFunc(batch, func(a, b *Process) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	first, rest := batch[0], batch[1:]
	if !e.hasCPU {
		e.run(first, now)
	} else {
		cur, err := e.current()
		if err != nil {
			return err
		}
		if first.Priority > cur.Priority {
			if err := e.preempt(first, now); err != nil {
				return err
			}
		} else {
			rest = batch
		}
	}

	for _, p := range rest {
		e.makeReady(p, now)
	}
	return nil
}

package sched

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// ReadyQueue is a plain FIFO of PIDs.
type ReadyQueue struct {
	q *linkedlistqueue.Queue
}

// NewReadyQueue creates an empty FIFO.
func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{q: linkedlistqueue.New()}
}

// Enqueue appends pid at the tail.
func (r *ReadyQueue) Enqueue(pid PID) {
	r.q.Enqueue(pid)
}

// Dequeue removes and returns the head. An empty queue is an invariant
// violation, callers check Len first.
func (r *ReadyQueue) Dequeue() (PID, error) {
	v, ok := r.q.Dequeue()
	if !ok {
		return 0, ErrEmptyQueue
	}
	return v.(PID), nil
}

// Peek returns the head without removing it.
func (r *ReadyQueue) Peek() (PID, bool) {
	v, ok := r.q.Peek()
	if !ok {
		return 0, false
	}
	return v.(PID), true
}

func (r *ReadyQueue) Len() int    { return r.q.Size() }
func (r *ReadyQueue) Empty() bool { return r.q.Empty() }

// PIDs lists the queue from head to tail.
func (r *ReadyQueue) PIDs() []PID {
	values := r.q.Values()
	out := make([]PID, len(values))
	for i, v := range values {
		out[i] = v.(PID)
	}
	return out
}

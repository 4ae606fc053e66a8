package sched

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

// Entry is one queued PID together with the priority it was queued at.
type Entry struct {
	PID      PID
	Priority int
}

// PriorityQueue keeps entries in descending priority order. Entries of equal
// priority leave in the order they arrived.
type PriorityQueue struct {
	list *doublylinkedlist.List
}

// NewPriorityQueue creates an empty queue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{list: doublylinkedlist.New()}
}

// Enqueue inserts pid behind every entry of higher or equal priority.
func (q *PriorityQueue) Enqueue(pid PID, priority int) {
	e := Entry{PID: pid, Priority: priority}

	if q.list.Empty() {
		q.list.Add(e)
		return
	}
	if priority > q.head().Priority {
		q.list.Prepend(e)
		return
	}
	if priority <= q.tail().Priority {
		q.list.Append(e)
		return
	}

	// head >= priority > tail: the slot is right before the first entry that
	// ranks strictly lower, which keeps equal priorities in arrival order.
	at := q.list.Size() - 1
	it := q.list.Iterator()
	for it.Next() {
		if it.Value().(Entry).Priority < priority {
			at = it.Index()
			break
		}
	}
	q.list.Insert(at, e)
}

// Dequeue removes and returns the highest priority entry.
func (q *PriorityQueue) Dequeue() (Entry, error) {
	if q.list.Empty() {
		return Entry{}, ErrEmptyQueue
	}
	e := q.head()
	q.list.Remove(0)
	return e, nil
}

// Peek returns the head without removing it.
func (q *PriorityQueue) Peek() (Entry, bool) {
	if q.list.Empty() {
		return Entry{}, false
	}
	return q.head(), true
}

func (q *PriorityQueue) Len() int    { return q.list.Size() }
func (q *PriorityQueue) Empty() bool { return q.list.Empty() }

// Entries lists the queue from head to tail.
func (q *PriorityQueue) Entries() []Entry {
	values := q.list.Values()
	out := make([]Entry, len(values))
	for i, v := range values {
		out[i] = v.(Entry)
	}
	return out
}

func (q *PriorityQueue) head() Entry {
	v, _ := q.list.Get(0)
	return v.(Entry)
}

func (q *PriorityQueue) tail() Entry {
	v, _ := q.list.Get(q.list.Size() - 1)
	return v.(Entry)
}

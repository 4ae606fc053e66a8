package sched

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrdering(t *testing.T) {
	testCases := []struct {
		name       string
		priorities []int
		want       []PID
	}{
		{name: "single", priorities: []int{4}, want: []PID{1}},
		{name: "new head", priorities: []int{2, 9}, want: []PID{2, 1}},
		{name: "new tail", priorities: []int{9, 2}, want: []PID{1, 2}},
		{name: "equal tail goes last", priorities: []int{5, 5, 5}, want: []PID{1, 2, 3}},
		{name: "middle insert", priorities: []int{9, 1, 5}, want: []PID{1, 3, 2}},
		{name: "middle insert after equals", priorities: []int{9, 5, 5, 1, 5}, want: []PID{1, 2, 3, 5, 4}},
		{name: "equal to head is not a new head", priorities: []int{7, 3, 7}, want: []PID{1, 3, 2}},
		{name: "descending run", priorities: []int{1, 2, 3, 4}, want: []PID{4, 3, 2, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewPriorityQueue()
			for i, p := range tc.priorities {
				q.Enqueue(PID(i+1), p)
			}
			require.Equal(t, len(tc.priorities), q.Len())

			var got []PID
			for !q.Empty() {
				e, err := q.Dequeue()
				require.NoError(t, err)
				got = append(got, e.PID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPriorityQueueEmpty(t *testing.T) {
	q := NewPriorityQueue()
	assert.True(t, q.Empty())

	_, ok := q.Peek()
	assert.False(t, ok)

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestPriorityQueuePeekDoesNotRemove(t *testing.T) {
	q := NewPriorityQueue()
	q.Enqueue(1, 3)
	q.Enqueue(2, 8)

	e, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, Entry{PID: 2, Priority: 8}, e)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []Entry{{PID: 2, Priority: 8}, {PID: 1, Priority: 3}}, q.Entries())
}

// Dequeue order must match a stable sort by descending priority for any
// sequence of enqueues.
func TestPriorityQueueMatchesStableSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		q := NewPriorityQueue()
		var entries []Entry
		n := 1 + rng.Intn(30)
		for i := 0; i < n; i++ {
			e := Entry{PID: PID(i + 1), Priority: rng.Intn(6)}
			entries = append(entries, e)
			q.Enqueue(e.PID, e.Priority)
		}
		slices.SortStableFunc(entries, func(a, b Entry) int { return cmp.Compare(b.Priority, a.Priority) })

		assert.Equal(t, entries, q.Entries(), "round %d", round)
	}
}

func TestPriorityQueueInterleaved(t *testing.T) {
	q := NewPriorityQueue()
	q.Enqueue(1, 5)
	q.Enqueue(2, 5)

	e, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, PID(1), e.PID)

	q.Enqueue(3, 5)
	q.Enqueue(4, 6)

	var got []PID
	for !q.Empty() {
		e, err := q.Dequeue()
		require.NoError(t, err)
		got = append(got, e.PID)
	}
	assert.Equal(t, []PID{4, 2, 3}, got)
}

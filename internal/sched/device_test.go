package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueueFIFO(t *testing.T) {
	q := NewReadyQueue()
	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)

	for _, pid := range []PID{3, 1, 2} {
		q.Enqueue(pid)
	}
	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, PID(3), head)
	assert.Equal(t, []PID{3, 1, 2}, q.PIDs())

	var got []PID
	for !q.Empty() {
		pid, err := q.Dequeue()
		require.NoError(t, err)
		got = append(got, pid)
	}
	assert.Equal(t, []PID{3, 1, 2}, got)
	assert.Equal(t, 0, q.Len())
}

func TestDeviceSubmit(t *testing.T) {
	d := NewDevice(4)
	assert.Equal(t, 4, d.ID())
	assert.False(t, d.Busy())
	assert.Nil(t, d.PIDs())

	d.Submit(7)
	assert.True(t, d.Busy())
	assert.Equal(t, 1, d.Len())

	d.Submit(8)
	d.Submit(9)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []PID{7, 8, 9}, d.PIDs())
}

func TestDeviceDrainBatch(t *testing.T) {
	for k := 0; k < 5; k++ {
		d := NewDevice(0)
		for i := 0; i <= k; i++ {
			d.Submit(PID(i + 1))
		}

		got, err := d.Drain()
		require.NoError(t, err)
		assert.Len(t, got, k+1)
		assert.Equal(t, PID(1), got[0])
		assert.False(t, d.Busy())
		assert.Equal(t, 0, d.Len())
		assert.Nil(t, d.PIDs())
	}
}

func TestDeviceDrainIdle(t *testing.T) {
	d := NewDevice(2)
	_, err := d.Drain()
	assert.ErrorIs(t, err, ErrDeviceIdle)

	d.Submit(1)
	_, err = d.Drain()
	require.NoError(t, err)
	_, err = d.Drain()
	assert.ErrorIs(t, err, ErrDeviceIdle)
}

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Device is a simulated I/O device: at most one request in service plus a
// FIFO backlog of requests waiting behind it.
type Device struct {
	id      int
	active  PID
	busy    bool
	backlog *linkedlistqueue.Queue
}

// NewDevice creates an idle device.
func NewDevice(id int) *Device {
	return &Device{id: id, backlog: linkedlistqueue.New()}
}

func (d *Device) ID() int     { return d.id }
func (d *Device) Busy() bool { return d.busy }

// Len counts the active request and the backlog.
func (d *Device) Len() int {
	if !d.busy {
		return 0
	}
	return 1 + d.backlog.Size()
}

// Submit starts serving pid right away when the device is idle, otherwise
// queues it.
func (d *Device) Submit(pid PID) {
	if !d.busy {
		d.active = pid
		d.busy = true
		return
	}
	d.backlog.Enqueue(pid)
}

// Drain completes the whole device at once: the active request and every
// backlogged one come back in service order and the device is left empty.
func (d *Device) Drain() ([]PID, error) {
	if !d.busy {
		return nil, fmt.Errorf("device %d: %w", d.id, ErrDeviceIdle)
	}
	out := make([]PID, 0, 1+d.backlog.Size())
	out = append(out, d.active)
	for {
		v, ok := d.backlog.Dequeue()
		if !ok {
			break
		}
		out = append(out, v.(PID))
	}
	d.active = 0
	d.busy = false
	return out, nil
}

// PIDs lists the active request followed by the backlog.
func (d *Device) PIDs() []PID {
	if !d.busy {
		return nil
	}
	out := []PID{d.active}
	for _, v := range d.backlog.Values() {
		out = append(out, v.(PID))
	}
	return out
}

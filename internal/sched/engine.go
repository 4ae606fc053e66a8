// internal/sched/engine.go

package sched

import (
	"fmt"
	"io"
	"log/slog"
)

// Engine replays trace events against one CPU, a ready container chosen by
// the policy and a fixed bank of I/O devices.
//
// The engine is single threaded. Each handler runs to completion and every
// process it touches is removed from its source container before being
// placed in the next one.
type Engine struct {
	policy  Policy
	table   *processTable
	devices []*Device

	cpu    PID // valid only while hasCPU
	hasCPU bool

	idleStart Time // open idle window, valid only while !hasCPU
	totalIdle Time

	nextPID   PID
	clock     SimClock
	observers []Observer
	log       *slog.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithObserver registers an observer for status events.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine with an idle CPU and devices idle devices. The idle
// window is open from time zero.
func New(kind PolicyKind, devices int, opts ...Option) *Engine {
	if devices <= 0 {
		devices = DefaultDevices
	}
	e := &Engine{
		policy:  newPolicy(kind),
		table:   newProcessTable(),
		devices: make([]*Device, devices),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i := range e.devices {
		e.devices[i] = NewDevice(i)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Arrive creates a process with the next PID and lets the policy place it.
func (e *Engine) Arrive(priority int, now Time) (PID, error) {
	if err := e.clock.Advance(now); err != nil {
		return 0, err
	}
	e.nextPID++
	p := newProcess(e.nextPID, priority, now)
	e.table.put(p)
	e.emit(now, StatusArrive, p, noDevice)

	if err := e.policy.admit(e, p, now); err != nil {
		return 0, fmt.Errorf("arrive pid %d: %w", p.PID, err)
	}
	return p.PID, nil
}

// RequestIO blocks the running process on device and hands the CPU to the
// next ready process.
func (e *Engine) RequestIO(device int, now Time) error {
	if err := e.clock.Advance(now); err != nil {
		return err
	}
	d, err := e.device(device)
	if err != nil {
		return err
	}
	p, err := e.current()
	if err != nil {
		return fmt.Errorf("io request on device %d: %w", device, err)
	}

	p.openBlocked(device, now)
	e.hasCPU = false
	d.Submit(p.PID)
	e.emit(now, StatusBlock, p, device)

	return e.dispatchNext(now)
}

// CompleteIO finishes everything queued at device. All of it becomes ready
// at once and the policy decides who, if anyone, takes the CPU.
func (e *Engine) CompleteIO(device int, now Time) error {
	if err := e.clock.Advance(now); err != nil {
		return err
	}
	d, err := e.device(device)
	if err != nil {
		return err
	}
	pids, err := d.Drain()
	if err != nil {
		return err
	}

	batch := make([]*Process, len(pids))
	for i, pid := range pids {
		p, err := e.table.get(pid)
		if err != nil {
			return fmt.Errorf("io complete on device %d: %w", device, err)
		}
		p.closeBlocked(now)
		batch[i] = p
	}
	e.emit(now, StatusIOComplete, nil, device)

	return e.policy.release(e, batch, now)
}

// Terminate destroys the running process and returns its summary.
func (e *Engine) Terminate(now Time) (Summary, error) {
	if err := e.clock.Advance(now); err != nil {
		return Summary{}, err
	}
	p, err := e.current()
	if err != nil {
		return Summary{}, fmt.Errorf("terminate: %w", err)
	}

	s := p.summary(now)
	e.table.remove(p.PID)
	e.hasCPU = false
	e.emit(now, StatusFinish, p, noDevice)

	if err := e.dispatchNext(now); err != nil {
		return s, err
	}
	return s, nil
}

// run gives an idle CPU to p, closing the idle window.
func (e *Engine) run(p *Process, now Time) {
	if !e.hasCPU {
		e.totalIdle += now - e.idleStart
	}
	e.setRunning(p, now)
}

// preempt moves the running process back to the ready container and gives
// the CPU to next.
func (e *Engine) preempt(next *Process, now Time) error {
	old, err := e.current()
	if err != nil {
		return err
	}
	old.openReady(now)
	e.policy.push(old)
	e.emit(now, StatusPreempt, old, noDevice)
	e.log.Debug("preempt", "time", now, "pid", old.PID, "priority", old.Priority,
		"by", next.PID, "by_priority", next.Priority)

	e.setRunning(next, now)
	return nil
}

// makeReady opens a ready interval for p and queues it.
func (e *Engine) makeReady(p *Process, now Time) {
	p.openReady(now)
	e.policy.push(p)
	e.emit(now, StatusEnqueue, p, noDevice)
}

// dispatchNext fills the empty CPU from the ready container or opens an idle
// window when there is nothing to run.
func (e *Engine) dispatchNext(now Time) error {
	if e.policy.Len() == 0 {
		e.hasCPU = false
		e.idleStart = now
		e.emit(now, StatusIdle, nil, noDevice)
		e.log.Debug("cpu idle", "time", now)
		return nil
	}
	pid, err := e.policy.pop()
	if err != nil {
		return err
	}
	p, err := e.table.get(pid)
	if err != nil {
		return err
	}
	p.closeReady(now)
	e.setRunning(p, now)
	return nil
}

func (e *Engine) setRunning(p *Process, now Time) {
	p.State = Running
	e.cpu = p.PID
	e.hasCPU = true
	e.emit(now, StatusDispatch, p, noDevice)
}

// current returns the running process.
func (e *Engine) current() (*Process, error) {
	if !e.hasCPU {
		return nil, ErrCPUIdle
	}
	return e.table.get(e.cpu)
}

func (e *Engine) device(i int) (*Device, error) {
	if i < 0 || i >= len(e.devices) {
		return nil, fmt.Errorf("device %d of %d: %w", i, len(e.devices), ErrNoSuchDevice)
	}
	return e.devices[i], nil
}

func (e *Engine) emit(now Time, kind StatusKind, p *Process, device int) {
	if len(e.observers) == 0 {
		return
	}
	ev := StatusEvent{Time: now, Kind: kind, Device: device}
	if p != nil {
		ev.PID = p.PID
		ev.Priority = p.Priority
	}
	for _, o := range e.observers {
		o.Observe(ev)
	}
}

// Running reports the PID on the CPU, if any.
func (e *Engine) Running() (PID, bool) {
	if !e.hasCPU {
		return 0, false
	}
	return e.cpu, true
}

// Process returns a copy of a live process.
func (e *Engine) Process(pid PID) (Process, error) {
	p, err := e.table.get(pid)
	if err != nil {
		return Process{}, err
	}
	return *p, nil
}

// ReadyPIDs lists the ready container in dispatch order.
func (e *Engine) ReadyPIDs() []PID { return e.policy.ReadyPIDs() }

// DevicePIDs lists the active request and backlog of device i.
func (e *Engine) DevicePIDs(i int) ([]PID, error) {
	d, err := e.device(i)
	if err != nil {
		return nil, err
	}
	return d.PIDs(), nil
}

func (e *Engine) Devices() int       { return len(e.devices) }
func (e *Engine) Live() int          { return e.table.len() }
func (e *Engine) TotalIdle() Time    { return e.totalIdle }
func (e *Engine) Now() Time          { return e.clock.Now() }
func (e *Engine) Handled() int64     { return e.clock.Count() }
func (e *Engine) Policy() PolicyKind { return e.policy.Kind() }

package sched

import "fmt"

// Validate checks that exactly the CPU's process is Running and that every
// live process sits in exactly one of the CPU slot, the ready container or a
// device.
func (e *Engine) Validate() error {
	seen := make(map[PID]string, e.table.len())
	place := func(pid PID, where string, want State) error {
		if prev, dup := seen[pid]; dup {
			return fmt.Errorf("pid %d in both %s and %s: %w", pid, prev, where, ErrInvariant)
		}
		seen[pid] = where
		p, err := e.table.get(pid)
		if err != nil {
			return fmt.Errorf("%s holds pid %d: %w", where, pid, ErrInvariant)
		}
		if p.State != want {
			return fmt.Errorf("pid %d in %s is %s, want %s: %w", pid, where, p.State, want, ErrInvariant)
		}
		return nil
	}

	if e.hasCPU {
		if err := place(e.cpu, "cpu", Running); err != nil {
			return err
		}
	} else if e.policy.Len() > 0 {
		return fmt.Errorf("cpu idle with %d ready: %w", e.policy.Len(), ErrInvariant)
	}
	for _, pid := range e.policy.ReadyPIDs() {
		if err := place(pid, "ready queue", Ready); err != nil {
			return err
		}
	}
	for _, d := range e.devices {
		where := fmt.Sprintf("device %d", d.ID())
		for _, pid := range d.PIDs() {
			if err := place(pid, where, Blocked); err != nil {
				return err
			}
		}
	}

	for _, pid := range e.table.pids() {
		if _, ok := seen[pid]; !ok {
			return fmt.Errorf("pid %d is not held anywhere: %w", pid, ErrInvariant)
		}
	}
	return nil
}

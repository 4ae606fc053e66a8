package sched

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// processTable owns every live process. Queues, devices and the CPU slot
// only ever hold PIDs that point back into it.
type processTable struct {
	tree *redblacktree.Tree // PID -> *Process, ordered by PID
}

func newProcessTable() *processTable {
	return &processTable{tree: redblacktree.NewWith(pidCmp)}
}

func (t *processTable) put(p *Process) {
	t.tree.Put(p.PID, p)
}

func (t *processTable) get(pid PID) (*Process, error) {
	v, found := t.tree.Get(pid)
	if !found {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrUnknownProcess)
	}
	return v.(*Process), nil
}

func (t *processTable) remove(pid PID) {
	t.tree.Remove(pid)
}

func (t *processTable) len() int {
	return t.tree.Size()
}

// pids returns live PIDs in ascending order.
func (t *processTable) pids() []PID {
	keys := t.tree.Keys()
	out := make([]PID, len(keys))
	for i, k := range keys {
		out[i] = k.(PID)
	}
	return out
}

// pidCmp orders tree keys by PID.
func pidCmp(a, b any) int {
	ka, kb := a.(PID), b.(PID)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

package interp

// JobTable is a bounded set of outstanding background process ids. It is
// only ever touched by the interpreter goroutine, so it needs no locking.
type JobTable struct {
	capacity int
	pids     []int
}

// NewJobTable creates an empty table holding at most capacity pids.
func NewJobTable(capacity int) *JobTable {
	return &JobTable{capacity: capacity}
}

// Add inserts pid and reports whether there was room for it. A pid that
// doesn't fit is simply not tracked; its completion will be reaped silently.
func (t *JobTable) Add(pid int) bool {
	if len(t.pids) >= t.capacity {
		return false
	}
	t.pids = append(t.pids, pid)
	return true
}

// Remove deletes pid and reports whether it was tracked.
func (t *JobTable) Remove(pid int) bool {
	for i, p := range t.pids {
		if p == pid {
			t.pids = append(t.pids[:i], t.pids[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether pid is tracked.
func (t *JobTable) Has(pid int) bool {
	for _, p := range t.pids {
		if p == pid {
			return true
		}
	}
	return false
}

// Pids returns the tracked pids in dispatch order.
func (t *JobTable) Pids() []int {
	out := make([]int, len(t.pids))
	copy(out, t.pids)
	return out
}

func (t *JobTable) Len() int {
	return len(t.pids)
}

package program

import "sync"

// ShowLocks serializes mutating operations per show. Sequencing reads the
// current maximum position before writing, so two concurrent appends to the
// same show must not interleave; mutations on different shows may proceed in
// parallel. Entries are never evicted — one mutex per live show id is cheap
// at this scale.
type ShowLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

// NewShowLocks returns an empty lock registry.
func NewShowLocks() *ShowLocks {
	return &ShowLocks{m: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for showID and returns the matching unlock func.
func (l *ShowLocks) Lock(showID string) func() {
	l.mu.Lock()
	m, ok := l.m[showID]
	if !ok {
		m = &sync.Mutex{}
		l.m[showID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

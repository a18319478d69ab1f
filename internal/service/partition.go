package service

import "sync"

// PartitionLocks serializes mutations within one identity's partition while
// letting different identities proceed in parallel.
//
// Callers must never hold two partition locks at once.
type PartitionLocks struct {
	mu    sync.Mutex
	locks map[string]*partitionLock
}

type partitionLock struct {
	mu   sync.Mutex
	refs int
}

// NewPartitionLocks creates an empty lock table.
func NewPartitionLocks() *PartitionLocks {
	return &PartitionLocks{locks: make(map[string]*partitionLock)}
}

// Lock acquires identity's lock and returns the function that releases it.
// Entries are dropped once no goroutine holds or waits on them.
func (p *PartitionLocks) Lock(identity string) (unlock func()) {
	p.mu.Lock()
	l, ok := p.locks[identity]
	if !ok {
		l = &partitionLock{}
		p.locks[identity] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, identity)
		}
		p.mu.Unlock()
	}
}

// Len returns the number of identities with a held or awaited lock.
func (p *PartitionLocks) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}

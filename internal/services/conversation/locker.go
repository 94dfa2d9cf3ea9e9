package conversation

import (
	"sync"
)

// Locker serializes work per conversation id. Mutexes are created lazily and
// kept for the life of the process, since conversations never expire.
type Locker struct {
	locks sync.Map
}

func NewLocker() *Locker {
	return &Locker{}
}

// Lock blocks until the caller holds the lock for id and returns the function
// that releases it.
func (l *Locker) Lock(id string) func() {
	value, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

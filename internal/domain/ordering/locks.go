package ordering

import (
	"slices"
	"sync"
)

// Locks is a keyed mutex. Slots are created on demand and dropped once no
// caller holds or waits on them.
type Locks struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	mu   sync.Mutex
	refs int
}

// NewLocks creates an empty keyed mutex.
func NewLocks() *Locks {
	return &Locks{slots: make(map[string]*lockSlot)}
}

// Lock acquires every distinct id in ascending order and returns a function
// releasing them. Ordered acquisition keeps two-container callers from deadlocking.
func (l *Locks) Lock(ids ...string) (unlock func()) {
	keys := slices.Clone(ids)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]*lockSlot, 0, len(keys))
	for _, key := range keys {
		held = append(held, l.acquire(key))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(keys) - 1; i >= 0; i-- {
				l.release(keys[i], held[i])
			}
		})
	}
}

// Held reports how many keys currently have a slot.
func (l *Locks) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func (l *Locks) acquire(key string) *lockSlot {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	slot.mu.Lock()
	return slot
}

func (l *Locks) release(key string, slot *lockSlot) {
	slot.mu.Unlock()

	l.mu.Lock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
	l.mu.Unlock()
}

package ordering_test

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// memStore is an in-memory Store whose transactions are serialized and roll
// back the item table on error.
type memStore struct {
	mu         sync.Mutex
	containers map[string]bool
	items      map[string]ordering.Placement

	// skipGapClose turns CloseGapForward into a no-op to provoke invariant failures.
	skipGapClose bool
}

func newMemStore(containers ...string) *memStore {
	m := &memStore{
		containers: make(map[string]bool),
		items:      make(map[string]ordering.Placement),
	}
	for _, c := range containers {
		m.containers[c] = true
	}
	return m
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, s *memStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := maps.Clone(m.items)
	if err := fn(ctx, m); err != nil {
		m.items = saved
		return err
	}
	return nil
}

func (m *memStore) ShiftUpFrom(_ context.Context, containerID string, from int) (int64, error) {
	return m.shift(containerID, +1, func(p int) bool { return p >= from }), nil
}

func (m *memStore) CloseGapForward(_ context.Context, containerID string, from, to int) (int64, error) {
	if from >= to {
		return 0, ordering.ErrInvalidRange
	}
	if m.skipGapClose {
		return 0, nil
	}
	return m.shift(containerID, -1, func(p int) bool { return p > from && p <= to }), nil
}

func (m *memStore) CloseGapBackward(_ context.Context, containerID string, from, to int) (int64, error) {
	if to >= from {
		return 0, ordering.ErrInvalidRange
	}
	return m.shift(containerID, +1, func(p int) bool { return p >= to && p < from }), nil
}

func (m *memStore) shift(containerID string, delta int, match func(int) bool) int64 {
	var n int64
	for id, p := range m.items {
		if p.ContainerID == containerID && match(p.Position) {
			p.Position += delta
			m.items[id] = p
			n++
		}
	}
	return n
}

func (m *memStore) FindItem(_ context.Context, itemID string) (ordering.Placement, error) {
	p, ok := m.items[itemID]
	if !ok {
		return ordering.Placement{}, ordering.ErrItemNotFound
	}
	return p, nil
}

func (m *memStore) ContainerExists(_ context.Context, containerID string) (bool, error) {
	return m.containers[containerID], nil
}

func (m *memStore) MaxPosition(_ context.Context, containerID string) (int, bool, error) {
	maxPos, found := 0, false
	for _, p := range m.items {
		if p.ContainerID != containerID {
			continue
		}
		if !found || p.Position > maxPos {
			maxPos = p.Position
		}
		found = true
	}
	return maxPos, found, nil
}

func (m *memStore) Place(_ context.Context, p ordering.Placement) error {
	m.items[p.ItemID] = p
	return nil
}

func (m *memStore) Delete(_ context.Context, itemID string) error {
	delete(m.items, itemID)
	return nil
}

func (m *memStore) Positions(_ context.Context, containerID string) ([]int, error) {
	var out []int
	for _, p := range m.items {
		if p.ContainerID == containerID {
			out = append(out, p.Position)
		}
	}
	slices.Sort(out)
	return out, nil
}

// order returns the item ids of a container sorted by position.
func (m *memStore) order(containerID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ps []ordering.Placement
	for _, p := range m.items {
		if p.ContainerID == containerID {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Position < ps[j].Position })
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ItemID
	}
	return ids
}

func (m *memStore) positions(containerID string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, _ := m.Positions(context.Background(), containerID)
	return out
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func place(id, containerID string) ordering.PersistFunc[*memStore] {
	return func(ctx context.Context, s *memStore, position int) error {
		return s.Place(ctx, ordering.Placement{ItemID: id, ContainerID: containerID, Position: position})
	}
}

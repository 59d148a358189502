package services

import "sync"

// boundedMap keeps at most max entries and drops the least recently used one
// when a new id would exceed it. onEvict, when set, receives every dropped value.
type boundedMap[T any] struct {
	mu      sync.Mutex
	max     int
	seq     uint64
	items   map[string]*boundedItem[T]
	onEvict func(T)
}

type boundedItem[T any] struct {
	value T
	used  uint64
}

func newBoundedMap[T any](limit int) *boundedMap[T] {
	return &boundedMap[T]{
		max:   max(limit, 1),
		items: make(map[string]*boundedItem[T]),
	}
}

func (b *boundedMap[T]) put(id string, value T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[id]; !ok && len(b.items) >= b.max {
		b.evictOldest()
	}
	b.seq++
	b.items[id] = &boundedItem[T]{value: value, used: b.seq}
}

func (b *boundedMap[T]) get(id string) (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	item, ok := b.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	b.seq++
	item.used = b.seq
	return item.value, true
}

// getOrCreate returns the entry for id, creating it with create when missing.
func (b *boundedMap[T]) getOrCreate(id string, create func() T) T {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	if item, ok := b.items[id]; ok {
		item.used = b.seq
		return item.value
	}
	if len(b.items) >= b.max {
		b.evictOldest()
	}
	value := create()
	b.items[id] = &boundedItem[T]{value: value, used: b.seq}
	return value
}

func (b *boundedMap[T]) delete(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.items[id]
	delete(b.items, id)
	return ok
}

func (b *boundedMap[T]) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

func (b *boundedMap[T]) evictOldest() {
	var oldestID string
	var oldest uint64
	for id, item := range b.items {
		if oldestID == "" || item.used < oldest {
			oldestID, oldest = id, item.used
		}
	}
	item, ok := b.items[oldestID]
	delete(b.items, oldestID)
	if ok && b.onEvict != nil {
		b.onEvict(item.value)
	}
}

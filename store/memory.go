package store

// store/memory.go

import (
	"container/list"
	"sync"

	"go.uber.org/zap"
)

// Memory is an in-process item store keyed by identifier. Items keep the
// position of their first insertion; re-adding an item replaces its body.
type Memory[K comparable, T any] struct {
	mu     sync.Mutex
	items  map[K]*list.Element
	order  *list.List
	key    func(T) K
	logger *zap.SugaredLogger
}

type Option func(*memoryOptions)

type memoryOptions struct {
	logger *zap.SugaredLogger
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *memoryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// constructor
func NewMemory[K comparable, T any](key func(T) K, opts ...Option) *Memory[K, T] {
	o := memoryOptions{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Memory[K, T]{
		items:  make(map[K]*list.Element),
		order:  list.New(),
		key:    key,
		logger: o.logger,
	}
}

// Add upserts items.
func (m *Memory[K, T]) Add(items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range items {
		id := m.key(item)
		if elem, ok := m.items[id]; ok {
			elem.Value = item
			m.logger.Debugw("Replaced item in store", "id", id)
			continue
		}
		m.items[id] = m.order.PushBack(item)
		m.logger.Debugw("Added item to store", "id", id)
	}
	return nil
}

// Remove deletes the item with the given id. Unknown ids are ignored.
func (m *Memory[K, T]) Remove(id K) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[id]; ok {
		m.order.Remove(elem)
		delete(m.items, id)

		m.logger.Debugw("Deleted item from store", "id", id)
	}
	return nil
}

// GetAllItems returns a fresh slice of every item in insertion order.
func (m *Memory[K, T]) GetAllItems() ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]T, 0, m.order.Len())
	for elem := m.order.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(T))
	}
	return out, nil
}

func (m *Memory[K, T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}

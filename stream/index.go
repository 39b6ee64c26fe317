package stream

// stream/index.go

import (
	"container/list"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Store is the backing collection the index delegates item bodies to.
// The index only ever holds identifiers.
type Store[K comparable, T any] interface {
	Add(items []T) error
	Remove(id K) error
	GetAllItems() ([]T, error)
}

// KeyFunc extracts the identifier of an item.
type KeyFunc[K comparable, T any] func(T) K

// Index keeps the ordered, deduplicated list of live identifiers for items
// held in a Store, and evicts from the tail once a push exceeds the limit.
//
// An Index is not safe for concurrent use.
type Index[K comparable, T any] struct {
	store Store[K, T]
	key   KeyFunc[K, T]

	ids   *list.List
	elems map[K]*list.Element

	limit   int
	bounded bool

	logger *zap.SugaredLogger
}

// constructor
func New[K comparable, T any](store Store[K, T], key KeyFunc[K, T], opts ...Option) *Index[K, T] {
	o := options{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Index[K, T]{
		store:   store,
		key:     key,
		ids:     list.New(),
		elems:   make(map[K]*list.Element),
		limit:   o.limit,
		bounded: o.bounded,
		logger:  o.logger,
	}
}

// Push appends items to the tail, moving identifiers that are already present
// to their new position, forwards the items to the store and trims to the limit.
func (ix *Index[K, T]) Push(items ...T) error {
	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		id := ix.key(item)
		if elem, ok := ix.elems[id]; ok {
			ix.ids.Remove(elem)
			ix.logger.Debugw("Moved identifier to tail", "id", id)
		}
		ix.elems[id] = ix.ids.PushBack(id)
	}

	if err := ix.store.Add(items); err != nil {
		return err
	}

	return ix.Trim()
}

// Unshift places items at the head in their given order. Head insertion is
// never trimmed.
func (ix *Index[K, T]) Unshift(items ...T) error {
	if len(items) == 0 {
		return nil
	}

	// walk backwards so the block keeps its order; the last occurrence of a
	// repeated id decides where it lands
	seen := make(map[K]struct{}, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		id := ix.key(items[i])
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if elem, ok := ix.elems[id]; ok {
			ix.ids.Remove(elem)
			ix.logger.Debugw("Moved identifier to head", "id", id)
		}
		ix.elems[id] = ix.ids.PushFront(id)
	}

	return ix.store.Add(items)
}

// Trim evicts every identifier past the limit, starting at position limit and
// walking to the tail, and asks the store to remove each one. All evictions are
// attempted; removal errors are combined.
func (ix *Index[K, T]) Trim() error {
	if !ix.bounded || ix.ids.Len() <= ix.limit {
		return nil
	}

	// first element in excess
	elem := ix.ids.Front()
	for i := 0; i < ix.limit; i++ {
		elem = elem.Next()
	}

	var errs error
	for elem != nil {
		next := elem.Next()
		id := elem.Value.(K)

		ix.ids.Remove(elem)
		delete(ix.elems, id)

		ix.logger.Debugw("Evicted identifier due to limit",
			"id", id,
			"limit", ix.limit,
		)

		errs = multierr.Append(errs, ix.store.Remove(id))
		elem = next
	}

	return errs
}

// GetAllItems returns the store's items in index order. Identifiers the store
// no longer knows about are skipped. The slice returned by the store is only read.
func (ix *Index[K, T]) GetAllItems() ([]T, error) {
	stored, err := ix.store.GetAllItems()
	if err != nil {
		return nil, err
	}

	byID := make(map[K]T, len(stored))
	for _, item := range stored {
		byID[ix.key(item)] = item
	}

	out := make([]T, 0, ix.ids.Len())
	for elem := ix.ids.Front(); elem != nil; elem = elem.Next() {
		if item, ok := byID[elem.Value.(K)]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// IDs returns a copy of the ordered identifier list.
func (ix *Index[K, T]) IDs() []K {
	out := make([]K, 0, ix.ids.Len())
	for elem := ix.ids.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(K))
	}
	return out
}

func (ix *Index[K, T]) Len() int {
	return ix.ids.Len()
}

// Limit reports the configured bound. ok is false when the index is unbounded.
func (ix *Index[K, T]) Limit() (limit int, ok bool) {
	return ix.limit, ix.bounded
}

package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

var ErrRecordNotFound = errors.New("record not found")

// Service guards a record.Store with a single lock so HTTP handlers can
// share it. Observers run while the lock is held.
//
// Records go in and come out as copies (record.Snapshot) taken under the
// lock, so nothing outside the service aliases a stored record that Mark
// may change.
type Service[T record.Record] struct {
	mu    sync.RWMutex
	store *record.Store[T]
}

// NewService bootstraps an empty in-memory registry for one record kind.
func NewService[T record.Record](kind string, observer record.Observer) *Service[T] {
	return &Service[T]{store: record.NewStore[T](kind, observer)}
}

// Kind returns the record kind held by the registry.
func (s *Service[T]) Kind() string { return s.store.Kind() }

// Add stores a copy of a constructed record; duplicates return the
// existing one.
func (s *Service[T]) Add(_ context.Context, item T) (T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, status := s.store.Add(record.Snapshot(item))
	return record.Snapshot(stored), status
}

// List returns every record in insertion order.
func (s *Service[T]) List(_ context.Context) ([]T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, status := s.store.List()
	return snapshots(items), status
}

// Search matches term against the records' search fields.
func (s *Service[T]) Search(_ context.Context, term string) ([]T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, status := s.store.Search(term)
	return snapshots(items), status
}

// Filter returns the records satisfying keep.
func (s *Service[T]) Filter(_ context.Context, keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots(s.store.Filter(keep))
}

// Get retrieves a record by exact identifier.
func (s *Service[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.store.Get(id)
	if !ok {
		return item, ErrRecordNotFound
	}
	return record.Snapshot(item), nil
}

// Resolve retrieves a record by id or unique id prefix.
func (s *Service[T]) Resolve(_ context.Context, prefix string) (T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, status := s.store.Resolve(prefix)
	return record.Snapshot(item), status
}

// Remove deletes a record by identifier.
func (s *Service[T]) Remove(_ context.Context, id string) (T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(id)
}

// RemovePrefix deletes the record matching id or a unique id prefix.
func (s *Service[T]) RemovePrefix(_ context.Context, prefix string) (T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RemovePrefix(prefix)
}

// Mark applies a one-way flag transition to the record with id.
func (s *Service[T]) Mark(_ context.Context, id string, set func(T) bool) (T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, status := s.store.Mark(id, set)
	return record.Snapshot(item), status
}

// MarkPrefix is Mark addressed by id or a unique id prefix.
func (s *Service[T]) MarkPrefix(_ context.Context, prefix string, set func(T) bool) (T, record.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, status := s.store.MarkPrefix(prefix, set)
	return record.Snapshot(item), status
}

// Len reports how many records are held.
func (s *Service[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Len()
}

func snapshots[T record.Record](items []T) []T {
	for i, item := range items {
		items[i] = record.Snapshot(item)
	}
	return items
}

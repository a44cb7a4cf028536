package record

import (
	"slices"
	"strings"
	"time"
)

// Store is an ordered in-memory collection of records of one kind.
// It is not safe for concurrent use; see registry.Service for a guarded
// wrapper. Record kinds with a mutable flag should use pointer types so
// Mark can update them in place.
type Store[T Record] struct {
	kind     string
	items    []T
	observer Observer
	now      func() time.Time
}

// NewStore returns an empty store. A nil observer discards events.
func NewStore[T Record](kind string, observer Observer) *Store[T] {
	if observer == nil {
		observer = Nop
	}
	return &Store[T]{kind: kind, observer: observer, now: time.Now}
}

// Kind returns the record kind this store holds.
func (s *Store[T]) Kind() string { return s.kind }

// Len returns the number of stored records.
func (s *Store[T]) Len() int { return len(s.items) }

// Add appends item unless a record with the same id is already present, in
// which case the existing record is returned with StatusDuplicate.
func (s *Store[T]) Add(item T) (T, Status) {
	if i := s.indexOf(item.ID()); i >= 0 {
		existing := s.items[i]
		s.emit(OpAdd, StatusDuplicate, existing.ID(), existing.Label(), "", len(s.items))
		return existing, StatusDuplicate
	}
	s.items = append(s.items, item)
	s.emit(OpAdd, StatusAdded, item.ID(), item.Label(), "", len(s.items))
	return item, StatusAdded
}

// List returns a copy of all records in insertion order. An empty store
// yields a nil slice and StatusEmpty.
func (s *Store[T]) List() ([]T, Status) {
	if len(s.items) == 0 {
		s.emit(OpList, StatusEmpty, "", "", "", 0)
		return nil, StatusEmpty
	}
	out := append([]T(nil), s.items...)
	s.emit(OpList, StatusOK, "", "", "", len(out))
	return out, StatusOK
}

// Search returns the records whose search fields contain term, ignoring
// case, in insertion order. The empty term matches every record.
func (s *Store[T]) Search(term string) ([]T, Status) {
	needle := strings.ToLower(term)
	var out []T
	for _, item := range s.items {
		if matches(item, needle) {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		s.emit(OpSearch, StatusNoMatch, "", "", term, 0)
		return nil, StatusNoMatch
	}
	s.emit(OpSearch, StatusOK, "", "", term, len(out))
	return out, StatusOK
}

func matches[T Record](item T, needle string) bool {
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Get looks up a record by exact identifier.
func (s *Store[T]) Get(id string) (T, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the records satisfying keep, in insertion order.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	var out []T
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Remove deletes the record with the given id, keeping the order of the
// remaining records, and returns it with StatusRemoved.
func (s *Store[T]) Remove(id string) (T, Status) {
	i := s.indexOf(id)
	if i < 0 {
		s.emit(OpRemove, StatusNotFound, id, "", "", len(s.items))
		var zero T
		return zero, StatusNotFound
	}
	return s.removeAt(i)
}

// RemovePrefix is Remove addressed by id or unique id prefix. An
// ambiguous prefix removes nothing and yields StatusAmbiguous.
func (s *Store[T]) RemovePrefix(prefix string) (T, Status) {
	i, status, _ := s.locate(prefix)
	if i < 0 {
		s.emit(OpRemove, status, prefix, "", prefix, len(s.items))
		var zero T
		return zero, status
	}
	return s.removeAt(i)
}

func (s *Store[T]) removeAt(i int) (T, Status) {
	removed := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	s.emit(OpRemove, StatusRemoved, removed.ID(), removed.Label(), "", len(s.items))
	return removed, StatusRemoved
}

// Mark applies set to the record with the given id. set reports whether it
// changed the record; false yields StatusUnchanged.
func (s *Store[T]) Mark(id string, set func(T) bool) (T, Status) {
	i := s.indexOf(id)
	if i < 0 {
		s.emit(OpMark, StatusNotFound, id, "", "", len(s.items))
		var zero T
		return zero, StatusNotFound
	}
	return s.markAt(i, set)
}

// MarkPrefix is Mark addressed by id or unique id prefix.
func (s *Store[T]) MarkPrefix(prefix string, set func(T) bool) (T, Status) {
	i, status, _ := s.locate(prefix)
	if i < 0 {
		s.emit(OpMark, status, prefix, "", prefix, len(s.items))
		var zero T
		return zero, status
	}
	return s.markAt(i, set)
}

func (s *Store[T]) markAt(i int, set func(T) bool) (T, Status) {
	item := s.items[i]
	status := StatusUnchanged
	if set(item) {
		status = StatusMarked
	}
	s.emit(OpMark, status, item.ID(), item.Label(), "", len(s.items))
	return item, status
}

// Resolve finds a record by exact id, falling back to a unique id prefix.
// Several records sharing the prefix yield StatusAmbiguous.
func (s *Store[T]) Resolve(prefix string) (T, Status) {
	i, status, count := s.locate(prefix)
	if i < 0 {
		s.emit(OpResolve, status, "", "", prefix, count)
		var zero T
		return zero, status
	}
	item := s.items[i]
	s.emit(OpResolve, StatusOK, item.ID(), item.Label(), prefix, 1)
	return item, StatusOK
}

// locate returns the index of the record matching prefix exactly or as the
// only id prefix, or -1 with StatusNotFound or StatusAmbiguous and the
// number of candidates.
func (s *Store[T]) locate(prefix string) (int, Status, int) {
	if prefix == "" {
		return -1, StatusNotFound, 0
	}
	if i := s.indexOf(prefix); i >= 0 {
		return i, StatusOK, 1
	}
	found, count := -1, 0
	for i, item := range s.items {
		if strings.HasPrefix(item.ID(), prefix) {
			found = i
			count++
		}
	}
	switch count {
	case 0:
		return -1, StatusNotFound, 0
	case 1:
		return found, StatusOK, 1
	default:
		return -1, StatusAmbiguous, count
	}
}

func (s *Store[T]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.ID() == id })
}

func (s *Store[T]) emit(op Op, status Status, id, label, term string, count int) {
	s.observer.Observe(Event{
		Kind:   s.kind,
		Op:     op,
		Status: status,
		ID:     id,
		Label:  label,
		Term:   term,
		Count:  count,
		Time:   s.now().UTC(),
	})
}

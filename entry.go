package quadtree

import "github.com/google/uuid"

// Entry associates a stored value with the region it was inserted under.
type Entry[U Coordinate, V any] struct {
	id     uuid.UUID
	Region Area[U]
	Value  V
}

// UUID returns the identifier minted for this entry at insertion.
func (e *Entry[U, V]) UUID() uuid.UUID {
	return e.id
}

// entryStore owns every entry in the tree. Nodes reference entries only by
// identifier, so moving an entry's home node during a split never touches
// the entry itself. Identifiers are never reused after deletion.
type entryStore[U Coordinate, V any] struct {
	entries map[uuid.UUID]*Entry[U, V]
}

func newEntryStore[U Coordinate, V any]() *entryStore[U, V] {
	return &entryStore[U, V]{
		entries: make(map[uuid.UUID]*Entry[U, V]),
	}
}

func (s *entryStore[U, V]) add(region Area[U], value V) uuid.UUID {
	id := uuid.New()
	s.entries[id] = &Entry[U, V]{
		id:     id,
		Region: region,
		Value:  value,
	}
	return id
}

func (s *entryStore[U, V]) get(id uuid.UUID) (*Entry[U, V], bool) {
	e, ok := s.entries[id]
	return e, ok
}

func (s *entryStore[U, V]) remove(id uuid.UUID) (*Entry[U, V], bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	delete(s.entries, id)
	return e, true
}

func (s *entryStore[U, V]) regionOf(id uuid.UUID) Area[U] {
	return s.entries[id].Region
}

func (s *entryStore[U, V]) len() int {
	return len(s.entries)
}

func (s *entryStore[U, V]) reset() {
	s.entries = make(map[uuid.UUID]*Entry[U, V])
}

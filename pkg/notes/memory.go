package notes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation. It is used by
// tests and by the example programs; it is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[int64]*Note
	next  int64
}

// NewMemoryStore creates an empty in-memory note store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: make(map[int64]*Note),
		next:  1,
	}
}

// Insert adds a note to the store. A zero ID gets the next sequential
// ID assigned, written back to the note.
func (s *MemoryStore) Insert(ctx context.Context, note *Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == 0 {
		note.ID = s.next
	}
	if note.ID >= s.next {
		s.next = note.ID + 1
	}
	if note.ModifiedAt.IsZero() {
		note.ModifiedAt = time.Now().UTC()
	}
	s.notes[note.ID] = cloneNote(note)
	return nil
}

// List returns notes matching the filter, ordered by ID.
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.notes))
	for id := range s.notes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := []*Note{}
	for _, id := range ids {
		note := s.notes[id]
		if filter.Deck != "" && note.Deck != filter.Deck {
			continue
		}
		if filter.MissingField != "" && note.Fields[filter.MissingField] != "" {
			continue
		}
		result = append(result, cloneNote(note))
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

// Get returns the note with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneNote(note), nil
}

// UpdateFields merges the given field values into the note.
func (s *MemoryStore) UpdateFields(ctx context.Context, id int64, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return ErrNotFound
	}
	if note.Fields == nil {
		note.Fields = make(map[string]string, len(fields))
	}
	for name, value := range fields {
		note.Fields[name] = value
	}
	note.ModifiedAt = time.Now().UTC()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func cloneNote(note *Note) *Note {
	clone := *note
	clone.Fields = make(map[string]string, len(note.Fields))
	for name, value := range note.Fields {
		clone.Fields[name] = value
	}
	return &clone
}

package state

import "sync"

// Store holds one value of type T per chat id.
// The zero value is not usable; construct with NewStore.
type Store[T any] struct {
	mu    sync.Mutex
	items map[int64]T
}

// NewStore constructs an empty in-memory Store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[int64]T)}
}

// Get returns the value for chatID and whether one exists.
func (s *Store[T]) Get(chatID int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[chatID]
	return v, ok
}

// Set replaces the value for chatID.
func (s *Store[T]) Set(chatID int64, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[chatID] = v
}

// Clear removes the value for chatID.
func (s *Store[T]) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, chatID)
}

// InProgress reports whether chatID currently has a stored value.
func (s *Store[T]) InProgress(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[chatID]
	return ok
}

// Len returns the number of chats with stored state.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Update runs fn with the current value under the store lock, so the
// read-modify-write is atomic per store. When fn returns keep=false the
// entry is removed; otherwise next is stored.
func (s *Store[T]) Update(chatID int64, fn func(cur T, ok bool) (next T, keep bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[chatID]
	next, keep := fn(cur, ok)
	if !keep {
		delete(s.items, chatID)
		return
	}
	s.items[chatID] = next
}

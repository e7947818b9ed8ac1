package report

import "sync"

// Store holds the current report behind a mutex. Mutations apply to a
// deep copy and then swap the visible pointer, so a caller holding the
// previous *Report never observes a partial update. Listeners registered
// with Subscribe are invoked after every swap (mutate-then-notify).
//
// The store is constructor-injected into whatever needs it; there is no
// package-level instance.
type Store struct {
	mu        sync.Mutex
	current   *Report
	revision  uint64
	listeners []func(*Report)
}

func NewStore(initial *Report) *Store {
	return &Store{current: initial}
}

// Current returns the visible report. The returned pointer is shared;
// treat it as read-only and use Mutate for changes.
func (s *Store) Current() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Revision returns a counter bumped on every successful mutation.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Replace swaps in a whole new report (load, import, AI regeneration).
func (s *Store) Replace(r *Report) {
	s.mu.Lock()
	s.current = r
	s.revision++
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(r)
	}
}

// Mutate clones the current report, applies fn to the clone, and swaps it
// in when fn reports a change. When fn returns false (typically a
// missing-id no-op) the clone is discarded and the visible tree is left
// byte-for-byte as it was.
func (s *Store) Mutate(fn func(*Report) bool) bool {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return false
	}
	next := s.current.Clone()
	if !fn(next) {
		s.mu.Unlock()
		return false
	}
	s.current = next
	s.revision++
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return true
}

// Subscribe registers a listener called after each mutation with the new
// tree reference. Listeners run on the mutating goroutine.
func (s *Store) Subscribe(fn func(*Report)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

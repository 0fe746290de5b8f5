package render

import (
	"sync"
	"sync/atomic"
)

// Surface is the display target of render passes. Every pass takes a token
// from Begin; only the pass holding the latest token may commit, so a slow
// older pass can never overwrite a newer one.
type Surface struct {
	issued atomic.Uint64

	mu        sync.RWMutex
	committed uint64
	markup    string
}

func NewSurface() *Surface {
	return &Surface{}
}

// Begin issues the next pass token.
func (s *Surface) Begin() uint64 {
	return s.issued.Add(1)
}

// Latest reports whether token is still the newest issued.
func (s *Surface) Latest(token uint64) bool {
	return s.issued.Load() == token
}

// Commit stores markup if token is still the newest issued. It reports
// whether the markup was stored.
func (s *Surface) Commit(token uint64, markup string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Latest(token) || token <= s.committed {
		return false
	}
	s.committed = token
	s.markup = markup
	return true
}

// Markup returns the last committed output and its token.
func (s *Surface) Markup() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markup, s.committed
}

package concurrency

import (
	"sync"
	"sync/atomic"
)

// Token identifies one acquisition of a key. Release only clears the key
// while it is still held by the same token.
type Token uint64

// SessionMap tracks which keys currently hold an in-flight operation.
// Acquisition is atomic: of any number of concurrent TryAcquire calls for the
// same key, exactly one succeeds until Release is called.
type SessionMap struct {
	active sync.Map
	next   atomic.Uint64
}

// NewSessionMap creates an empty SessionMap
func NewSessionMap() *SessionMap {
	return &SessionMap{}
}

// TryAcquire marks key active and reports whether the caller now owns it.
// The returned token must be passed to Release.
func (s *SessionMap) TryAcquire(key string) (Token, bool) {
	tok := Token(s.next.Add(1))
	if _, loaded := s.active.LoadOrStore(key, tok); loaded {
		return 0, false
	}
	return tok, true
}

// Release clears key if tok still owns it. A key purged and re-acquired
// since tok was issued is left alone.
func (s *SessionMap) Release(key string, tok Token) {
	s.active.CompareAndDelete(key, tok)
}

// Active reports whether key is held
func (s *SessionMap) Active(key string) bool {
	_, ok := s.active.Load(key)
	return ok
}

// Len counts the held keys
func (s *SessionMap) Len() int {
	n := 0
	s.active.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Purge releases every key
func (s *SessionMap) Purge() {
	s.active.Range(func(k, _ any) bool {
		s.active.Delete(k)
		return true
	})
}

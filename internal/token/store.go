package token

import "sync"

type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

// Store holds the session credentials. It is process-wide and mutated only by
// login, by a successful refresh, and by logout or an irrecoverable refresh
// failure. Readers always see the latest value.
type Store interface {
	Get(kind Kind) (string, bool)
	Set(kind Kind, value string)
	Clear()
}

type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[Kind]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[Kind]string)}
}

func (s *MemoryStore) Get(kind Kind) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.tokens[kind]
	return value, ok && value != ""
}

func (s *MemoryStore) Set(kind Kind, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[kind] = value
}

// Clear invalidates the session. Any authenticated call after this is treated
// as unauthenticated.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = make(map[Kind]string)
}

package memory

import (
	"sync"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is an in-memory driven.PreferenceStore.
// Failures can be injected to stand in for a disabled or full backend.
type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	getErr error
	putErr error
	puts   int
}

// NewPreferenceStore creates an empty store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the value under key.
func (s *PreferenceStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	val, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

// Put stores a copy of value under key.
func (s *PreferenceStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.values[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

// FailGets makes every Get return err. Nil restores normal reads.
func (s *PreferenceStore) FailGets(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailPuts makes every Put return err. Nil restores normal writes.
func (s *PreferenceStore) FailPuts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

// Puts returns the number of successful writes.
func (s *PreferenceStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

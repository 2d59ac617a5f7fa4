package keystore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a process-local [Store] for tests and embedding. All
// methods are safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys: make(map[string]string),
	}
}

// Save stores a key record, assigning a generated UUID when rec.KID is
// empty, and returns the effective kid.
func (s *MemoryStore) Save(rec *KeyRecord) (string, error) {
	if rec == nil || rec.Key == "" {
		return "", ErrKeyMaterialRequired
	}

	kid := rec.KID
	if kid == "" {
		kid = uuid.NewString()
	}

	s.mu.Lock()
	s.keys[kid] = rec.Key
	s.mu.Unlock()

	return kid, nil
}

// GetKeyByID resolves a key record by kid. A missing key returns (nil, nil).
func (s *MemoryStore) GetKeyByID(_ context.Context, kid string) (*KeyRecord, error) {
	s.mu.RLock()
	raw, ok := s.keys[kid]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return &KeyRecord{KID: kid, Key: raw}, nil
}

// Delete removes a key record. Deleting an absent kid is a no-op.
func (s *MemoryStore) Delete(kid string) {
	s.mu.Lock()
	delete(s.keys, kid)
	s.mu.Unlock()
}

package snapshot

import (
	"context"
	"encoding/json"
	"sync"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/infra"

	"github.com/google/uuid"
)

// MemoryStore is a process-local SnapshotStore for tests and local runs
// without Redis. Snapshots are stored as encoded bytes so reads see the
// same copy semantics as the Redis store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, key uuid.UUID, snap *booking.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return infra.WrapRepoErr("failed to encode snapshot", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = payload
	return nil
}

func (s *MemoryStore) Find(_ context.Context, key uuid.UUID) (*booking.Snapshot, error) {
	s.mu.RLock()
	payload, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, infra.WrapRepoErr("snapshot not found", nil, infra.KindNotFound)
	}

	var snap booking.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, infra.WrapRepoErr("failed to decode snapshot", err)
	}
	return &snap, nil
}

func (s *MemoryStore) Delete(_ context.Context, key uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

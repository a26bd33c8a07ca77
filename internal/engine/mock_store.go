package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/model"
)

// MockProfileStore is an in-memory ProfileStore for tests. Profiles are
// deep-copied on the way in and out so callers cannot alias stored state.
type MockProfileStore struct {
	SaveErr  error
	profiles map[string][]byte
	saves    int
	mu       sync.Mutex
}

// NewMockProfileStore creates an empty store.
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{profiles: make(map[string][]byte)}
}

// GetProfile returns a copy of the stored profile.
func (m *MockProfileStore) GetProfile(_ context.Context, userID string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: profile for user %s", common.ErrNotFound, userID)
	}
	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile stores a copy of profile.
func (m *MockProfileStore) SaveProfile(_ context.Context, profile *model.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	m.profiles[profile.UserID] = data
	m.saves++
	return nil
}

// Saves reports how many successful writes the store has seen.
func (m *MockProfileStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op.
func (m *MockProfileStore) Close() error {
	return nil
}

package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"loadtrack/internal/domain"
	"loadtrack/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK LOAD STORE
// ──────────────────────────────────────────────

// MockLoadStore is a mock implementation of repository.LoadStore. It
// remembers the last written collection so tests can assert on what was
// persisted.
type MockLoadStore struct {
	mu     sync.RWMutex
	loads  []domain.Load
	exists bool

	// Counters for verification
	ReadCallCount  int32
	WriteCallCount int32

	// Error injection
	ReadError  error
	WriteError error
}

// NewMockLoadStore creates a new mock load store with no collection
// document, so the first ReadAll reports ErrNotFound like a fresh install.
func NewMockLoadStore() *MockLoadStore {
	return &MockLoadStore{}
}

// SeedCollection sets the stored collection directly, marking the
// document as existing.
func (m *MockLoadStore) SeedCollection(loads []domain.Load) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = make([]domain.Load, len(loads))
	copy(m.loads, loads)
	m.exists = true
}

func (m *MockLoadStore) ReadAll(ctx context.Context) ([]domain.Load, error) {
	atomic.AddInt32(&m.ReadCallCount, 1)
	if m.ReadError != nil {
		return nil, m.ReadError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.exists {
		return nil, repository.ErrNotFound
	}
	loads := make([]domain.Load, len(m.loads))
	copy(loads, m.loads)
	return loads, nil
}

func (m *MockLoadStore) WriteAll(ctx context.Context, loads []domain.Load) error {
	atomic.AddInt32(&m.WriteCallCount, 1)
	if m.WriteError != nil {
		return m.WriteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = make([]domain.Load, len(loads))
	copy(m.loads, loads)
	m.exists = true
	return nil
}

// Stored returns a snapshot of the persisted collection for assertions.
func (m *MockLoadStore) Stored() []domain.Load {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loads := make([]domain.Load, len(m.loads))
	copy(loads, m.loads)
	return loads
}

// Writes returns the number of WriteAll calls so far.
func (m *MockLoadStore) Writes() int32 {
	return atomic.LoadInt32(&m.WriteCallCount)
}

// Ensure MockLoadStore implements repository.LoadStore.
var _ repository.LoadStore = (*MockLoadStore)(nil)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateCallCount int32
	CreateError     error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Phone == phone {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// Ensure MockUserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*MockUserRepository)(nil)

package storage

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

// MockStorage keeps encoded sessions in memory. Loads decode a fresh copy,
// so callers never share state with what was saved.
type MockStorage struct {
	mu        sync.RWMutex
	saves     map[uuid.UUID][]byte
	infos     map[uuid.UUID]SaveInfo
	pingError error
	saveError error
}

var (
	_ Storage = (*MockStorage)(nil)
	_ Lister  = (*MockStorage)(nil)
)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		saves: make(map[uuid.UUID][]byte),
		infos: make(map[uuid.UUID]SaveInfo),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes every following Save fail with err.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// Put stores raw bytes under handle, bypassing encoding.
func (m *MockStorage) Put(handle uuid.UUID, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[handle] = data
}

// Raw returns the stored bytes for handle.
func (m *MockStorage) Raw(handle uuid.UUID) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.saves[handle]
	return data, ok
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) Save(ctx context.Context, s *state.Session) (uuid.UUID, error) {
	if s == nil {
		return uuid.Nil, Wrap("save", uuid.Nil, errors.New("session cannot be nil"))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return uuid.Nil, Wrap("save", s.ID, m.saveError)
	}
	id := Handle(s)
	data, err := state.Encode(s)
	if err != nil {
		return uuid.Nil, Wrap("save", id, err)
	}
	m.saves[id] = data
	m.infos[id] = Info(s, time.Now())
	return id, nil
}

func (m *MockStorage) Load(ctx context.Context, handle uuid.UUID) (*state.Session, error) {
	m.mu.RLock()
	data, ok := m.saves[handle]
	m.mu.RUnlock()
	if !ok {
		return nil, Wrap("load", handle, ErrNotFound)
	}
	s, err := state.Decode(data)
	if err != nil {
		return nil, Wrap("load", handle, err)
	}
	return s, nil
}

func (m *MockStorage) Delete(ctx context.Context, handle uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saves, handle)
	delete(m.infos, handle)
	return nil
}

// List returns saves made through Save, most recent first.
func (m *MockStorage) List(ctx context.Context) ([]SaveInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SaveInfo, 0, len(m.infos))
	for _, info := range m.infos {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b SaveInfo) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return out, nil
}

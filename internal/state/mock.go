package state

import "sync"

// Mock is a test double for Manager that saves synchronously.
type Mock struct {
	mu      sync.Mutex
	folders map[string]FolderState
	saves   int
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{folders: make(map[string]FolderState)}
}

func (m *Mock) SaveFolder(s FolderState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders[s.Folder] = s
	m.saves++
}

func (m *Mock) GetFolder(folder string) (*FolderState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.folders[folder]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &s, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// Saves returns how many times SaveFolder was called.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

package session

import "sync"

// Memory keeps the session in process memory. It satisfies Store for tests
// and for ephemeral shells that should not leave credentials on disk.
type Memory struct {
	mu      sync.Mutex
	session *Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) GetUser() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *Memory) SetToken(token, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &Session{Token: token, TenantID: tenantID}
	return nil
}

func (m *Memory) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

var _ Store = (*Memory)(nil)

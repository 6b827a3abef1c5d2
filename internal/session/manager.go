package session

import "sync"

// Manager tracks live sessions so shutdown can close them all; each session
// saves on close.
type Manager struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[*Session]struct{})}
}

func (m *Manager) Add(s *Session) {
	m.mu.Lock()
	m.sessions[s] = struct{}{}
	m.mu.Unlock()
}

func (m *Manager) Remove(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s)
	m.mu.Unlock()
}

// Stop closes every live session, triggering their final saves.
func (m *Manager) Stop() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[*Session]struct{})
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

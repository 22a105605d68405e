package session

import "time"

// setRaw stores an identity blob as is, bypassing Save.
func (m *MemoryPersistence) setRaw(user []byte, token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = user
	m.token = token
	m.expiresAt = expiresAt
}

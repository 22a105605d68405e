package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryPersistence is an in-process Persistence, used when no data file is
// configured. The identity is kept serialized, as on disk, so a stored
// record never aliases a caller's.
type MemoryPersistence struct {
	mu        sync.Mutex
	user      []byte
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{now: time.Now}
}

func (m *MemoryPersistence) Load(_ context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := Record{User: decodeUser(m.user)}
	if m.token != "" && m.now().Before(m.expiresAt) {
		rec.Token = m.token
		rec.ExpiresAt = m.expiresAt
	}
	return rec, nil
}

func (m *MemoryPersistence) Save(_ context.Context, rec Record) error {
	var raw []byte
	if rec.User != nil {
		b, err := json.Marshal(rec.User)
		if err != nil {
			return err
		}
		raw = b
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = raw
	m.token = rec.Token
	m.expiresAt = rec.ExpiresAt
	return nil
}

func (m *MemoryPersistence) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	m.token = ""
	m.expiresAt = time.Time{}
	return nil
}

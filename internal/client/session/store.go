package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/logging"
)

var ErrEmptyToken = errors.New("session token is empty")

// Session pairs the projected identity with its bearer token.
type Session struct {
	User     models.User
	Token    string
	Remember bool
}

// Observer receives the session as it is after a change.
type Observer func(s Session, ok bool)

type subscriber struct {
	mu     sync.Mutex
	active bool
	fn     Observer
}

// Store is the single source of truth for the current session. It is safe
// for concurrent use.
type Store struct {
	// writeMu serializes mutations so persistence and memory stay in step.
	writeMu sync.Mutex

	mu  sync.RWMutex
	cur *Session

	subMu  sync.Mutex
	subs   map[int]*subscriber
	nextID int

	persist     Persistence
	rememberFor time.Duration
	now         func() time.Time
	log         logging.Logger
}

// NewStore returns an empty store backed by p. A remembered token expires
// rememberFor after it was last saved.
func NewStore(p Persistence, rememberFor time.Duration, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{
		subs:        make(map[int]*subscriber),
		persist:     p,
		rememberFor: rememberFor,
		now:         time.Now,
		log:         log,
	}
}

// Get returns the current session, if any.
func (s *Store) Get() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cur == nil {
		return Session{}, false
	}
	return *s.cur, true
}

// Token implements client.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cur == nil {
		return "", false
	}
	return s.cur.Token, true
}

// Set stores user (projected) and token. The identity is always persisted;
// the token only when remember is true.
func (s *Store) Set(ctx context.Context, user models.User, token string, remember bool) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.writeMu.Lock()
	err := s.setLocked(ctx, Session{User: models.ProjectUser(user), Token: token, Remember: remember})
	s.writeMu.Unlock()

	if err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Store) setLocked(ctx context.Context, next Session) error {
	rec := Record{User: &next.User}
	if next.Remember {
		rec.Token = next.Token
		rec.ExpiresAt = s.now().Add(s.rememberFor)
	}
	if err := s.persist.Save(ctx, rec); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.cur = &next
	s.mu.Unlock()

	s.log.Debug(ctx, "session set", "user", next.User.DisplayName(), "remember", next.Remember)
	return nil
}

// UpdateUser replaces the identity of the current session, switching to
// rotatedToken when it is non-empty. A rotated token is always remembered.
// With no session and no rotated token there is nothing to pair the
// identity with and the call is a no-op.
func (s *Store) UpdateUser(ctx context.Context, user models.User, rotatedToken string) error {
	s.writeMu.Lock()

	s.mu.RLock()
	cur := s.cur
	s.mu.RUnlock()

	next := Session{User: models.ProjectUser(user), Token: rotatedToken, Remember: true}
	if rotatedToken == "" {
		if cur == nil {
			s.writeMu.Unlock()
			s.log.Warn(ctx, "identity update without a session ignored")
			return nil
		}
		next.Token = cur.Token
		next.Remember = cur.Remember
	}

	err := s.setLocked(ctx, next)
	s.writeMu.Unlock()

	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Clear removes the persisted token and identity and drops the in-memory
// session. Subscribers hear about it only if a session existed.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	had, err := s.clearLocked(ctx)
	s.writeMu.Unlock()

	if had {
		s.notify()
	}
	return err
}

func (s *Store) clearLocked(ctx context.Context) (bool, error) {
	err := s.persist.Clear(ctx)

	s.mu.Lock()
	had := s.cur != nil
	s.cur = nil
	s.mu.Unlock()

	if had {
		s.log.Debug(ctx, "session cleared")
	}
	if err != nil {
		return had, fmt.Errorf("clear persisted session: %w", err)
	}
	return had, nil
}

// adopt installs a restored session without rewriting persistence.
func (s *Store) adopt(next Session) {
	s.writeMu.Lock()
	s.mu.Lock()
	s.cur = &next
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.notify()
}

// refreshed applies a background profile result, but only while the
// session still holds token. It reports whether it was applied.
func (s *Store) refreshed(ctx context.Context, token string, user models.User) (bool, error) {
	s.writeMu.Lock()

	s.mu.RLock()
	cur := s.cur
	s.mu.RUnlock()

	if cur == nil || cur.Token != token {
		s.writeMu.Unlock()
		return false, nil
	}

	err := s.setLocked(ctx, Session{User: models.ProjectUser(user), Token: token, Remember: cur.Remember})
	s.writeMu.Unlock()

	if err != nil {
		return false, err
	}
	s.notify()
	return true, nil
}

// invalidated clears the session if it still holds token.
func (s *Store) invalidated(ctx context.Context, token string) (bool, error) {
	s.writeMu.Lock()

	s.mu.RLock()
	cur := s.cur
	s.mu.RUnlock()

	if cur == nil || cur.Token != token {
		s.writeMu.Unlock()
		return false, nil
	}

	had, err := s.clearLocked(ctx)
	s.writeMu.Unlock()

	if had {
		s.notify()
	}
	return true, err
}

// Subscribe registers fn for session changes. After the returned function
// has run, fn is never called again. fn must not mutate the store, and
// unsubscribe must not be called from inside fn.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	sub := &subscriber{active: true, fn: fn}

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()

			sub.mu.Lock()
			sub.active = false
			sub.mu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		if sub.active {
			cur, ok := s.Get()
			sub.fn(cur, ok)
		}
		sub.mu.Unlock()
	}
}

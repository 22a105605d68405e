package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/logging"
)

// State is where bootstrap left the session.
type State int

const (
	Unauthenticated State = iota
	WarmRestored
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case WarmRestored:
		return "warm-restored"
	case Authenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.User, error)
}

// Refresh tracks the background profile refresh started on a warm restore.
type Refresh struct {
	done chan struct{}

	mu    sync.Mutex
	state State
	err   error
}

func newRefresh() *Refresh {
	return &Refresh{done: make(chan struct{}), state: WarmRestored}
}

// Done is closed once the refresh has settled.
func (r *Refresh) Done() <-chan struct{} { return r.done }

// State is WarmRestored until the refresh settles.
func (r *Refresh) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err is the refresh failure, if any.
func (r *Refresh) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Wait blocks until the refresh settles or ctx is done.
func (r *Refresh) Wait(ctx context.Context) (State, error) {
	select {
	case <-r.done:
		return r.State(), r.Err()
	case <-ctx.Done():
		return WarmRestored, ctx.Err()
	}
}

func (r *Refresh) finish(state State, err error) {
	r.mu.Lock()
	r.state = state
	r.err = err
	r.mu.Unlock()
	close(r.done)
}

type Bootstrapper struct {
	store *Store
	api   ProfileFetcher
	log   logging.Logger
}

func NewBootstrapper(store *Store, api ProfileFetcher, log logging.Logger) *Bootstrapper {
	if log == nil {
		log = logging.NewNop()
	}
	return &Bootstrapper{store: store, api: api, log: log}
}

// Run reconciles the persisted session with the server. The returned
// Refresh is non-nil only for WarmRestored. The error reports a failure to
// read local state; server failures resolve to Unauthenticated.
func (b *Bootstrapper) Run(ctx context.Context) (State, *Refresh, error) {
	rec, err := b.store.persist.Load(ctx)
	if err != nil {
		return Unauthenticated, nil, fmt.Errorf("load session: %w", err)
	}

	if rec.Token == "" {
		if rec.User != nil {
			// identity left without a token
			if err := b.store.Clear(ctx); err != nil {
				b.log.Warn(ctx, "clearing stale identity failed", "err", err)
			}
		}
		return Unauthenticated, nil, nil
	}

	if rec.User != nil {
		b.store.adopt(Session{User: models.ProjectUser(*rec.User), Token: rec.Token, Remember: true})

		r := newRefresh()
		go b.refresh(context.WithoutCancel(ctx), rec.Token, r)
		return WarmRestored, r, nil
	}

	user, err := b.api.Profile(client.WithToken(ctx, rec.Token))
	if err != nil {
		b.log.Info(ctx, "persisted token rejected", "err", err)
		if cerr := b.store.Clear(context.WithoutCancel(ctx)); cerr != nil {
			b.log.Warn(ctx, "clearing session failed", "err", cerr)
		}
		return Unauthenticated, nil, nil
	}

	if err := b.store.Set(ctx, *user, rec.Token, true); err != nil {
		return Unauthenticated, nil, err
	}
	return Authenticated, nil, nil
}

func (b *Bootstrapper) refresh(ctx context.Context, token string, r *Refresh) {
	user, err := b.api.Profile(client.WithToken(ctx, token))
	if err != nil {
		b.log.Info(ctx, "background profile refresh failed", "err", err)
		if _, cerr := b.store.invalidated(ctx, token); cerr != nil {
			b.log.Warn(ctx, "clearing session failed", "err", cerr)
		}
		r.finish(b.current(), err)
		return
	}

	applied, err := b.store.refreshed(ctx, token, *user)
	if err != nil {
		b.log.Warn(ctx, "storing refreshed identity failed", "err", err)
		r.finish(b.current(), err)
		return
	}
	if !applied {
		b.log.Debug(ctx, "session changed during refresh, result dropped")
	}
	r.finish(b.current(), nil)
}

func (b *Bootstrapper) current() State {
	if _, ok := b.store.Get(); ok {
		return Authenticated
	}
	return Unauthenticated
}

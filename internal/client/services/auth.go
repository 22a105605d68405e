// Package services contains application services for the NexaBoard client.
// This file defines the authentication service: login, registration,
// profile read/update and logout, all funnelled through the session store.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/session"
	"golang.org/x/sync/singleflight"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate the form, authenticate and start a session.
//   - Register: validate locally (no request on failure), create the
//     account and start a remembered session.
//   - Profile: fetch the current identity; concurrent callers share a call.
//   - UpdateProfile: patch the identity, adopting a rotated token.
//   - Logout: clear the session.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, form models.LoginForm, remember bool) (session.Session, error)
	Register(ctx context.Context, form models.RegisterForm) (session.Session, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, form models.ProfileForm) (session.Session, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	group  singleflight.Group
}

// NewAuthService constructs an AuthService bound to the API client and the
// session store.
func NewAuthService(client client.Client, store *session.Store) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) Login(ctx context.Context, form models.LoginForm, remember bool) (session.Session, error) {
	if err := form.Validate(); err != nil {
		return session.Session{}, err
	}

	res, err := a.client.Login(ctx, form)
	if err != nil {
		return session.Session{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Set(ctx, res.User, res.Token, remember); err != nil {
		return session.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return a.current()
}

func (a *authService) Register(ctx context.Context, form models.RegisterForm) (session.Session, error) {
	if err := form.Validate(); err != nil {
		return session.Session{}, err
	}

	res, err := a.client.Register(ctx, form)
	if err != nil {
		return session.Session{}, fmt.Errorf("register error: %w", err)
	}

	if err := a.store.Set(ctx, res.User, res.Token, true); err != nil {
		return session.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return a.current()
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	v, err, _ := a.group.Do("profile", func() (any, error) {
		return a.client.Profile(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}
	u, _ := v.(*models.User)
	if u == nil {
		return nil, fmt.Errorf("profile error: empty response")
	}
	cp := *u
	return &cp, nil
}

func (a *authService) UpdateProfile(ctx context.Context, form models.ProfileForm) (session.Session, error) {
	if err := form.Validate(); err != nil {
		return session.Session{}, err
	}

	res, err := a.client.UpdateProfile(ctx, form)
	if err != nil {
		return session.Session{}, fmt.Errorf("profile update error: %w", err)
	}

	if err := a.store.UpdateUser(ctx, res.User, res.Token); err != nil {
		return session.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return a.current()
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) current() (session.Session, error) {
	s, ok := a.store.Get()
	if !ok {
		return session.Session{}, fmt.Errorf("session vanished: %w", client.ErrUnauthorized)
	}
	return s, nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/render"
	"github.com/dmitrijs2005/nexaboard/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for the account fields and signs the new user in. The
// session is always remembered.
func (a *App) Register(ctx context.Context) error {
	var form models.RegisterForm
	var err error

	if form.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword("Enter password", a.out); err != nil {
		return err
	}
	if form.ConfirmPassword, err = getPassword("Confirm password", a.out); err != nil {
		return err
	}

	s, err := a.authService.Register(ctx, form)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.println(render.OK(fmt.Sprintf("Welcome, %s!", s.User.DisplayName())))
	return nil
}

// Login prompts for credentials. A remembered session survives restarts;
// otherwise only the identity is kept on disk.
func (a *App) Login(ctx context.Context) error {
	var form models.LoginForm
	var err error

	if form.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword("Enter password", a.out); err != nil {
		return err
	}
	remember := Confirm(a.reader, "Remember me?", a.out)

	s, err := a.authService.Login(ctx, form, remember)
	if err != nil {
		return a.failWith(ctx, err, errBadCredentials)
	}

	a.log.Info(ctx, "login successful", "user", s.User.ID, "remember", remember)
	a.println(render.OK(fmt.Sprintf("Logged in as %s", s.User.DisplayName())))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the cached identity and what the token claims about itself.
// It makes no request.
func (a *App) WhoAmI(ctx context.Context) error {
	s, ok := a.store.Get()
	if !ok {
		a.println("Not logged in.")
		return nil
	}

	a.println(render.Avatar(s.User), s.User.DisplayName())
	if s.User.Email != "" {
		a.println("email:", s.User.Email)
	}
	a.println("remembered:", s.Remember)

	info := session.InspectToken(s.Token)
	if info.Opaque {
		a.println("token: opaque")
		return nil
	}
	if info.Subject != "" {
		a.println("subject:", info.Subject)
	}
	if info.IssuedAt != nil {
		a.println("token issued:", info.IssuedAt.Local().Format(time.RFC1123))
	}
	if info.ExpiresAt != nil {
		status := "valid"
		if info.Expired(time.Now()) {
			status = "expired"
		}
		a.println(fmt.Sprintf("token expires: %s (%s)", info.ExpiresAt.Local().Format(time.RFC1123), status))
	}
	return nil
}

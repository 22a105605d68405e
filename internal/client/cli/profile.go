package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/render"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
)

// Dashboard prints the greeting, task statistics and recent tasks.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	d, err := a.dashboardService.Load(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.Dashboard(d.User, d.Stats, d.Tasks))
	return nil
}

func (a *App) ProfileShow(ctx context.Context) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	u, err := a.authService.Profile(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.Profile(models.ProjectUser(*u)))
	return nil
}

// ProfileEdit prompts for username, bio and an optional new password.
func (a *App) ProfileEdit(ctx context.Context) error {
	cur, ok := a.currentUser()
	if !ok {
		a.println(render.Error(errNotLoggedIn))
		return reportedError{errNotLoggedIn}
	}

	var form models.ProfileForm
	var err error

	if form.Username, err = GetTextWithDefault(a.reader, "Username", cur.Username, a.out); err != nil {
		return err
	}
	if form.Bio, err = GetTextWithDefault(a.reader, "Bio", cur.Bio, a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword("New password (blank keeps the current one)", a.out); err != nil {
		return err
	}

	s, err := a.authService.UpdateProfile(ctx, form)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.OK(fmt.Sprintf("Profile updated for %s", s.User.DisplayName())))
	return nil
}

// Export writes the matching tasks as JSON to dest (see
// services.ExportService).
func (a *App) Export(ctx context.Context, dest string, c tasklist.Criteria) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	n, err := a.exportService.Export(ctx, dest, c, a.out)
	if err != nil {
		return a.fail(ctx, err)
	}
	if dest != "" && dest != "-" {
		a.println(render.OK(fmt.Sprintf("Exported %d tasks to %s", n, dest)))
	}
	return nil
}

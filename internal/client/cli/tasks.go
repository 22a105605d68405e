package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/render"
	"github.com/dmitrijs2005/nexaboard/internal/client/services"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"github.com/dmitrijs2005/nexaboard/internal/client/tui"
)

// List fetches the tasks and prints those matching c.
func (a *App) List(ctx context.Context, c tasklist.Criteria) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	list := tasklist.NewList()
	if err := a.taskService.Fetch(ctx, list); err != nil {
		return a.fail(ctx, err)
	}
	list.SetCriteria(c)

	visible := list.Visible()
	a.println(render.TaskTable(visible))
	if len(visible) != list.Len() {
		a.println(render.Muted(fmt.Sprintf("%d of %d tasks shown", len(visible), list.Len())))
	}
	return nil
}

// Add prompts for a new task. Blank status and priority take the create
// defaults.
func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	var in models.TaskInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	status, err := GetTextWithDefault(a.reader, "Status (pending, in-progress, completed)", string(models.StatusPending), a.out)
	if err != nil {
		return err
	}
	in.Status = models.Status(strings.ToLower(status))

	priority, err := GetTextWithDefault(a.reader, "Priority (low, medium, high)", string(models.PriorityMedium), a.out)
	if err != nil {
		return err
	}
	in.Priority = models.Priority(strings.ToLower(priority))

	due, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD, blank for none)", a.out)
	if err != nil {
		return err
	}
	if due != "" {
		d, err := models.ParseDate(due)
		if err != nil {
			return a.fail(ctx, err)
		}
		in.DueDate = &d
	}

	t, err := a.taskService.Create(ctx, in)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.println(render.OK(fmt.Sprintf("Created task %s", t.ID)))
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	t, err := a.taskService.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.TaskCard(t, cardWidth))
	return nil
}

// Edit walks through the task's fields with the current values as defaults
// and sends only what changed.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	cur, err := a.taskService.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	var patch models.TaskPatch

	title, err := GetTextWithDefault(a.reader, "Title", cur.Title, a.out)
	if err != nil {
		return err
	}
	if title != cur.Title {
		patch.Title = &title
	}

	desc, err := GetMultiline(a.reader, "Description (blank keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if desc != "" && desc != cur.Description {
		patch.Description = &desc
	}

	status, err := GetTextWithDefault(a.reader, "Status", string(cur.Status), a.out)
	if err != nil {
		return err
	}
	if s := models.Status(strings.ToLower(status)); s != cur.Status {
		patch.Status = &s
	}

	priority, err := GetTextWithDefault(a.reader, "Priority", string(cur.EffectivePriority()), a.out)
	if err != nil {
		return err
	}
	if p := models.Priority(strings.ToLower(priority)); p != cur.EffectivePriority() {
		patch.Priority = &p
	}

	curDue := ""
	if cur.DueDate != nil && !cur.DueDate.IsZero() {
		curDue = cur.DueDate.String()
	}
	due, err := GetTextWithDefault(a.reader, "Due date (YYYY-MM-DD)", curDue, a.out)
	if err != nil {
		return err
	}
	if due != curDue {
		d, err := models.ParseDate(due)
		if err != nil {
			return a.fail(ctx, err)
		}
		patch.DueDate = &d
	}

	if patch.Empty() {
		a.println("Nothing to update.")
		return nil
	}

	t, err := a.taskService.Update(ctx, nil, id, patch)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.OK(fmt.Sprintf("Updated task %s", t.ID)))
	return nil
}

// Done marks the task completed.
func (a *App) Done(ctx context.Context, id string) error {
	return a.SetStatus(ctx, id, string(models.StatusCompleted))
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	t, err := a.taskService.ChangeStatus(ctx, nil, id, models.Status(strings.ToLower(status)))
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.OK(fmt.Sprintf("%q is now", t.Title)), render.StatusBadge(t.Status))
	return nil
}

// Delete removes a task after confirmation; assumeYes skips the prompt.
func (a *App) Delete(ctx context.Context, id string, assumeYes bool) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}

	list := tasklist.NewList()
	if err := a.taskService.Fetch(ctx, list); err != nil {
		return a.fail(ctx, err)
	}

	confirm := func(t models.Task) bool {
		if assumeYes {
			return true
		}
		name := t.Title
		if name == "" {
			name = t.ID
		}
		return Confirm(a.reader, fmt.Sprintf("Delete %q?", name), a.out)
	}

	err := a.taskService.Delete(ctx, list, id, confirm)
	if errors.Is(err, services.ErrDeleteCancelled) {
		a.println("Cancelled.")
		return nil
	}
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(render.OK("Task deleted."))
	return nil
}

// Browse opens the full-screen task browser.
func (a *App) Browse(ctx context.Context) error {
	if !a.requireLogin() {
		return reportedError{errNotLoggedIn}
	}
	err := a.browse(ctx, a.taskService, a.store)
	if errors.Is(err, tui.ErrSessionEnded) {
		a.println(render.Error(errSessionExpired))
		return reportedError{err}
	}
	if err != nil {
		return a.fail(ctx, err)
	}
	return nil
}

package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu        sync.Mutex
	tasks     []models.Task
	fetchErr  error
	updateErr error

	changedID     string
	changedStatus models.Status
}

func (f *fakeSource) Fetch(_ context.Context, list *tasklist.List) error {
	if f.fetchErr != nil {
		return f.fetchErr
	}
	list.SetTasks(f.tasks)
	return nil
}

func (f *fakeSource) ChangeStatus(_ context.Context, list *tasklist.List, id string, status models.Status) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changedID = id
	f.changedStatus = status
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, t := range f.tasks {
		if t.ID == id {
			t.Status = status
			return &t, nil
		}
	}
	return nil, errors.New("missing")
}

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Write report", Description: "quarterly", Status: models.StatusPending, Priority: models.PriorityHigh},
		{ID: "2", Title: "Review PR", Status: models.StatusInProgress, Priority: models.PriorityLow},
		{ID: "3", Title: "Ship release", Description: "final REPORT", Status: models.StatusCompleted},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	require.True(t, ok)
	return mm, cmd
}

func loaded(t *testing.T, src *fakeSource) model {
	t.Helper()
	m := newModel(context.Background(), src)
	msg := m.Init()()
	m, _ = send(t, m, msg)
	return m
}

func TestInit_LoadsTasks(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	assert.False(t, m.loading)
	assert.Equal(t, 3, m.list.Len())
	assert.Contains(t, m.View(), "Write report")
	assert.Contains(t, m.View(), "3/3 tasks")
}

func TestInit_FetchError(t *testing.T) {
	m := loaded(t, &fakeSource{fetchErr: errors.New("offline")})

	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Error: offline")
}

func TestSearch_FiltersAsYouType(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	m, _ = send(t, m, key("/"))
	require.True(t, m.search.Focused())

	for _, r := range "report" {
		m, _ = send(t, m, key(string(r)))
	}

	visible := m.list.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "1", visible[0].ID)
	assert.Equal(t, "3", visible[1].ID)

	m, _ = send(t, m, key("enter"))
	assert.False(t, m.search.Focused())
	assert.Equal(t, "report", m.list.Criteria().Search)
}

func TestTab_CyclesStatusFilter(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	m, _ = send(t, m, key("tab"))
	assert.Equal(t, "pending", m.list.Criteria().Status)
	assert.Len(t, m.list.Visible(), 1)

	m, _ = send(t, m, key("tab"))
	assert.Equal(t, "in-progress", m.list.Criteria().Status)

	m, _ = send(t, m, key("tab"))
	m, _ = send(t, m, key("tab"))
	assert.Equal(t, tasklist.All, m.list.Criteria().Status)
	assert.Len(t, m.list.Visible(), 3)
}

func TestShiftTab_CyclesPriorityFilter(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	m, _ = send(t, m, key("shift+tab"))
	assert.Equal(t, "low", m.list.Criteria().Priority)
	m, _ = send(t, m, key("shift+tab"))
	assert.Equal(t, "medium", m.list.Criteria().Priority)

	// task 3 has no priority and counts as medium
	visible := m.list.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "3", visible[0].ID)
}

func TestEsc_ResetsCriteria(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})
	m, _ = send(t, m, key("tab"))
	m, _ = send(t, m, key("shift+tab"))

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, tasklist.DefaultCriteria(), m.list.Criteria())
}

func TestCursor_StaysInBounds(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	m, _ = send(t, m, key("k"))
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, key("j"))
	}
	assert.Equal(t, 2, m.cursor)

	m, _ = send(t, m, key("tab"))
	assert.Equal(t, 0, m.cursor)
}

func TestComplete_SelectedTask(t *testing.T) {
	src := &fakeSource{tasks: sampleTasks()}
	m := loaded(t, src)

	m, cmd := send(t, m, key("c"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, "1", src.changedID)
	assert.Equal(t, models.StatusCompleted, src.changedStatus)
	got, ok := m.list.Find("1")
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Contains(t, m.View(), "is now completed")
}

func TestComplete_AlreadyCompletedIsNoop(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})
	m, _ = send(t, m, key("j"))
	m, _ = send(t, m, key("j"))

	_, cmd := send(t, m, key("c"))
	assert.Nil(t, cmd)
}

func TestNextStatus_FailureKeepsList(t *testing.T) {
	src := &fakeSource{tasks: sampleTasks(), updateErr: errors.New("denied")}
	m := loaded(t, src)

	m, cmd := send(t, m, key("s"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, models.StatusInProgress, src.changedStatus)
	got, _ := m.list.Find("1")
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Contains(t, m.View(), "Error: denied")
}

func TestUnauthorized_QuitsWithError(t *testing.T) {
	rejected := &client.APIError{StatusCode: 401, Message: "token expired"}

	t.Run("on load", func(t *testing.T) {
		m := newModel(context.Background(), &fakeSource{fetchErr: rejected})
		m, cmd := send(t, m, m.Init()())

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.ErrorIs(t, m.fatal, client.ErrUnauthorized)
	})

	t.Run("on status change", func(t *testing.T) {
		m := loaded(t, &fakeSource{tasks: sampleTasks(), updateErr: rejected})

		m, cmd := send(t, m, key("c"))
		require.NotNil(t, cmd)
		m, cmd = send(t, m, cmd())

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.ErrorIs(t, m.fatal, client.ErrUnauthorized)
	})
}

func TestSessionEnded_Quits(t *testing.T) {
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	m, cmd := send(t, m, sessionEndedMsg{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.fatal, ErrSessionEnded)
}

func TestEnter_TogglesDetail(t *testing.T) {
	t.Setenv("NEXABOARD_MD_STYLE", "notty")
	m := loaded(t, &fakeSource{tasks: sampleTasks()})

	m, _ = send(t, m, key("enter"))
	assert.True(t, m.detail)
	assert.Contains(t, m.View(), "quarterly")

	m, _ = send(t, m, key("esc"))
	assert.False(t, m.detail)
}

func TestQuit(t *testing.T) {
	m := loaded(t, &fakeSource{})
	_, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCycleHelpers(t *testing.T) {
	assert.Equal(t, "pending", cycle(statusCycle, ""))
	assert.Equal(t, tasklist.All, cycle(statusCycle, "bogus"))
	assert.Equal(t, models.StatusPending, nextStatus(models.StatusCompleted))
	assert.Equal(t, models.StatusPending, nextStatus(""))
}

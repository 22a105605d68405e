package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/render"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
)

// Source is the slice of the task service the browser needs.
type Source interface {
	Fetch(ctx context.Context, list *tasklist.List) error
	ChangeStatus(ctx context.Context, list *tasklist.List, id string, status models.Status) (*models.Task, error)
}

var (
	statusCycle   = []string{tasklist.All, string(models.StatusPending), string(models.StatusInProgress), string(models.StatusCompleted)}
	priorityCycle = []string{tasklist.All, string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh)}
)

type tasksLoadedMsg struct{ tasks []models.Task }

type taskUpdatedMsg struct{ task models.Task }

type errMsg struct{ err error }

type sessionEndedMsg struct{}

type model struct {
	ctx  context.Context
	src  Source
	list *tasklist.List

	search  textinput.Model
	cursor  int
	detail  bool
	loading bool
	err     error
	notice  string
	// fatal ends the program and is returned by Run.
	fatal  error
	width  int
	height int
}

func newModel(ctx context.Context, src Source) model {
	in := textinput.New()
	in.Placeholder = "search title or description"
	in.Prompt = "/ "
	in.CharLimit = 120

	return model{
		ctx:     ctx,
		src:     src,
		list:    tasklist.NewList(),
		search:  in,
		loading: true,
	}
}

func (m model) Init() tea.Cmd { return m.fetch() }

func (m model) fetch() tea.Cmd {
	return func() tea.Msg {
		l := tasklist.NewList()
		if err := m.src.Fetch(m.ctx, l); err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks: l.Tasks()}
	}
}

func (m model) changeStatus(id string, status models.Status) tea.Cmd {
	return func() tea.Msg {
		t, err := m.src.ChangeStatus(m.ctx, nil, id, status)
		if err != nil {
			return errMsg{err}
		}
		return taskUpdatedMsg{task: *t}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		m.err = nil
		m.list.SetTasks(msg.tasks)
		m.clampCursor()
		return m, nil

	case taskUpdatedMsg:
		m.err = nil
		m.list.Replace(msg.task)
		m.notice = fmt.Sprintf("%q is now %s", msg.task.Title, msg.task.Status)
		m.clampCursor()
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		if errors.Is(msg.err, client.ErrUnauthorized) {
			m.fatal = msg.err
			return m, tea.Quit
		}
		return m, nil

	case sessionEndedMsg:
		m.fatal = ErrSessionEnded
		return m, tea.Quit

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.list.SetSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/":
		m.detail = false
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		if m.detail {
			m.detail = false
			return m, nil
		}
		m.search.SetValue("")
		m.list.SetCriteria(tasklist.DefaultCriteria())
		m.clampCursor()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list.Visible())-1 {
			m.cursor++
		}
	case "tab":
		next := cycle(statusCycle, m.list.Criteria().Status)
		_ = m.list.SetStatus(next)
		m.clampCursor()
	case "shift+tab":
		next := cycle(priorityCycle, m.list.Criteria().Priority)
		_ = m.list.SetPriority(next)
		m.clampCursor()
	case "enter":
		if _, ok := m.selected(); ok {
			m.detail = !m.detail
		}
	case "c":
		if t, ok := m.selected(); ok && t.Status != models.StatusCompleted {
			return m, m.changeStatus(t.ID, models.StatusCompleted)
		}
	case "s":
		if t, ok := m.selected(); ok {
			return m, m.changeStatus(t.ID, nextStatus(t.Status))
		}
	case "r":
		m.loading = true
		m.notice = ""
		return m, m.fetch()
	}
	return m, nil
}

func (m model) selected() (models.Task, bool) {
	v := m.list.Visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return models.Task{}, false
	}
	return v[m.cursor], true
}

func (m *model) clampCursor() {
	n := len(m.list.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func cycle(values []string, cur string) string {
	if cur == "" {
		cur = tasklist.All
	}
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func nextStatus(s models.Status) models.Status {
	for i, v := range models.Statuses {
		if v == s {
			return models.Statuses[(i+1)%len(models.Statuses)]
		}
	}
	return models.StatusPending
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	var b strings.Builder

	c := m.list.Criteria()
	b.WriteString(headerStyle.Render(fmt.Sprintf("NexaBoard  %d/%d tasks  status=%s  priority=%s",
		len(m.list.Visible()), m.list.Len(), orAll(c.Status), orAll(c.Priority))))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(render.Muted("Loading tasks..."))
	case m.detail:
		t, _ := m.selected()
		b.WriteString(render.TaskCard(t, m.cardWidth()))
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(render.Error(m.err))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(render.OK(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("/ search  tab status  shift+tab priority  enter details  c complete  s next status  r reload  q quit"))
	return b.String()
}

func (m model) viewList() string {
	v := m.list.Visible()
	if len(v) == 0 {
		return render.Muted("No tasks found.")
	}
	lines := make([]string, len(v))
	for i, t := range v {
		line := render.TaskLine(t)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (m model) cardWidth() int {
	if m.width <= 0 {
		return 72
	}
	return m.width - 2
}

func orAll(s string) string {
	if s == "" {
		return tasklist.All
	}
	return s
}

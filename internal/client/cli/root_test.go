package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/config"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func executeRoot(t *testing.T, ta *testApp, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := testConfig()
	root := newRootCommand(cfg, func(context.Context, *config.Config) (*App, error) {
		return ta.App, nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Tree(t *testing.T) {
	root := NewRootCommand(testConfig())

	for _, path := range [][]string{
		{"login"}, {"register"}, {"logout"}, {"whoami"}, {"dashboard"},
		{"tasks"}, {"task", "add"}, {"task", "show"}, {"task", "edit"},
		{"task", "done"}, {"task", "status"}, {"task", "delete"},
		{"profile", "show"}, {"profile", "edit"}, {"browse"}, {"export"}, {"version"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	for _, name := range []string{"api", "data", "timeout", "config"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "a", root.PersistentFlags().Lookup("api").Shorthand)
}

func TestRoot_TasksWithFilters(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t)
	ta.tasks.tasks = sampleTasks()

	out, err := executeRoot(t, ta, "", "tasks", "--status", "In-Progress", "--priority", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Review PR")
	assert.NotContains(t, out, "Write report")
}

func TestRoot_TasksRejectsUnknownFilter(t *testing.T) {
	ta := newTestApp(t, "")
	_, err := executeRoot(t, ta, "", "tasks", "--status", "archived")
	assert.ErrorIs(t, err, tasklist.ErrInvalidCriteria)
	assert.False(t, Reported(err))
}

func TestRoot_TaskDeleteYes(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t)
	ta.tasks.tasks = sampleTasks()

	out, err := executeRoot(t, ta, "", "task", "delete", "t2", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "t2", ta.tasks.deletedID)
	assert.Contains(t, out, "Task deleted.")
}

func TestRoot_TaskStatusNeedsTwoArgs(t *testing.T) {
	ta := newTestApp(t, "")
	_, err := executeRoot(t, ta, "", "task", "status", "t1")
	assert.Error(t, err)
}

func TestRoot_NotLoggedInIsReported(t *testing.T) {
	ta := newTestApp(t, "")
	out, err := executeRoot(t, ta, "", "dashboard")
	require.Error(t, err)
	assert.True(t, Reported(err))
	assert.Contains(t, out, "not logged in")
}

func TestRoot_ExportToStdout(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t)

	out, err := executeRoot(t, ta, "", "export", "--search", "report")
	require.NoError(t, err)
	assert.Equal(t, "-", ta.export.dest)
	assert.Equal(t, "report", ta.export.criteria.Search)
	assert.Contains(t, out, `{"count":1}`)
}

func TestRoot_NoSubcommandRunsREPL(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t)

	out, err := executeRoot(t, ta, "logout\nexit\n")
	require.NoError(t, err)
	assert.True(t, ta.auth.logoutCalled)
	assert.Contains(t, out, "Welcome to NexaBoard CLI")
	assert.Contains(t, out, "nexa (J jane)> ")
	assert.Contains(t, out, "Logged out.")
	assert.Contains(t, out, "Bye!")
}

func TestRoot_OpenFailure(t *testing.T) {
	root := newRootCommand(testConfig(), func(context.Context, *config.Config) (*App, error) {
		return nil, errors.New("disk full")
	})
	root.SetArgs([]string{"whoami"})
	assert.EqualError(t, root.Execute(), "disk full")
}

func TestRoot_TimeoutFlag(t *testing.T) {
	cfg := testConfig()
	var seen time.Duration
	root := newRootCommand(cfg, func(_ context.Context, c *config.Config) (*App, error) {
		seen = c.RequestTimeout
		return nil, errors.New("stop")
	})
	root.SetArgs([]string{"whoami", "-t", "3"})
	_ = root.Execute()
	assert.Equal(t, 3*time.Second, seen)

	root = newRootCommand(testConfig(), nil)
	root.SetArgs([]string{"version", "--timeout", "0"})
	assert.Error(t, root.Execute())
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand(testConfig(), nil)
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build version:")
}

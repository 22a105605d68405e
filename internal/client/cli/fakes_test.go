package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/services"
	"github.com/dmitrijs2005/nexaboard/internal/client/session"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"github.com/dmitrijs2005/nexaboard/internal/client/tui"
	"github.com/dmitrijs2005/nexaboard/internal/logging"
	"github.com/stretchr/testify/require"
)

var jane = models.User{ID: "u1", Username: "jane", Email: "jane@example.com", Avatar: "J"}

type fakeAuth struct {
	store *session.Store

	loginForm     models.LoginForm
	loginRemember bool
	loginErr      error

	regForm models.RegisterForm
	regErr  error

	profile    *models.User
	profileErr error

	updateForm models.ProfileForm
	updateErr  error

	logoutCalled bool
}

func (f *fakeAuth) Login(ctx context.Context, form models.LoginForm, remember bool) (session.Session, error) {
	f.loginForm, f.loginRemember = form, remember
	if f.loginErr != nil {
		return session.Session{}, f.loginErr
	}
	if err := f.store.Set(ctx, jane, "tok", remember); err != nil {
		return session.Session{}, err
	}
	s, _ := f.store.Get()
	return s, nil
}

func (f *fakeAuth) Register(ctx context.Context, form models.RegisterForm) (session.Session, error) {
	f.regForm = form
	if f.regErr != nil {
		return session.Session{}, f.regErr
	}
	u := models.User{ID: "u2", Username: form.Username, Email: form.Email}
	if err := f.store.Set(ctx, u, "tok", true); err != nil {
		return session.Session{}, err
	}
	s, _ := f.store.Get()
	return s, nil
}

func (f *fakeAuth) Profile(context.Context) (*models.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, form models.ProfileForm) (session.Session, error) {
	f.updateForm = form
	if f.updateErr != nil {
		return session.Session{}, f.updateErr
	}
	u := jane
	u.Username, u.Bio = form.Username, form.Bio
	if err := f.store.UpdateUser(ctx, u, ""); err != nil {
		return session.Session{}, err
	}
	s, _ := f.store.Get()
	return s, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalled = true
	return f.store.Clear(ctx)
}

type fakeTasks struct {
	tasks    []models.Task
	fetchErr error

	created   models.TaskInput
	createErr error

	updatedID string
	patch     models.TaskPatch
	updateErr error

	deletedID string
	deleteErr error
}

func (f *fakeTasks) Fetch(_ context.Context, list *tasklist.List) error {
	if f.fetchErr != nil {
		return f.fetchErr
	}
	list.SetTasks(f.tasks)
	return nil
}

func (f *fakeTasks) Get(_ context.Context, id string) (models.Task, error) {
	if f.fetchErr != nil {
		return models.Task{}, f.fetchErr
	}
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (f *fakeTasks) Create(_ context.Context, in models.TaskInput) (*models.Task, error) {
	f.created = in.WithDefaults()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Task{ID: "new1", Title: f.created.Title, Status: f.created.Status}, nil
}

func (f *fakeTasks) Update(_ context.Context, list *tasklist.List, id string, patch models.TaskPatch) (*models.Task, error) {
	f.updatedID, f.patch = id, patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	t := models.Task{ID: id, Title: "updated"}
	for _, cur := range f.tasks {
		if cur.ID == id {
			t = cur
		}
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	return &t, nil
}

func (f *fakeTasks) ChangeStatus(ctx context.Context, list *tasklist.List, id string, status models.Status) (*models.Task, error) {
	return f.Update(ctx, list, id, models.StatusPatch(status))
}

func (f *fakeTasks) Delete(_ context.Context, list *tasklist.List, id string, confirm services.ConfirmFunc) error {
	t, _ := list.Find(id)
	if !confirm(t) {
		return services.ErrDeleteCancelled
	}
	f.deletedID = id
	return f.deleteErr
}

type fakeDashboard struct {
	d   *services.Dashboard
	err error
}

func (f *fakeDashboard) Load(context.Context) (*services.Dashboard, error) { return f.d, f.err }

type fakeExport struct {
	dest     string
	criteria tasklist.Criteria
	n        int
	err      error
}

func (f *fakeExport) Export(_ context.Context, dest string, c tasklist.Criteria, w io.Writer) (int, error) {
	f.dest, f.criteria = dest, c
	if f.err != nil {
		return 0, f.err
	}
	if dest == "-" {
		_, _ = io.WriteString(w, `{"count":1}`)
	}
	return f.n, nil
}

type fakeProfiles struct {
	mu   sync.Mutex
	user *models.User
	err  error
}

func (f *fakeProfiles) Profile(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.err
}

type testApp struct {
	*App
	auth      *fakeAuth
	tasks     *fakeTasks
	dashboard *fakeDashboard
	export    *fakeExport
	profiles  *fakeProfiles
	buf       *bytes.Buffer
	browsed   bool
	browseErr error
	sessions  tui.Sessions
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	log := logging.NewNop()
	store := session.NewStore(session.NewMemoryPersistence(), time.Hour, log)
	u := jane

	ta := &testApp{
		auth:      &fakeAuth{store: store},
		tasks:     &fakeTasks{},
		dashboard: &fakeDashboard{},
		export:    &fakeExport{},
		profiles:  &fakeProfiles{user: &u},
		buf:       &bytes.Buffer{},
	}
	ta.App = &App{
		log:              log,
		store:            store,
		bootstrapper:     session.NewBootstrapper(store, ta.profiles, log),
		authService:      ta.auth,
		taskService:      ta.tasks,
		dashboardService: ta.dashboard,
		exportService:    ta.export,
		browse: func(_ context.Context, _ tui.Source, sessions tui.Sessions) error {
			ta.browsed = true
			ta.sessions = sessions
			return ta.browseErr
		},
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    ta.buf,
	}
	t.Cleanup(func() { _ = ta.App.Close() })
	return ta
}

func (ta *testApp) login(t *testing.T) {
	t.Helper()
	require.NoError(t, ta.store.Set(context.Background(), jane, "tok", true))
}

func stubPassword(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) (string, error) {
		v := ""
		if i < len(pw) {
			v = pw[i]
		}
		i++
		return v, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

var errUnauthorized = &client.APIError{StatusCode: 401, Message: "token expired"}

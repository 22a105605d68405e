package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	mu sync.Mutex

	LoginRet *client.AuthResult
	LoginErr error

	RegisterRet *client.AuthResult
	RegisterErr error

	ProfileRet  *models.User
	ProfileErr  error
	ProfileGate chan struct{}

	UpdateProfileRet *client.ProfileUpdate
	UpdateProfileErr error

	ListRet []models.Task
	ListErr error

	CreateRet *models.Task
	CreateErr error

	UpdateRet *models.Task
	UpdateErr error

	DeleteErr error

	LoginCalls    int
	RegisterCalls int
	ProfileCalls  int
	DeleteCalls   int

	LastLogin     models.LoginForm
	LastProfile   models.ProfileForm
	LastCreate    models.TaskInput
	LastUpdateID  string
	LastPatch     models.TaskPatch
	LastDeletedID string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, form models.LoginForm) (*client.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLogin = form
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, _ models.RegisterForm) (*client.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Profile(_ context.Context) (*models.User, error) {
	f.mu.Lock()
	f.ProfileCalls++
	gate := f.ProfileGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, form models.ProfileForm) (*client.ProfileUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastProfile = form
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) ListTasks(_ context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Task, len(f.ListRet))
	copy(out, f.ListRet)
	return out, nil
}

func (f *fakeClient) CreateTask(_ context.Context, in models.TaskInput) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreate = in
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdateTask(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdateID = id
	f.LastPatch = patch
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastDeletedID = id
	return f.DeleteErr
}

func (f *fakeClient) profileCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ProfileCalls
}

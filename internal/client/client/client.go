package client

import (
	"context"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

// AuthResult is the response of login and registration.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// ProfileUpdate is the response of PATCH /auth/profile. Token is empty
// unless the server rotated it.
type ProfileUpdate struct {
	User  models.User
	Token string
}

type Client interface {
	Login(ctx context.Context, form models.LoginForm) (*AuthResult, error)
	Register(ctx context.Context, form models.RegisterForm) (*AuthResult, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, form models.ProfileForm) (*ProfileUpdate, error)

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

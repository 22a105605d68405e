package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problemFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want *ValidationError, got %v", err)
	require.ErrorIs(t, err, ErrValidation)

	out := map[string]string{}
	for _, p := range verr.Problems {
		out[p.Field] = p.Message
	}
	return out
}

func TestLoginForm_Validate(t *testing.T) {
	require.NoError(t, LoginForm{Email: "a@b.com", Password: "x"}.Validate())

	got := problemFields(t, LoginForm{Email: "not-an-email"}.Validate())
	assert.Equal(t, "must be a valid email address", got["email"])
	assert.Equal(t, "is required", got["password"])
}

func TestRegisterForm_PasswordMismatch(t *testing.T) {
	f := RegisterForm{Username: "abc", Email: "a@b.com", Password: "secret", ConfirmPassword: "secreT"}

	err := f.Validate()

	got := problemFields(t, err)
	assert.Equal(t, "passwords do not match", got["ConfirmPassword"])
	assert.Contains(t, err.Error(), "passwords do not match")
}

func TestRegisterForm_OK(t *testing.T) {
	f := RegisterForm{Username: "abc", Email: "a@b.com", Password: "secret", ConfirmPassword: "secret"}
	require.NoError(t, f.Validate())
}

func TestProfileForm_Validate(t *testing.T) {
	require.NoError(t, ProfileForm{Username: "abc"}.Validate())
	got := problemFields(t, ProfileForm{Bio: "hi"}.Validate())
	assert.Equal(t, "is required", got["username"])
}

func TestTaskInput_DefaultsAndValidate(t *testing.T) {
	in := TaskInput{Title: "  Ship release  "}.WithDefaults()

	assert.Equal(t, "Ship release", in.Title)
	assert.Equal(t, StatusPending, in.Status)
	assert.Equal(t, PriorityMedium, in.Priority)
	require.NoError(t, in.Validate())

	got := problemFields(t, TaskInput{Status: "done", Priority: "urgent"}.Validate())
	assert.Equal(t, "is required", got["title"])
	assert.Contains(t, got["status"], "pending")
	assert.Contains(t, got["priority"], "medium")
}

func TestTaskPatch_Validate(t *testing.T) {
	got := problemFields(t, TaskPatch{}.Validate())
	assert.Equal(t, "nothing to update", got[""])

	require.NoError(t, StatusPatch(StatusCompleted).Validate())

	bad := Status("archived")
	empty := "  "
	got = problemFields(t, TaskPatch{Status: &bad, Title: &empty}.Validate())
	assert.Contains(t, got, "status")
	assert.Contains(t, got, "title")
}

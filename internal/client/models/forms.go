package models

import "strings"

// LoginForm is the body of POST /auth/login.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (f LoginForm) Validate() error { return validateStruct(f) }

// RegisterForm is the registration form. ConfirmPassword never leaves the
// client.
type RegisterForm struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

func (f RegisterForm) Validate() error { return validateStruct(f) }

// ProfileForm is the body of PATCH /auth/profile. An empty password keeps
// the current one.
type ProfileForm struct {
	Username string `json:"username" validate:"required"`
	Bio      string `json:"bio"`
	Password string `json:"password,omitempty"`
}

func (f ProfileForm) Validate() error { return validateStruct(f) }

// TaskInput is the body of POST /tasks.
type TaskInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Status      Status   `json:"status" validate:"task_status"`
	Priority    Priority `json:"priority" validate:"task_priority"`
	DueDate     *Date    `json:"dueDate,omitempty"`
}

// WithDefaults fills the create-form defaults: pending and medium.
func (in TaskInput) WithDefaults() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	return in
}

func (in TaskInput) Validate() error { return validateStruct(in) }

// TaskPatch is a partial PUT /tasks/:id body. Nil fields are not sent.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil && p.DueDate == nil
}

func (p TaskPatch) Validate() error {
	if p.Empty() {
		return newValidationError("", "nothing to update")
	}
	out := &ValidationError{}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		out.Problems = append(out.Problems, FieldProblem{Field: "title", Message: "is required"})
	}
	if p.Status != nil && !p.Status.Valid() {
		out.Problems = append(out.Problems, FieldProblem{Field: "status", Message: "must be one of pending, in-progress, completed"})
	}
	if p.Priority != nil && !p.Priority.Valid() {
		out.Problems = append(out.Problems, FieldProblem{Field: "priority", Message: "must be one of low, medium, high"})
	}
	if len(out.Problems) > 0 {
		return out
	}
	return nil
}

// StatusPatch is the quick status-change body.
func StatusPatch(s Status) TaskPatch {
	return TaskPatch{Status: &s}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
)

var (
	ErrDeleteCancelled = errors.New("delete cancelled")
	ErrTaskNotFound    = errors.New("task not found")
)

// ConfirmFunc asks the user to approve a destructive action.
type ConfirmFunc func(task models.Task) bool

// TaskService relays task intents to the API and keeps a view's list in
// step with the server. Nothing is retried and a failed call never changes
// the list.
type TaskService interface {
	Fetch(ctx context.Context, list *tasklist.List) error
	Get(ctx context.Context, id string) (models.Task, error)
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, list *tasklist.List, id string, patch models.TaskPatch) (*models.Task, error)
	ChangeStatus(ctx context.Context, list *tasklist.List, id string, status models.Status) (*models.Task, error)
	Delete(ctx context.Context, list *tasklist.List, id string, confirm ConfirmFunc) error
}

type taskService struct {
	client client.Client
}

func NewTaskService(client client.Client) TaskService {
	return &taskService{client: client}
}

func (s *taskService) Fetch(ctx context.Context, list *tasklist.List) error {
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("fetch tasks: %w", err)
	}
	list.SetTasks(tasks)
	return nil
}

// Get looks the task up in a fresh listing; the API has no single-task
// read.
func (s *taskService) Get(ctx context.Context, id string) (models.Task, error) {
	list := tasklist.NewList()
	if err := s.Fetch(ctx, list); err != nil {
		return models.Task{}, err
	}
	t, ok := list.Find(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// Create sends the task. The caller's list is left alone; the next view
// refetches.
func (s *taskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t, err := s.client.CreateTask(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *taskService) Update(ctx context.Context, list *tasklist.List, id string, patch models.TaskPatch) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	t, err := s.client.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	if list != nil {
		if t.ID == "" {
			t.ID = id
		}
		list.Replace(*t)
	}
	return t, nil
}

func (s *taskService) ChangeStatus(ctx context.Context, list *tasklist.List, id string, status models.Status) (*models.Task, error) {
	return s.Update(ctx, list, id, models.StatusPatch(status))
}

// Delete asks confirm first; a refusal makes no request and returns
// ErrDeleteCancelled.
func (s *taskService) Delete(ctx context.Context, list *tasklist.List, id string, confirm ConfirmFunc) error {
	task := models.Task{ID: id}
	if list != nil {
		if t, ok := list.Find(id); ok {
			task = t
		}
	}

	if confirm == nil || !confirm(task) {
		return ErrDeleteCancelled
	}

	if err := s.client.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	if list != nil {
		list.Remove(id)
	}
	return nil
}

package tasklist

import (
	"slices"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

// List is one view's copy of the fetched tasks plus its criteria. It is
// not safe for concurrent use; each view owns its own.
type List struct {
	tasks    []models.Task
	criteria Criteria
}

func NewList() *List {
	return &List{criteria: DefaultCriteria()}
}

// SetTasks replaces the fetched collection.
func (l *List) SetTasks(tasks []models.Task) {
	l.tasks = slices.Clone(tasks)
}

// Tasks returns the full collection, ignoring criteria.
func (l *List) Tasks() []models.Task {
	return slices.Clone(l.tasks)
}

func (l *List) Len() int { return len(l.tasks) }

func (l *List) Criteria() Criteria { return l.criteria }

func (l *List) SetCriteria(c Criteria) { l.criteria = c }

func (l *List) SetSearch(term string) { l.criteria.Search = term }

func (l *List) SetStatus(status string) error {
	v, err := ParseStatusFilter(status)
	if err != nil {
		return err
	}
	l.criteria.Status = v
	return nil
}

func (l *List) SetPriority(priority string) error {
	v, err := ParsePriorityFilter(priority)
	if err != nil {
		return err
	}
	l.criteria.Priority = v
	return nil
}

// Visible applies the current criteria. It is recomputed on every call.
func (l *List) Visible() []models.Task {
	return Filter(l.tasks, l.criteria)
}

// Find returns the task with id.
func (l *List) Find(id string) (models.Task, bool) {
	i := l.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return l.tasks[i], true
}

// Replace swaps the entry with t.ID for t in place. It reports false when
// no entry matches.
func (l *List) Replace(t models.Task) bool {
	i := l.index(t.ID)
	if i < 0 {
		return false
	}
	l.tasks[i] = t
	return true
}

// Remove drops the entry with id.
func (l *List) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return true
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.tasks, func(t models.Task) bool { return t.ID == id })
}

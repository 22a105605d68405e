// Package tasklist derives the visible part of a fetched task list from
// search and filter criteria.
package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

// All disables a status or priority filter.
const All = "all"

var ErrInvalidCriteria = errors.New("invalid filter")

// Criteria is page-local and never persisted.
type Criteria struct {
	Search   string
	Status   string
	Priority string
}

func DefaultCriteria() Criteria {
	return Criteria{Status: All, Priority: All}
}

// Filter returns the tasks matching every criterion, in their original
// order. The search term is matched case-insensitively against title or
// description; only an empty term matches everything. An empty status or
// priority behaves like All.
func Filter(tasks []models.Task, c Criteria) []models.Task {
	term := strings.ToLower(c.Search)

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesSearch(t, term) {
			continue
		}
		if c.Status != "" && c.Status != All && string(t.Status) != c.Status {
			continue
		}
		if c.Priority != "" && c.Priority != All && string(t.EffectivePriority()) != c.Priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t models.Task, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// ParseStatusFilter accepts a status or "all" (case-insensitive). Empty
// input means all.
func ParseStatusFilter(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == All {
		return All, nil
	}
	if !models.Status(v).Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidCriteria, s)
	}
	return v, nil
}

// ParsePriorityFilter accepts a priority or "all" (case-insensitive).
func ParsePriorityFilter(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == All {
		return All, nil
	}
	if !models.Priority(v).Valid() {
		return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidCriteria, s)
	}
	return v, nil
}

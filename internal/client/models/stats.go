package models

// Stats summarises a task list for the dashboard.
type Stats struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

// ComputeStats counts tasks by status. Tasks with an unknown status only
// contribute to Total.
func ComputeStats(tasks []Task, today Date) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			s.Completed++
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		}
		if t.Overdue(today) {
			s.Overdue++
		}
	}
	return s
}

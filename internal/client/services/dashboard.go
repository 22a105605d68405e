package services

import (
	"context"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the landing view: who is signed in and how their tasks
// stand.
type Dashboard struct {
	User  models.User
	Stats models.Stats
	Tasks []models.Task
}

type DashboardService interface {
	Load(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	auth  AuthService
	tasks TaskService
	today func() models.Date
}

func NewDashboardService(auth AuthService, tasks TaskService) DashboardService {
	return &dashboardService{auth: auth, tasks: tasks, today: models.Today}
}

// Load fetches profile and tasks concurrently. Either failure fails the
// whole load.
func (s *dashboardService) Load(ctx context.Context) (*Dashboard, error) {
	var (
		user  *models.User
		tasks []models.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.auth.Profile(gctx)
		user = u
		return err
	})
	g.Go(func() error {
		list := tasklist.NewList()
		if err := s.tasks.Fetch(gctx, list); err != nil {
			return err
		}
		tasks = list.Tasks()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{User: *user, Stats: models.ComputeStats(tasks, s.today()), Tasks: tasks}, nil
}

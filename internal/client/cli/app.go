package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/config"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/render"
	"github.com/dmitrijs2005/nexaboard/internal/client/services"
	"github.com/dmitrijs2005/nexaboard/internal/client/session"
	"github.com/dmitrijs2005/nexaboard/internal/client/storage"
	"github.com/dmitrijs2005/nexaboard/internal/client/tui"
	"github.com/dmitrijs2005/nexaboard/internal/logging"
)

// refreshGrace bounds how long Close waits for a background profile
// refresh.
const refreshGrace = 2 * time.Second

// cardWidth is the width of task and profile cards outside the TUI.
const cardWidth = 72

type App struct {
	config *config.Config
	log    logging.Logger

	store        *session.Store
	bootstrapper *session.Bootstrapper

	authService      services.AuthService
	taskService      services.TaskService
	dashboardService services.DashboardService
	exportService    services.ExportService

	// browse runs the full-screen task browser.
	browse func(ctx context.Context, src tui.Source, sessions tui.Sessions) error

	reader *bufio.Reader
	out    io.Writer

	startOnce sync.Once
	startErr  error
	refresh   *session.Refresh

	closers []io.Closer
}

// NewApp opens the session database and wires the services. An empty
// DataFile keeps the session in memory for the life of the process. Close
// releases what it opened.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, logCloser, err := logging.New(logging.Options{File: c.LogFile, Level: c.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}

	var persist session.Persistence
	closers := []io.Closer{logCloser}
	if c.DataFile == "" {
		log.Info(ctx, "no data file configured, session kept in memory")
		persist = session.NewMemoryPersistence()
	} else {
		db, err := client.InitDatabase(ctx, c.DataFile)
		if err != nil {
			log.Error(ctx, "error initializing database", "file", c.DataFile, "err", err)
			_ = logCloser.Close()
			return nil, err
		}
		persist = session.NewSQLPersistence(db)
		closers = []io.Closer{db, logCloser}
	}

	store := session.NewStore(persist, c.RememberFor, log)
	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, store, log)

	as := services.NewAuthService(api, store)
	ts := services.NewTaskService(api)

	s3cfg := storage.S3Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}
	uploader := func(ctx context.Context) (services.ObjectUploader, error) {
		return storage.NewS3Uploader(ctx, s3cfg)
	}

	return &App{
		config:           c,
		log:              log,
		store:            store,
		bootstrapper:     session.NewBootstrapper(store, api, log),
		authService:      as,
		taskService:      ts,
		dashboardService: services.NewDashboardService(as, ts),
		exportService:    services.NewExportService(ts, uploader),
		browse:           tui.Run,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
		closers:          closers,
	}, nil
}

// Start restores the persisted session. It runs once per App; later calls
// return the first result.
func (a *App) Start(ctx context.Context) error {
	a.startOnce.Do(func() {
		state, refresh, err := a.bootstrapper.Run(ctx)
		if err != nil {
			a.startErr = fmt.Errorf("session restore error: %w", err)
			return
		}
		a.refresh = refresh
		a.log.Debug(ctx, "session bootstrapped", "state", state)
	})
	return a.startErr
}

// Close waits briefly for a pending session refresh, then releases the
// database and the log file.
func (a *App) Close() error {
	if a.refresh != nil {
		ctx, cancel := context.WithTimeout(context.Background(), refreshGrace)
		state, err := a.refresh.Wait(ctx)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			a.log.Warn(context.Background(), "session refresh failed", "state", state, "err", err)
		}
	}

	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.Get()
	return ok
}

func (a *App) currentUser() (models.User, bool) {
	s, ok := a.store.Get()
	if !ok {
		return models.User{}, false
	}
	return s.User, true
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail reports err inline. A rejected token also ends the local session so
// the next prompt asks for a login.
func (a *App) fail(ctx context.Context, err error) error {
	return a.failWith(ctx, err, errSessionExpired)
}

// failWith is fail with shown printed in place of a rejection that ended
// the session.
func (a *App) failWith(ctx context.Context, err, shown error) error {
	if errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn() {
		if cerr := a.store.Clear(context.WithoutCancel(ctx)); cerr != nil {
			a.log.Error(ctx, "error clearing session", "err", cerr)
		}
		a.println(render.Error(shown))
		return reportedError{err}
	}
	a.println(render.Error(err))
	return reportedError{err}
}

// requireLogin prints a hint and returns false when nobody is signed in.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	a.println(render.Error(errNotLoggedIn))
	return false
}

var (
	errNotLoggedIn    = errors.New("not logged in, use login or register first")
	errSessionExpired = errors.New("session expired, please log in again")
	errBadCredentials = errors.New("invalid email or password, you have been logged out")
)

// reportedError marks an error that was already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var re reportedError
	return errors.As(err, &re)
}

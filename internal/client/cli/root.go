package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/buildinfo"
	"github.com/dmitrijs2005/nexaboard/internal/client/config"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"github.com/spf13/cobra"
)

// appFactory opens an App for one command invocation.
type appFactory func(ctx context.Context, c *config.Config) (*App, error)

type rootRunner struct {
	cfg  *config.Config
	open appFactory
}

// NewRootCommand builds the command tree. Without a subcommand it starts
// the interactive REPL.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	return newRootCommand(cfg, NewApp)
}

func newRootCommand(cfg *config.Config, open appFactory) *cobra.Command {
	r := &rootRunner{cfg: cfg, open: open}

	cmd := &cobra.Command{
		Use:           "nexaboard",
		Short:         "NexaBoard task manager client",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive shell
  nexaboard

  # Scriptable commands
  nexaboard login
  nexaboard tasks --status pending --search report
  nexaboard task done 64f1c2
  nexaboard export s3://backups/tasks.json
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *App) error {
				a.Run(ctx)
				return nil
			})
		},
	}

	// Already applied by config.Load; declared so cobra accepts them.
	timeoutSec := int(cfg.RequestTimeout / time.Second)
	var configFile string
	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfg.APIBaseURL, "api", "a", cfg.APIBaseURL, "base URL of the REST API")
	pf.StringVarP(&cfg.DataFile, "data", "d", cfg.DataFile, "path of the local session database (empty keeps the session in memory)")
	pf.IntVarP(&timeoutSec, "timeout", "t", timeoutSec, "request timeout (in seconds)")
	pf.StringVarP(&configFile, "config", "c", "", "path to a JSON config file")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("timeout") {
			if timeoutSec <= 0 {
				return fmt.Errorf("timeout must be positive, got %d", timeoutSec)
			}
			cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second
		}
		return nil
	}

	cmd.AddCommand(
		r.newLoginCmd(),
		r.newRegisterCmd(),
		r.newLogoutCmd(),
		r.newWhoAmICmd(),
		r.newDashboardCmd(),
		r.newTasksCmd(),
		r.newTaskCmd(),
		r.newProfileCmd(),
		r.newBrowseCmd(),
		r.newExportCmd(),
		newVersionCmd(),
	)
	return cmd
}

// withApp opens the App, restores the session and runs fn with the
// command's streams.
func (r *rootRunner) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := r.open(ctx, r.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	a.out = cmd.OutOrStdout()
	a.reader = bufio.NewReader(cmd.InOrStdin())

	if err := a.Start(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

// simple wraps an App method that takes no arguments.
func (r *rootRunner) simple(use, short string, fn func(a *App, ctx context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *App) error {
				return fn(a, ctx)
			})
		},
	}
}

func (r *rootRunner) newLoginCmd() *cobra.Command {
	return r.simple("login", "Sign in", (*App).Login)
}

func (r *rootRunner) newRegisterCmd() *cobra.Command {
	return r.simple("register", "Create an account and sign in", (*App).Register)
}

func (r *rootRunner) newLogoutCmd() *cobra.Command {
	return r.simple("logout", "Sign out and forget the stored session", (*App).Logout)
}

func (r *rootRunner) newWhoAmICmd() *cobra.Command {
	return r.simple("whoami", "Show the signed-in user", (*App).WhoAmI)
}

func (r *rootRunner) newDashboardCmd() *cobra.Command {
	return r.simple("dashboard", "Show task statistics and recent tasks", (*App).Dashboard)
}

func (r *rootRunner) newBrowseCmd() *cobra.Command {
	return r.simple("browse", "Open the interactive task browser", (*App).Browse)
}

// criteriaFlags registers --search, --status and --priority on cmd and
// returns a parser for them.
func criteriaFlags(cmd *cobra.Command) func() (tasklist.Criteria, error) {
	var search, status, priority string
	cmd.Flags().StringVarP(&search, "search", "s", "", "match title or description (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", tasklist.All, "pending, in-progress, completed or all")
	cmd.Flags().StringVar(&priority, "priority", tasklist.All, "low, medium, high or all")

	return func() (tasklist.Criteria, error) {
		c := tasklist.Criteria{Search: search}
		var err error
		if c.Status, err = tasklist.ParseStatusFilter(status); err != nil {
			return c, err
		}
		if c.Priority, err = tasklist.ParsePriorityFilter(priority); err != nil {
			return c, err
		}
		return c, nil
	}
}

func (r *rootRunner) newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
	}
	criteria := criteriaFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := criteria()
		if err != nil {
			return err
		}
		return r.withApp(cmd, func(ctx context.Context, a *App) error {
			return a.List(ctx, c)
		})
	}
	return cmd
}

func (r *rootRunner) newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task commands",
	}

	withID := func(use, short string, fn func(a *App, ctx context.Context, id string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.withApp(cmd, func(ctx context.Context, a *App) error {
					return fn(a, ctx, args[0])
				})
			},
		}
	}

	status := &cobra.Command{
		Use:       "status <id> <pending|in-progress|completed>",
		Short:     "Change a task's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"pending", "in-progress", "completed"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *App) error {
				return a.SetStatus(ctx, args[0], args[1])
			})
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Delete(ctx, args[0], yes)
			})
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(
		r.simple("add", "Create a task", (*App).Add),
		withID("show", "Show a task", (*App).Show),
		withID("edit", "Edit a task", (*App).Edit),
		withID("done", "Mark a task completed", (*App).Done),
		status,
		del,
	)
	return cmd
}

func (r *rootRunner) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
	}
	cmd.AddCommand(
		r.simple("show", "Show your profile", (*App).ProfileShow),
		r.simple("edit", "Edit username, bio or password", (*App).ProfileEdit),
	)
	return cmd
}

func (r *rootRunner) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [dest]",
		Short: "Export tasks as JSON to stdout, a file or s3://bucket/key",
		Args:  cobra.MaximumNArgs(1),
	}
	criteria := criteriaFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := criteria()
		if err != nil {
			return err
		}
		dest := "-"
		if len(args) == 1 {
			dest = args[0]
		}
		return r.withApp(cmd, func(ctx context.Context, a *App) error {
			return a.Export(ctx, dest, c)
		})
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
			return nil
		},
	}
}

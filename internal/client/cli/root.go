package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/coursemanager/internal/buildinfo"
	"github.com/dmitrijs2005/coursemanager/internal/client/config"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
	"github.com/spf13/cobra"
)

// exitFn is a test seam for os.Exit.
var exitFn = os.Exit

// NewRootCommand builds the coursemgr command tree. Without a subcommand it
// starts the interactive REPL.
func NewRootCommand() *cobra.Command {
	var flags *config.Flags

	root := &cobra.Command{
		Use:   "coursemgr",
		Short: "Local course and topic manager",
		Long: `coursemgr keeps courses, their topics, notes and images in a local
SQLite database, with per-user accounts and an administrator.

Run without arguments to start the interactive shell.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *App) error {
				// an interrupt cannot unblock the terminal read, so pending
				// saves are flushed here before leaving
				stop := context.AfterFunc(ctx, func() {
					_ = app.Close(context.Background())
					exitFn(130)
				})
				defer stop()

				app.Run(ctx)
				return nil
			})
		},
	}
	flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newExportCommand(&flags),
		newImportCommand(&flags),
		newVersionCommand(),
	)
	return root
}

func newExportCommand(flags **config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all users and courses to a JSON backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *flags, func(ctx context.Context, app *App) error {
				return app.export(ctx, args)
			})
		},
	}
}

func newImportCommand(flags **config.Flags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all users and courses with the content of a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *flags, func(ctx context.Context, app *App) error {
				if yes {
					snap, err := app.importer.ImportFile(ctx, args[0])
					if err != nil {
						return err
					}
					app.printf("Imported %d users and %d courses.\n", len(snap.Users), len(snap.Courses))
					return nil
				}
				return app.importBackup(ctx, args)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// withApp loads the configuration, builds the App on the command's streams,
// runs fn and closes the App again.
func withApp(cmd *cobra.Command, flags *config.Flags, fn func(ctx context.Context, app *App) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	app, err := NewApp(ctx, cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() {
		if cerr := app.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, app)
}

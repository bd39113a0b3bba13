// Package cmd defines the authflow command line.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/authflow/internal/buildinfo"
	"github.com/dmitrijs2005/authflow/internal/client/cli"
	"github.com/dmitrijs2005/authflow/internal/client/config"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// Streams are the process streams the commands use.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// StdStreams returns the streams of the running process.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

// NewRootCmd builds the authflow command tree. Running it without a
// subcommand starts the shell.
func NewRootCmd(s Streams) *cobra.Command {
	var flags config.Flags

	root := &cobra.Command{
		Use:   "authflow",
		Short: "authflow is a terminal client for the account service",
		Long: `A terminal client for the account service: sign up, log in, verify
your email and reset a forgotten password.`,
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.ErrOut)
	flags.Register(root.PersistentFlags())

	shell := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		RunE: withApp(&flags, s, func(ctx context.Context, app *cli.App) error {
			return app.Shell(ctx)
		}),
	}
	root.RunE = shell.RunE

	root.AddCommand(
		shell,
		&cobra.Command{
			Use:   "status",
			Short: "Check the stored session with the backend",
			RunE: withApp(&flags, s, func(ctx context.Context, app *cli.App) error {
				return app.Status(ctx)
			}),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "End the stored session",
			RunE: withApp(&flags, s, func(ctx context.Context, app *cli.App) error {
				return app.Logout(ctx)
			}),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset a forgotten password",
			RunE: withApp(&flags, s, func(ctx context.Context, app *cli.App) error {
				return app.Reset(ctx)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)
	return root
}

// newApp is a test seam for building the application.
var newApp = cli.NewApp

// withApp loads the configuration, builds the application and runs fn
// with it.
func withApp(flags *config.Flags, s Streams, fn func(ctx context.Context, app *cli.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := flags.Load(cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := logging.NewTextLogger(s.ErrOut, cfg.LogLevel)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, err := newApp(ctx, cfg, s.In, s.Out, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Warn(ctx, "close failed", "error", err)
			}
		}()
		return fn(ctx, app)
	}
}

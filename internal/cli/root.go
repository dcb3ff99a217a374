package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"invoice-bookkeeping-backend/internal/app"
	"invoice-bookkeeping-backend/internal/config"
	"invoice-bookkeeping-backend/internal/logging"
	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/services/invoicing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	loadConfig  func() (*config.Config, error)
	serviceOpts []invoicing.Option
	logLevel    string
}

func newRootCmd(loadConfig func() (*config.Config, error), serviceOpts ...invoicing.Option) *cobra.Command {
	opts := &rootOptions{loadConfig: loadConfig, serviceOpts: serviceOpts}

	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Manage invoices from the terminal",
		Long:          "invoicectl adds, lists, edits, deletes and imports invoices in the configured store, and can run the HTTP API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for command output (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newNextNumberCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command bound to a fixed configuration.
func NewRootCmdForTest(cfg *config.Config, serviceOpts ...invoicing.Option) *cobra.Command {
	return newRootCmd(func() (*config.Config, error) {
		c := *cfg
		return &c, nil
	}, serviceOpts...)
}

func Execute() error {
	return execute(newRootCmd(config.Load), os.Stderr)
}

// execute runs cmd and prints its error to stderr unless the command
// already reported it.
func execute(cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.Execute()
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(stderr, variantStyles[models.NotificationError].Render("Error:"), err)
	}
	return err
}

// open loads the configuration and wires the service for one command run.
// Logs go to stderr in console format unless LOG_FILE_PATH is set.
func (o *rootOptions) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	var (
		log    zerolog.Logger
		closer io.Closer
	)
	if cfg.LogFilePath != "" {
		log, closer, err = logging.New(o.logLevel, cfg.LogFilePath)
	} else {
		log, err = logging.NewConsole(o.logLevel, cmd.ErrOrStderr())
	}
	if err != nil {
		return nil, err
	}
	return app.New(cfg, log, closer, o.serviceOpts...)
}

// withApp runs fn against a freshly opened app and closes it afterwards.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(*app.App) error) error {
	a, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.Log.Warn().Err(cerr).Msg("closing resources")
		}
	}()
	return fn(a)
}

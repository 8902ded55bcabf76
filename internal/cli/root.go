// Package cli implements petadmin, the operator command line for the pet
// inventory.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/config"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/logger"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/storeclient"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/syncclient"
)

const version = "0.1.0"

// app is what every subcommand runs against. It is built once per
// invocation from PETADMIN_* configuration.
type app struct {
	cfg   *config.ClientConfig
	log   *zap.Logger
	store *storeclient.Client
	sync  *syncclient.Client
	out   io.Writer
}

func newApp(out io.Writer) (*app, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.NewNamedLevel(cfg.AppEnv, "petadmin", cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := storeclient.New(storeclient.Options{
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
		SessionToken: cfg.SessionToken,
		CookieName:   cfg.CookieName,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}

	notifier := syncclient.NewNotifier(cfg.NotifyDelay, func(n syncclient.Notification, active bool) {
		if active && n.Kind == syncclient.KindSuccess {
			fmt.Fprintln(out, n.Message)
		}
	})

	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		sync:  syncclient.New(store, syncclient.WithLogger(log), syncclient.WithNotifier(notifier)),
		out:   out,
	}, nil
}

func (a *app) close() {
	a.sync.Notifier().Stop()
	_ = a.log.Sync()
}

// NewRootCommand builds the petadmin command tree.
func NewRootCommand() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:     "petadmin",
		Short:   "Manage the pet inventory",
		Long:    `petadmin lists, adds, edits, removes and exports pet records held by the inventory service`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			a = built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
		SilenceUsage: true,
	}

	get := func() *app { return a }
	root.AddCommand(
		newListCommand(get),
		newAddCommand(get),
		newEditCommand(get),
		newDeleteCommand(get),
		newExportCommand(get),
		newStatsCommand(get),
		newWatchCommand(get),
		newSessionCommand(get),
	)
	return root
}

// Execute runs petadmin with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

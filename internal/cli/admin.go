package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/auth"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
)

func newStatsCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			stats, err := a.store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Total: %d\n", stats.Total)
			for _, s := range petDomain.Statuses {
				fmt.Fprintf(a.out, "%-10s %d\n", s, stats.ByStatus[string(s)])
			}
			return nil
		},
	}
}

func newSessionCommand(get func() *app) *cobra.Command {
	var (
		operator string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Mint a session token for PETADMIN_SESSION_TOKEN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			token, err := auth.NewSessionManager(a.cfg.JWTSecret, ttl).Issue(operator)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "operator name recorded in the session")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "session lifetime")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}

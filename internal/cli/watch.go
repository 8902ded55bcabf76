package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/events"
)

func newWatchCommand(get func() *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow pet events and reload the inventory on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if len(a.cfg.KafkaConfig.Brokers) == 0 {
				return errors.New("watch needs PETADMIN_KAFKA_BROKERS")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := a.sync.Start(ctx); err != nil {
				return err
			}
			printRecords(a.out, a.sync.Search(query), a.sync.DefaultImages())

			consumer := events.NewPetEventConsumer(a.cfg.KafkaConfig.Brokers, a.cfg.KafkaConfig.GroupID, a.sync, a.log)
			defer func() { _ = consumer.Close() }()
			consumer.OnEvent(func(evt events.PetRecordEvent, eventType string) {
				fmt.Fprintf(a.out, "\n%s %s\n", eventType, evt.PetID)
				printRecords(a.out, a.sync.Search(query), a.sync.DefaultImages())
			})

			a.log.Info("watching pet events",
				zap.Strings("brokers", a.cfg.KafkaConfig.Brokers),
				zap.String("group_id", a.cfg.KafkaConfig.GroupID),
			)
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show records matching this search")
	return cmd
}

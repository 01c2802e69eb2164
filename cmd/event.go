package cmd

import (
	"context"
	"time"

	"github.com/frahmantamala/employee-board/internal/core/events"
	"github.com/frahmantamala/employee-board/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish board events on a local bus to check the audit handler`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a board event to the event bus for testing and debugging`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var (
	eventResource string
	eventActor    string
)

func publishTestEvent(eventType string) {
	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)
	events.SubscribeAudit(eventBus, logger)

	event := events.NewBoardEvent(eventType, eventResource, eventActor, map[string]interface{}{
		"source": "cli-command",
	})
	logger.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	if err := eventBus.PublishSync(context.Background(), event); err != nil {
		logger.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	logger.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventResource, "resource", "test", "Resource id carried by the event")
	publishEventCmd.Flags().StringVar(&eventActor, "actor", "", "Employee id of the actor; empty for anonymous")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}

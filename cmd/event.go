package cmd

import (
	"context"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
	"github.com/frahmantamala/asset-lifecycle/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events, monitor event bus, inspect handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a sample return notice event",
	Long:  `Publish a sample return-scheduled event to the event bus for testing and debugging`,
	Run: func(cmd *cobra.Command, args []string) {
		publishSampleEvent()
	},
}

func publishSampleEvent() {
	appLogger := logger.L()

	eventBus := events.NewEventBus(appLogger)

	eventBus.Subscribe(events.TypeReturnScheduled, func(ctx context.Context, event events.Event) error {
		appLogger.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	sample := events.NewReturnScheduled(1)
	sample.EmployeeName = "Sample Employee"
	sample.EmployeeEmail = "sample@mail.com"
	sample.ResignationDate = time.Now()
	sample.ReturnDueDate = time.Now().AddDate(0, 0, 7)
	sample.Assets = []events.ReturnAsset{
		{
			AssetTag:      "LT-0001",
			DeviceType:    "laptop",
			Brand:         "Lenovo",
			Model:         "ThinkPad T14",
			Condition:     "good",
			ReturnDueDate: sample.ReturnDueDate.Format("2006-01-02"),
		},
	}

	appLogger.Info("publishing sample event", "event_type", sample.EventType(), "event_id", sample.EventID())

	ctx := context.Background()
	if err := eventBus.Publish(ctx, sample); err != nil {
		appLogger.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	appLogger.Info("sample event published successfully")
}

func init() {
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}

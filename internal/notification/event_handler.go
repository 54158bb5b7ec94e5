package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
)

// EventHandler bridges the event bus to the mailer.
type EventHandler struct {
	mailer Mailer
	logger *slog.Logger
}

func NewEventHandler(mailer Mailer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		mailer: mailer,
		logger: logger,
	}
}

// RegisterHandlers subscribes the notification side to recovery events.
func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.TypeReturnScheduled, h.handleReturnScheduled)
}

func (h *EventHandler) handleReturnScheduled(ctx context.Context, event events.Event) error {
	scheduled, ok := event.(events.ReturnScheduled)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", events.TypeReturnScheduled)
	}

	h.logger.Info("handling return scheduled event",
		"event_id", scheduled.EventID(),
		"employee_id", scheduled.EmployeeID)

	return h.mailer.SendReturnNotice(scheduled)
}

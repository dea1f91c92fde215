// Package notify holds notifier adapters that do not talk to an external
// provider themselves: a structured-log sink and an asynchronous dispatcher
// that wraps any other notifier.
package notify

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier writes every notification to the log. Used when no mail
// provider is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log-notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, msg ports.Notification) error {
	n.logger.InfoContext(ctx, "Item removed from route",
		"kind", msg.Kind.String(),
		"recipient", msg.Contact.Name(),
		"item_id", msg.ItemID.String(),
		"item_name", msg.ItemName,
		"route_id", msg.RouteID.String(),
		"reason", msg.Reason,
	)
	return nil
}

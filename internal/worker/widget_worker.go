// Package worker consumes widget sync messages and runs the snapshot
// pipeline off-process, for deployments where the shared region is owned
// by a dedicated process instead of the API server.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"dayboard/internal/amqp"
	"dayboard/internal/snapshot"
	"dayboard/internal/trigger"
)

// WidgetWorker handles widget sync messages from AMQP.
type WidgetWorker struct {
	trigger *trigger.Trigger
}

func NewWidgetWorker(trig *trigger.Trigger) *WidgetWorker {
	return &WidgetWorker{trigger: trig}
}

// HandleSyncMessage processes a single widget sync message. An unknown
// kind is rejected permanently (the broker drops it instead of
// redelivering); a transient pipeline problem is absorbed by the trigger
// itself, so handled messages are never requeued.
func (w *WidgetWorker) HandleSyncMessage(ctx context.Context, msg *amqp.WidgetSyncMessage) error {
	kind, err := snapshot.ParseKind(msg.Kind)
	if err != nil {
		return fmt.Errorf("reject sync message: %w: %w", amqp.ErrUnprocessable, err)
	}

	slog.InfoContext(ctx, "Processing widget sync message",
		"widget_kind", kind.String(),
		"reason", msg.Reason)

	w.trigger.Sync(ctx, kind)
	return nil
}

// Run consumes sync messages until the context is cancelled.
func (w *WidgetWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeWidgetSync(ctx, func(msg *amqp.WidgetSyncMessage) error {
		return w.HandleSyncMessage(ctx, msg)
	})
}

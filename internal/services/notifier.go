package services

import (
	"context"
	"log/slog"

	"dayboard/internal/amqp"
	"dayboard/internal/snapshot"
	"dayboard/internal/trigger"
)

// WidgetNotifier is called by the CRUD services after a successful
// mutation. Implementations must never fail the mutation.
type WidgetNotifier interface {
	WidgetChanged(ctx context.Context, kind snapshot.Kind, reason string)
}

// Dispatcher fans a mutation notification into the snapshot pipeline.
// The in-process trigger always runs; when an AMQP client is configured
// the mutation is also published so a dedicated worker can refresh
// widgets on deployments where the bridge lives off-process.
type Dispatcher struct {
	trigger    *trigger.Trigger
	amqpClient *amqp.Client
}

func NewDispatcher(trig *trigger.Trigger, amqpClient *amqp.Client) *Dispatcher {
	return &Dispatcher{trigger: trig, amqpClient: amqpClient}
}

// WidgetChanged refreshes the widget snapshot for kind. The pipeline runs
// on a context detached from the request so a slow bridge never delays
// the mutation response.
func (d *Dispatcher) WidgetChanged(ctx context.Context, kind snapshot.Kind, reason string) {
	detached := context.WithoutCancel(ctx)

	if d.trigger != nil {
		go d.trigger.Sync(detached, kind)
	}

	if d.amqpClient != nil {
		if err := d.amqpClient.PublishWidgetSync(ctx, kind.String(), reason); err != nil {
			slog.ErrorContext(ctx, "Failed to publish widget sync message",
				"widget_kind", kind.String(),
				"reason", reason,
				"error", err)
			// Don't fail the request - the in-process sync already ran
		}
	}
}

// Package trigger exposes the pipeline entry points the CRUD surfaces
// call after a mutation. A trigger never returns an error: the widget
// refresh is best effort and must not fail the mutation that caused it.
package trigger

import (
	"context"
	"log/slog"
	"time"

	"dayboard/internal/snapshot"
)

// Publisher is the dual-channel snapshot writer (sink.Broadcaster).
type Publisher interface {
	Publish(ctx context.Context, kind snapshot.Kind, payload []byte) error
}

// FlagSource gates widget kinds on the app's feature flags.
type FlagSource interface {
	WidgetEnabled(kind snapshot.Kind) bool
}

// Trigger drives aggregation → serialization → broadcast for each widget
// kind.
type Trigger struct {
	aggregator *snapshot.Aggregator
	serializer *snapshot.Serializer
	publisher  Publisher
	flags      FlagSource

	now func() time.Time
}

func New(aggregator *snapshot.Aggregator, serializer *snapshot.Serializer, publisher Publisher, flags FlagSource) *Trigger {
	return &Trigger{
		aggregator: aggregator,
		serializer: serializer,
		publisher:  publisher,
		flags:      flags,
		now:        time.Now,
	}
}

// Sync recomputes and publishes the snapshot for one widget kind.
func (t *Trigger) Sync(ctx context.Context, kind snapshot.Kind) {
	if t.flags != nil && !t.flags.WidgetEnabled(kind) {
		slog.DebugContext(ctx, "Widget kind disabled, skipping sync",
			"widget_kind", kind.String())
		return
	}

	now := t.now()

	var (
		payload []byte
		err     error
	)
	switch kind {
	case snapshot.KindHabit:
		payload, err = t.serializer.SerializeHabits(t.aggregator.UnfinishedHabits(ctx, now), now)
	case snapshot.KindFinance:
		payload, err = t.serializer.SerializeFinance(t.aggregator.TodaySpending(ctx, now), now)
	case snapshot.KindPlanner:
		payload, err = t.serializer.SerializePlanner(t.aggregator.TodaySchedule(ctx, now), now)
	default:
		slog.WarnContext(ctx, "Unknown widget kind, skipping sync",
			"widget_kind", kind.String())
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "Snapshot serialization failed",
			"widget_kind", kind.String(), "error", err)
		return
	}

	if err := t.publisher.Publish(ctx, kind, payload); err != nil {
		slog.ErrorContext(ctx, "Snapshot publish failed on every sink",
			"widget_kind", kind.String(), "error", err)
	}
}

// SyncHabits refreshes the habit widget after a habit or completion
// mutation.
func (t *Trigger) SyncHabits(ctx context.Context) { t.Sync(ctx, snapshot.KindHabit) }

// SyncFinance refreshes the finance widget after an expense mutation.
func (t *Trigger) SyncFinance(ctx context.Context) { t.Sync(ctx, snapshot.KindFinance) }

// SyncPlanner refreshes the planner widget after a time-block mutation.
func (t *Trigger) SyncPlanner(ctx context.Context) { t.Sync(ctx, snapshot.KindPlanner) }

// SyncAll refreshes every widget kind, used on app foreground.
func (t *Trigger) SyncAll(ctx context.Context) {
	for _, kind := range snapshot.Kinds() {
		t.Sync(ctx, kind)
	}
}

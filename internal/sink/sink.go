// Package sink persists serialized widget snapshots. Two channels exist:
// a local fallback key-value store that is always written, and an optional
// shared-region bridge that an independent widget process reads. Writes
// are best effort; nothing here propagates an error past the trigger.
package sink

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"dayboard/internal/snapshot"
)

// Sink is one persistence channel for a snapshot payload.
type Sink interface {
	// Store overwrites the channel's copy of the payload for the kind.
	// Last write wins; no mutual exclusion is applied.
	Store(ctx context.Context, kind snapshot.Kind, payload []byte) error

	// Name identifies the sink in logs.
	Name() string
}

// Broadcaster writes a payload to every sink and collects per-sink
// results. It fails only when every sink failed; a partial success is a
// success, because the fallback copy alone satisfies the minimum
// guarantee.
type Broadcaster struct {
	sinks []Sink
}

func NewBroadcaster(sinks ...Sink) *Broadcaster {
	return &Broadcaster{sinks: sinks}
}

// Publish fans the payload out to all sinks concurrently.
func (b *Broadcaster) Publish(ctx context.Context, kind snapshot.Kind, payload []byte) error {
	if len(b.sinks) == 0 {
		return fmt.Errorf("no sinks configured")
	}

	failures := make([]error, len(b.sinks))
	var g errgroup.Group
	for i, s := range b.sinks {
		g.Go(func() error {
			if err := s.Store(ctx, kind, payload); err != nil {
				slog.WarnContext(ctx, "Snapshot sink write failed",
					"sink", s.Name(),
					"widget_kind", kind.String(),
					"error", err)
				failures[i] = err
				return nil // a single sink failure never fails the broadcast
			}
			slog.DebugContext(ctx, "Snapshot sink write ok",
				"sink", s.Name(),
				"widget_kind", kind.String(),
				"bytes", len(payload))
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range failures {
		if err != nil {
			failed++
		}
	}
	if failed == len(b.sinks) {
		return fmt.Errorf("all %d sinks failed for kind %s", failed, kind)
	}
	return nil
}

package audit

import (
	"context"
	"log/slog"
)

// Sink is an optional secondary destination (e.g. Kafka) alongside the store.
type Sink interface {
	Send(ctx context.Context, event Event) error
}

// Worker consumes events from the publisher inbox and persists them, fanning
// out to the sink when one is configured. Sink failures are logged, not
// fatal; the store append is the source of truth.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
			if w.sink != nil {
				if err := w.sink.Send(ctx, event); err != nil && w.logger != nil {
					w.logger.WarnContext(ctx, "audit sink send failed",
						"action", event.Action,
						"error", err,
					)
				}
			}
		}
	}
}

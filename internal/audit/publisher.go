package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher accepts events from domain logic without blocking it. Events flow
// through a buffered inbox to the worker; if the inbox is full the event is
// dropped with a warning rather than stalling a scan commit.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit queues an event. A nil publisher is a no-op so wiring stays optional.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, dropping event",
				"action", event.Action,
			)
		}
	}
}

// Inbox exposes the event channel to the worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }

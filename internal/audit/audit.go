// Package audit records what happened to each job application. Events are
// emitted from the service layer, buffered on a channel, and drained by a
// background worker so mutating requests never block on audit persistence.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated       Action = "application.created"
	ActionUpdated       Action = "application.updated"
	ActionStatusChanged Action = "application.status_changed"
	ActionDeleted       Action = "application.deleted"
)

// Event is one append-only audit record. Detail is free-form context such
// as the status transition that occurred.
type Event struct {
	Timestamp     time.Time
	ApplicationID uuid.UUID
	Action        Action
	Detail        string
}

// Store is the append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Event, error)
}

// Publisher hands events to the worker via a buffered channel. Emit never
// blocks the caller; when the buffer is full the event is dropped with a
// warning rather than stalling a write request.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(bufferSize int, logger *slog.Logger) *Publisher {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &Publisher{inbox: make(chan Event, bufferSize), logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"application_id", event.ApplicationID,
		)
	}
}

// Inbox exposes the event channel for the worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }

// Worker consumes audit events and persists them. Run returns when the
// context is cancelled.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"action", event.Action,
					"application_id", event.ApplicationID,
					"error", err,
				)
			}
		}
	}
}

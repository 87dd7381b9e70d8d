package service

import (
	"context"
	"io"
	"log/slog"
)

// MutationEvent describes a committed entity mutation. Subscribers use it
// to invalidate cached views of the affected project or engineering; the
// engine itself does no cache management.
type MutationEvent struct {
	Entity    string // "engineering", "task", "subtask"
	Action    string // "created", "updated", "deleted", "materialized", "recalculated"
	ID        string
	TaskID    string
	ProjectID string
}

// Publisher receives mutation events after a successful commit.
type Publisher interface {
	Publish(ctx context.Context, event MutationEvent)
}

// NoopPublisher drops all events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, MutationEvent) {}

// FanoutPublisher forwards each event to every registered subscriber in
// registration order.
type FanoutPublisher struct {
	subscribers []Publisher
}

func NewFanoutPublisher(subscribers ...Publisher) *FanoutPublisher {
	return &FanoutPublisher{subscribers: subscribers}
}

// Subscribe appends a subscriber. Not safe for concurrent use with Publish;
// subscribe during wiring, before serving operations.
func (p *FanoutPublisher) Subscribe(s Publisher) {
	p.subscribers = append(p.subscribers, s)
}

func (p *FanoutPublisher) Publish(ctx context.Context, event MutationEvent) {
	for _, s := range p.subscribers {
		s.Publish(ctx, event)
	}
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event MutationEvent)

func (f PublisherFunc) Publish(ctx context.Context, event MutationEvent) {
	f(ctx, event)
}

type logPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher writes mutation events to the provided writer.
func NewLogPublisher(w io.Writer) Publisher {
	if w == nil {
		return NoopPublisher{}
	}
	return &logPublisher{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (p *logPublisher) Publish(ctx context.Context, event MutationEvent) {
	p.logger.InfoContext(ctx, "entity_mutation",
		"entity", event.Entity,
		"action", event.Action,
		"id", event.ID,
		"task_id", event.TaskID,
		"project_id", event.ProjectID,
	)
}

func publisherOrNoop(publishers []Publisher) Publisher {
	for _, p := range publishers {
		if p != nil {
			return p
		}
	}
	return NoopPublisher{}
}

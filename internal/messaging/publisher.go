package messaging

import (
	"context"

	"github.com/feral-file/ff-registry/internal/domain"
)

// Publisher defines the interface for publishing registry events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a committed registry event
	PublishEvent(ctx context.Context, event *domain.RegistryEvent) error
	// Close closes the connection
	Close()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards events
func NewNopPublisher() Publisher {
	return NopPublisher{}
}

func (NopPublisher) PublishEvent(context.Context, *domain.RegistryEvent) error { return nil }

func (NopPublisher) Close() {}

package providers

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// content mutation events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ContentEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ContentEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event streams
const (
	// EventChannelContentUpdates carries every content mutation
	EventChannelContentUpdates = "content:updates"

	// EventChannelSurfacePrefix is the prefix for surface-specific channels
	EventChannelSurfacePrefix = "content:"
)

// GetSurfaceChannel returns the channel name for a specific surface
func GetSurfaceChannel(surface entities.ContentSurface) string {
	return EventChannelSurfacePrefix + string(surface)
}

package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ContentSurface identifies which part of the site a mutation touched
type ContentSurface string

const (
	SurfaceGallery      ContentSurface = "gallery"
	SurfaceTestimonials ContentSurface = "testimonials"
	SurfaceContact      ContentSurface = "contact"
	SurfaceSettings     ContentSurface = "settings"
)

// ContentEventType represents the kind of mutation that occurred
type ContentEventType string

const (
	ContentEventCreated   ContentEventType = "created"
	ContentEventUpdated   ContentEventType = "updated"
	ContentEventDeleted   ContentEventType = "deleted"
	ContentEventModerated ContentEventType = "moderated"
)

// ContentEvent is published on the event bus after a mutating operation so
// every replica drops its cached output for the affected paths and tags.
type ContentEvent struct {
	ID        string           `json:"id"`
	Surface   ContentSurface   `json:"surface"`
	EntityID  string           `json:"entity_id"`
	EventType ContentEventType `json:"event_type"`
	Paths     []string         `json:"paths"`
	Tags      []string         `json:"tags"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewContentEvent creates a new content event
func NewContentEvent(surface ContentSurface, entityID string, eventType ContentEventType, paths, tags []string) *ContentEvent {
	return &ContentEvent{
		ID:        generateEventID(),
		Surface:   surface,
		EntityID:  entityID,
		EventType: eventType,
		Paths:     paths,
		Tags:      tags,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random hex string of the given length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}

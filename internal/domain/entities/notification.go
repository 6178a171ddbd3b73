package entities

import "time"

// NotificationType identifies which owner notification was sent
type NotificationType string

const (
	NotificationTestimonialSubmitted NotificationType = "testimonial_submitted"
	NotificationInquiryReceived      NotificationType = "inquiry_received"
)

// NotificationStatus is the delivery outcome recorded in the log
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationRecord is a row in the notifications log. Delivery is
// best-effort; the log is the only durable trace of failures.
type NotificationRecord struct {
	ID        string             `json:"id" db:"id"`
	Type      NotificationType   `json:"type" db:"type"`
	Recipient string             `json:"recipient" db:"recipient"`
	Subject   string             `json:"subject" db:"subject"`
	Status    NotificationStatus `json:"status" db:"status"`
	Error     string             `json:"error,omitempty" db:"error"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
}

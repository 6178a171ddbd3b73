package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
)

// EmailDeliverer sends a plain text email and returns the provider message ID.
type EmailDeliverer interface {
	Send(to, subject, body string) (string, error)
}

// NotificationService emails the site owner about new public submissions and
// records every attempt in the notifications log. Delivery is best-effort:
// the submission that triggered it has already been persisted.
type NotificationService struct {
	db         *sqlx.DB
	sender     EmailDeliverer
	ownerEmail string
}

// NewNotificationService creates a new notification service.
func NewNotificationService(db *sqlx.DB, sender EmailDeliverer, ownerEmail string) (*NotificationService, error) {
	if ownerEmail == "" {
		return nil, fmt.Errorf("owner email must be configured")
	}
	return &NotificationService{
		db:         db,
		sender:     sender,
		ownerEmail: ownerEmail,
	}, nil
}

// NotifyTestimonialSubmitted emails the owner about a new testimonial
// awaiting moderation.
func (s *NotificationService) NotifyTestimonialSubmitted(ctx context.Context, testimonial *entities.Testimonial) {
	subject := "Nova recenzija čeka odobrenje"
	body := fmt.Sprintf(
		"Nova recenzija na sajtu:\n\nIme: %s\nOcena: %d/5\n\n%s\n\nOdobrite je u admin panelu.",
		testimonial.Name, testimonial.Rating, testimonial.Text,
	)
	s.deliver(ctx, entities.NotificationTestimonialSubmitted, subject, body)
}

// NotifyInquiryReceived emails the owner about a new contact inquiry.
func (s *NotificationService) NotifyInquiryReceived(ctx context.Context, inquiry *entities.ContactInquiry) {
	subject := "Novi upit sa sajta"
	body := fmt.Sprintf(
		"Novi upit preko kontakt forme:\n\nIme: %s\nEmail: %s\nTelefon: %s\nUsluga: %s\n\n%s",
		inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Service, inquiry.Message,
	)
	s.deliver(ctx, entities.NotificationInquiryReceived, subject, body)
}

func (s *NotificationService) deliver(ctx context.Context, notificationType entities.NotificationType, subject, body string) {
	record := &entities.NotificationRecord{
		ID:        uuid.New().String(),
		Type:      notificationType,
		Recipient: s.ownerEmail,
		Subject:   subject,
		Status:    entities.NotificationStatusSent,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.sender.Send(s.ownerEmail, subject, body); err != nil {
		record.Status = entities.NotificationStatusFailed
		record.Error = err.Error()
		log.Warn().Err(err).Str("type", string(notificationType)).Msg("Owner notification failed")
	}

	if err := s.logNotification(ctx, record); err != nil {
		log.Warn().Err(err).Str("type", string(notificationType)).Msg("Failed to record notification")
	}
}

func (s *NotificationService) logNotification(ctx context.Context, record *entities.NotificationRecord) error {
	query := `
		INSERT INTO notifications (id, type, recipient, subject, status, error, created_at)
		VALUES (:id, :type, :recipient, :subject, :status, :error, :created_at)
	`
	_, err := s.db.NamedExecContext(ctx, query, record)
	return err
}

// RecentFailures returns failed notifications from the last n days, newest
// first. Used by the admin stats endpoint to surface delivery problems.
func (s *NotificationService) RecentFailures(ctx context.Context, days int) ([]*entities.NotificationRecord, error) {
	if days <= 0 {
		days = 7
	}

	var records []*entities.NotificationRecord
	query := `
		SELECT id, type, recipient, subject, status, COALESCE(error, '') AS error, created_at
		FROM notifications
		WHERE status = $1 AND created_at > NOW() - make_interval(days => $2)
		ORDER BY created_at DESC
	`
	if err := s.db.SelectContext(ctx, &records, query, string(entities.NotificationStatusFailed), days); err != nil {
		return nil, fmt.Errorf("failed to query notification failures: %w", err)
	}

	return records, nil
}

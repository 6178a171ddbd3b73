package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/vodomont/backend/internal/domain/entities"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	db := sqlx.NewDb(mockDB, "postgres")
	return db, mock
}

type stubSender struct {
	sent []string
	err  error
}

func (s *stubSender) Send(to, subject, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, subject)
	return "msg-1", nil
}

func TestNewNotificationService(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	tests := []struct {
		name       string
		ownerEmail string
		wantErr    bool
	}{
		{
			name:       "Valid configuration",
			ownerEmail: "vlasnik@vodomont.rs",
			wantErr:    false,
		},
		{
			name:       "Missing owner email",
			ownerEmail: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewNotificationService(db, &stubSender{}, tt.ownerEmail)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewNotificationService() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && service == nil {
				t.Error("NewNotificationService() returned nil service")
			}
		})
	}
}

func TestNotificationService_NotifyTestimonialSubmitted(t *testing.T) {
	t.Run("logs a sent record on success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))

		sender := &stubSender{}
		service, err := NewNotificationService(db, sender, "vlasnik@vodomont.rs")
		if err != nil {
			t.Fatalf("NewNotificationService() error = %v", err)
		}

		service.NotifyTestimonialSubmitted(context.Background(), &entities.Testimonial{
			Name:   "Marko",
			Text:   "Sve pohvale za brzu intervenciju.",
			Rating: 5,
		})

		if len(sender.sent) != 1 {
			t.Errorf("expected 1 email sent, got %d", len(sender.sent))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
	})

	t.Run("logs a failed record when delivery fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))

		sender := &stubSender{err: fmt.Errorf("mail API down")}
		service, err := NewNotificationService(db, sender, "vlasnik@vodomont.rs")
		if err != nil {
			t.Fatalf("NewNotificationService() error = %v", err)
		}

		// Must not panic or propagate; the record is the only trace
		service.NotifyInquiryReceived(context.Background(), &entities.ContactInquiry{
			Name:    "Jelena",
			Email:   "jelena@example.com",
			Message: "Curi mi slavina u kuhinji.",
		})

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
	})
}

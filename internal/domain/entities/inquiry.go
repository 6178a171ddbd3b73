package entities

import "time"

// InquiryStatus is the processing state of a contact inquiry
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusResolved InquiryStatus = "resolved"
)

// ValidInquiryStatus reports whether s is a known status value
func ValidInquiryStatus(s InquiryStatus) bool {
	return s == InquiryStatusPending || s == InquiryStatusResolved
}

// ContactInquiry is a message submitted through the public contact form.
// Status transitions are admin-only.
type ContactInquiry struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Phone     string        `json:"phone,omitempty" db:"phone"`
	Service   string        `json:"service,omitempty" db:"service"`
	Message   string        `json:"message" db:"message"`
	Status    InquiryStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

package entities

import "time"

// Testimonial is a customer review. Public submissions start unpublished;
// publishing and featuring are admin moderation actions. Featured is an
// independent flag, but only published testimonials are rendered, so a
// featured-but-unpublished record never reaches a public page.
type Testimonial struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Text        string    `json:"text" db:"text"`
	Rating      int       `json:"rating" db:"rating"`
	Service     string    `json:"service,omitempty" db:"service"`
	Location    string    `json:"location,omitempty" db:"location"`
	Email       string    `json:"-" db:"email"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Status returns the moderation status marker used in API responses.
func (t *Testimonial) Status() string {
	if t.IsPublished {
		return "published"
	}
	return "pending_review"
}

// TestimonialSummary is the reduced view returned to public submitters.
// The full text is not echoed back.
type TestimonialSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Status string `json:"status"`
}

// Summary returns the reduced public view of the testimonial.
func (t *Testimonial) Summary() TestimonialSummary {
	return TestimonialSummary{
		ID:     t.ID,
		Name:   t.Name,
		Rating: t.Rating,
		Status: t.Status(),
	}
}

package entities

import "time"

// Photo is a gallery image shown on the public site. Records are created by
// admin uploads and hard-deleted; there is no in-place edit.
type Photo struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	AltText     string    `json:"alt_text" db:"alt_text"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DemoPhotos is the fixed fallback list served when the record store is
// unreachable, so the public gallery always renders.
func DemoPhotos() []*Photo {
	now := time.Now().UTC()
	return []*Photo{
		{
			ID:          "demo-1",
			Title:       "Zamena bojlera",
			Description: "Kompletna zamena bojlera sa novim ventilima",
			ImageURL:    "/images/placeholder-boiler.jpg",
			AltText:     "Zamena bojlera",
			CreatedAt:   now,
		},
		{
			ID:          "demo-2",
			Title:       "Renoviranje kupatila",
			Description: "Nove instalacije i sanitarije u kupatilu",
			ImageURL:    "/images/placeholder-bathroom.jpg",
			AltText:     "Renoviranje kupatila",
			CreatedAt:   now.Add(-time.Minute),
		},
	}
}

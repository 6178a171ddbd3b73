package entities

import "time"

// PageView is a per-path, per-day visit counter. Plain counting only.
type PageView struct {
	Path  string    `json:"path" db:"path"`
	Day   time.Time `json:"day" db:"day"`
	Count int64     `json:"count" db:"count"`
}

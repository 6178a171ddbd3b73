package entities

import "time"

// SettingsRowID is the fixed primary key of the site_settings singleton row.
// A single-row table with a constant key plus ON CONFLICT upsert keeps
// concurrent first writes from racing into duplicate rows.
const SettingsRowID = 1

// SiteSettings is the singleton business profile rendered across the site.
type SiteSettings struct {
	ID                 int       `json:"-" db:"id"`
	BusinessName       string    `json:"business_name" db:"business_name"`
	Phone              string    `json:"phone" db:"phone"`
	Email              string    `json:"email" db:"email"`
	ServiceArea        string    `json:"service_area" db:"service_area"`
	Description        string    `json:"description" db:"description"`
	Address            string    `json:"address" db:"address"`
	WorkingHours       string    `json:"working_hours" db:"working_hours"`
	EmergencyAvailable bool      `json:"emergency_available" db:"emergency_available"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSiteSettings returns the object served when no settings row exists.
// The read path never errors on an absent row.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		ID:                 SettingsRowID,
		BusinessName:       "Vodomont",
		Phone:              "+381 60 123 4567",
		Email:              "kontakt@vodomont.rs",
		ServiceArea:        "Beograd i okolina",
		Description:        "Vodoinstalaterske usluge: popravke, instalacije i hitne intervencije.",
		Address:            "Bulevar oslobodjenja 1, Beograd",
		WorkingHours:       "Pon–Sub 08:00–20:00",
		EmergencyAvailable: true,
	}
}

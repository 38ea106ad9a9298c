package models

import "time"

// Session is the locally cached identity of the signed-in user. It exists
// if and only if a bearer token is persisted alongside it; the two are
// written and cleared together.
type Session struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	Address      string     `json:"address,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`
	IsVenueOwner bool       `json:"is_venue_owner,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// SessionUpdateRequest carries a partial profile update. Only non-nil
// fields override the current session record.
type SessionUpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

package models

// CreateBookingInput is the payload for a new booking request.
type CreateBookingInput struct {
	CourtID int64   `json:"court_id"`
	Date    string  `json:"date"`
	SlotIDs []int64 `json:"slot_ids"`
}

// AvailabilitySlot is one bookable interval on a court for a given date.
type AvailabilitySlot struct {
	ID        int64   `json:"id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// CourtAvailability groups a court's open slots for a date.
type CourtAvailability struct {
	CourtID int64              `json:"court_id"`
	Court   string             `json:"court"`
	Slots   []AvailabilitySlot `json:"slots"`
}

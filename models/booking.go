package models

import "encoding/json"

// BookingStatus is the canonical booking state. Raw backend values are
// case-normalized; anything unrecognized maps to pending.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// RawBooking is the backend wire shape. Field types mirror the backend's
// quirks: string-encoded numbers, an images field that may be a JSON
// string or an array, and slot times in several formats.
type RawBooking struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	FacilityID    int64           `json:"facility_id"`
	FacilitySlug  string          `json:"facility_slug"`
	FacilityName  string          `json:"facility_name"`
	FacilityImage string          `json:"facility_image"`
	Address       string          `json:"address"`
	Images        json.RawMessage `json:"images"`
	Latitude      string          `json:"latitude"`
	Longitude     string          `json:"longitude"`
	Court         string          `json:"court"`
	Date          string          `json:"date"`
	Price         string          `json:"price"`
	Status        string          `json:"status"`
	Slots         []RawSlot       `json:"slots"`
}

// RawSlot carries a slot time under whichever field name the backend
// chose for that endpoint.
type RawSlot struct {
	ID           int64  `json:"id"`
	Time         string `json:"time"`
	StartTime    string `json:"start_time"`
	StartTimeAlt string `json:"startTime"`
	EndTime      string `json:"end_time"`
	EndTimeAlt   string `json:"endTime"`
	Price        string `json:"price"`
}

// VenueSummary is the display-ready venue block embedded in a canonical
// booking. Images is guaranteed non-empty.
type VenueSummary struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Court     string   `json:"court"`
	Slug      string   `json:"slug"`
	Images    []string `json:"images"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
}

// Booking is the canonical, display-ready booking record, independent of
// backend quirks.
type Booking struct {
	ID          int64         `json:"id"`
	Venue       VenueSummary  `json:"venue"`
	Date        string        `json:"date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	SlotCount   int           `json:"slot_count"`
}

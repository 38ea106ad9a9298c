package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"courtside/models"
)

func testNormalizer() *Normalizer {
	return NewNormalizer("https://assets.example.com", "https://assets.example.com/fallback.jpg", -6.2088, 106.8456)
}

func TestNormalize_StringEncodedImages(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{
		ID:     1,
		Images: json.RawMessage(`"[\"a.jpg\"]"`),
	}

	got := n.Normalize(raw)
	assert.Equal(t, []string{"https://assets.example.com/a.jpg"}, got.Venue.Images)
}

func TestNormalize_ImageArrayPassesThrough(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{
		Images: json.RawMessage(`["uploads/a.jpg", "https://cdn.example.com/b.jpg"]`),
	}

	got := n.Normalize(raw)
	assert.Equal(t, []string{
		"https://assets.example.com/uploads/a.jpg",
		"https://cdn.example.com/b.jpg",
	}, got.Venue.Images)
}

func TestNormalize_NullImagesFallsBackToStockImage(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{Images: json.RawMessage(`null`)}

	got := n.Normalize(raw)
	assert.Equal(t, []string{"https://assets.example.com/fallback.jpg"}, got.Venue.Images)
}

func TestNormalize_UndecodableImagesFallsBackToStockImage(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{Images: json.RawMessage(`"not json at all"`)}

	got := n.Normalize(raw)
	assert.Equal(t, []string{"https://assets.example.com/fallback.jpg"}, got.Venue.Images)
}

func TestNormalize_FacilityImagePrepended(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{
		FacilityImage: `uploads\venues\court.jpg`,
		Images:        json.RawMessage(`["a.jpg"]`),
	}

	got := n.Normalize(raw)
	assert.Equal(t, []string{
		"https://assets.example.com/uploads/venues/court.jpg",
		"https://assets.example.com/a.jpg",
	}, got.Venue.Images)
}

func TestResolveImageURL(t *testing.T) {
	n := testNormalizer()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"relative", "uploads/a.jpg", "https://assets.example.com/uploads/a.jpg"},
		{"leading slash", "/uploads/a.jpg", "https://assets.example.com/uploads/a.jpg"},
		{"backslashes", `uploads\a.jpg`, "https://assets.example.com/uploads/a.jpg"},
		{"absolute", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"absolute http", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.ResolveImageURL(tc.in))
		})
	}
}

func TestFormatClock(t *testing.T) {
	n := testNormalizer()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hh:mm unchanged", "14:05", "14:05"},
		{"hh:mm:ss truncated", "14:05:30", "14:05"},
		{"bare hour", "9", "09:00"},
		{"full timestamp", "2024-03-01T18:30:00Z", "18:30"},
		{"datetime without zone", "2024-03-01 07:15:00", "07:15"},
		{"twelve hour", "2:30 PM", "14:30"},
		{"unparsable passes through", "half past nine", "half past nine"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.FormatClock(tc.in))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, models.StatusConfirmed, NormalizeStatus("CONFIRMED"))
	assert.Equal(t, models.StatusCancelled, NormalizeStatus("Cancelled"))
	assert.Equal(t, models.StatusPending, NormalizeStatus("pending"))
	assert.Equal(t, models.StatusPending, NormalizeStatus("weird-status"))
	assert.Equal(t, models.StatusPending, NormalizeStatus(""))
}

func TestNormalize_Coordinates(t *testing.T) {
	n := testNormalizer()

	got := n.Normalize(models.RawBooking{Latitude: "-7.2575", Longitude: "112.7521"})
	assert.Equal(t, -7.2575, got.Venue.Latitude)
	assert.Equal(t, 112.7521, got.Venue.Longitude)

	got = n.Normalize(models.RawBooking{Latitude: "not-a-number", Longitude: ""})
	assert.Equal(t, -6.2088, got.Venue.Latitude)
	assert.Equal(t, 106.8456, got.Venue.Longitude)
}

func TestNormalize_Amount(t *testing.T) {
	n := testNormalizer()

	assert.Equal(t, 150000.0, n.Normalize(models.RawBooking{Price: "150000"}).TotalAmount)
	assert.Equal(t, 99.5, n.Normalize(models.RawBooking{Price: " 99.5 "}).TotalAmount)
	assert.Equal(t, 0.0, n.Normalize(models.RawBooking{Price: "free"}).TotalAmount)
}

func TestNormalize_SlotWindow(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{
		Slots: []models.RawSlot{
			{StartTime: "08:00:00", EndTime: "09:00:00"},
			{StartTimeAlt: "09:00", EndTimeAlt: "10:00"},
		},
	}

	got := n.Normalize(raw)
	assert.Equal(t, "08:00", got.StartTime)
	assert.Equal(t, "10:00", got.EndTime)
	assert.Equal(t, 2, got.SlotCount)
}

func TestNormalize_SingleTimeFieldSlots(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{
		Slots: []models.RawSlot{
			{Time: "18:00"},
			{Time: "19:00"},
		},
	}

	got := n.Normalize(raw)
	assert.Equal(t, "18:00", got.StartTime)
	assert.Equal(t, "19:00", got.EndTime)
}

func TestNormalize_VenueFields(t *testing.T) {
	n := testNormalizer()

	raw := models.RawBooking{
		ID:           42,
		Name:         "Evening match",
		FacilityID:   7,
		FacilitySlug: "arena-senayan",
		FacilityName: "Arena Senayan",
		Address:      "Jl. Asia Afrika, Jakarta",
		Court:        "Badminton Court 2",
		Date:         "2024-03-01",
		Status:       "CONFIRMED",
	}

	got := n.Normalize(raw)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, int64(7), got.Venue.ID)
	assert.Equal(t, "Arena Senayan", got.Venue.Name)
	assert.Equal(t, "arena-senayan", got.Venue.Slug)
	assert.Equal(t, "Jl. Asia Afrika, Jakarta", got.Venue.Location)
	assert.Equal(t, "Badminton Court 2", got.Venue.Court)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestNormalize_FacilityNameFallsBackToBookingName(t *testing.T) {
	n := testNormalizer()

	got := n.Normalize(models.RawBooking{Name: "Morning session"})
	assert.Equal(t, "Morning session", got.Venue.Name)
}

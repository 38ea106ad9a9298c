package booking

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"courtside/models"
)

// Normalizer converts raw backend booking records into the canonical
// display shape. Normalize is total: every malformed field degrades to a
// documented default instead of failing, because the backend is an
// uncontrolled external system.
type Normalizer struct {
	AssetHost        string
	FallbackImage    string
	DefaultLatitude  float64
	DefaultLongitude float64
}

func NewNormalizer(assetHost, fallbackImage string, defaultLat, defaultLng float64) *Normalizer {
	return &Normalizer{
		AssetHost:        strings.TrimSuffix(assetHost, "/"),
		FallbackImage:    fallbackImage,
		DefaultLatitude:  defaultLat,
		DefaultLongitude: defaultLng,
	}
}

var (
	clockHHMM   = regexp.MustCompile(`^\d{2}:\d{2}$`)
	clockHHMMSS = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
)

var clockLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
	"3:04 PM",
}

// Normalize maps one raw booking to its canonical form.
func (n *Normalizer) Normalize(raw models.RawBooking) models.Booking {
	start, end := n.slotWindow(raw.Slots)

	venueName := raw.FacilityName
	if venueName == "" {
		venueName = raw.Name
	}

	return models.Booking{
		ID: raw.ID,
		Venue: models.VenueSummary{
			ID:        raw.FacilityID,
			Name:      venueName,
			Location:  raw.Address,
			Court:     raw.Court,
			Slug:      raw.FacilitySlug,
			Images:    n.images(raw),
			Latitude:  n.coordinate(raw.Latitude, n.DefaultLatitude),
			Longitude: n.coordinate(raw.Longitude, n.DefaultLongitude),
		},
		Date:        raw.Date,
		StartTime:   start,
		EndTime:     end,
		TotalAmount: parseAmount(raw.Price),
		Status:      NormalizeStatus(raw.Status),
		SlotCount:   len(raw.Slots),
	}
}

// NormalizeSlice maps a raw sequence, always returning a non-nil slice.
func (n *Normalizer) NormalizeSlice(raws []models.RawBooking) []models.Booking {
	out := make([]models.Booking, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

// images decodes the images field (a JSON array, or a JSON-encoded string
// holding one), prepends the facility image, resolves every entry to an
// absolute URL, and substitutes the stock fallback when nothing remains.
func (n *Normalizer) images(raw models.RawBooking) []string {
	var paths []string
	if len(raw.Images) > 0 {
		if err := json.Unmarshal(raw.Images, &paths); err != nil {
			var encoded string
			if err := json.Unmarshal(raw.Images, &encoded); err == nil {
				// Decode failure inside the string defaults to empty.
				_ = json.Unmarshal([]byte(encoded), &paths)
			}
		}
	}

	resolved := make([]string, 0, len(paths)+1)
	if raw.FacilityImage != "" {
		resolved = append(resolved, n.ResolveImageURL(raw.FacilityImage))
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		resolved = append(resolved, n.ResolveImageURL(p))
	}

	if len(resolved) == 0 {
		return []string{n.FallbackImage}
	}
	return resolved
}

// ResolveImageURL turns a relative asset path into an absolute URL.
// Already-absolute URLs pass through; backslash separators are normalized.
func (n *Normalizer) ResolveImageURL(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return n.AssetHost + "/" + strings.TrimPrefix(path, "/")
}

func (n *Normalizer) coordinate(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

// FormatClock normalizes a slot time to 24-hour HH:MM. HH:MM passes
// through, HH:MM:SS is truncated, bare hours become HH:00, anything else
// goes through generic parsing; on total failure the original string
// passes through unchanged.
func (n *Normalizer) FormatClock(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return v
	}
	if clockHHMM.MatchString(v) {
		return v
	}
	if clockHHMMSS.MatchString(v) {
		return v[:5]
	}
	if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
		return fmt.Sprintf("%02d:00", h)
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04")
		}
	}
	return value
}

// slotWindow derives the booking's display window: the start of the first
// slot and the end of the last. Slots that only carry a single time field
// contribute it to both ends.
func (n *Normalizer) slotWindow(slots []models.RawSlot) (string, string) {
	if len(slots) == 0 {
		return "", ""
	}

	first := slots[0]
	last := slots[len(slots)-1]

	start := firstNonEmpty(first.StartTime, first.StartTimeAlt, first.Time)
	end := firstNonEmpty(last.EndTime, last.EndTimeAlt, last.Time)

	return n.FormatClock(start), n.FormatClock(end)
}

// NormalizeStatus lower-cases the raw status and maps anything
// unrecognized to pending.
func NormalizeStatus(raw string) models.BookingStatus {
	switch models.BookingStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case models.StatusConfirmed:
		return models.StatusConfirmed
	case models.StatusCancelled:
		return models.StatusCancelled
	case models.StatusPending:
		return models.StatusPending
	default:
		return models.StatusPending
	}
}

// parseAmount parses the string-encoded price; non-numeric input is zero.
func parseAmount(price string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return 0
	}
	return f
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

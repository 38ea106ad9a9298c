package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"courtside/client"
	"courtside/models"
)

// List fetches the caller's bookings and normalizes each. A backend
// response with no bookings yields an empty sequence, not an error.
func (svc *DefaultBookingService) List(ctx context.Context) ([]models.Booking, error) {
	body, err := svc.API.Request(ctx, "GET", "/api/v1/bookings", nil, nil)
	if err != nil {
		return nil, svc.opError(err, "failed to load bookings")
	}

	var resp struct {
		Bookings []models.RawBooking `json:"bookings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse bookings response: %w", err)
	}

	return svc.Norm.NormalizeSlice(resp.Bookings), nil
}

// GetByID fetches one booking; ErrBookingNotFound when the backend has no
// matching record.
func (svc *DefaultBookingService) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	body, err := svc.API.Request(ctx, "GET", fmt.Sprintf("/api/v1/bookings/%d", id), nil, nil)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, svc.opError(err, "failed to load booking")
	}

	var resp struct {
		Booking *models.RawBooking `json:"booking"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse booking response: %w", err)
	}
	if resp.Booking == nil {
		return nil, ErrBookingNotFound
	}

	normalized := svc.Norm.Normalize(*resp.Booking)
	return &normalized, nil
}

// Create submits a new booking and returns the backend-assigned order
// reference. Payment is confirmed separately.
func (svc *DefaultBookingService) Create(ctx context.Context, input models.CreateBookingInput) (string, error) {
	body, err := svc.API.Request(ctx, "POST", "/api/v1/bookings", input, nil)
	if err != nil {
		return "", svc.opError(err, "failed to create booking")
	}

	var resp struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse create response: %w", err)
	}
	if resp.OrderID == "" {
		return "", fmt.Errorf("create response is missing the order reference")
	}

	svc.Logger.Info("Booking created", zap.String("orderID", resp.OrderID))
	return resp.OrderID, nil
}

// Cancel requests cancellation and returns the backend's updated status.
// Repeating a cancellation of an already-cancelled booking is not a
// client-side error; the backend decides.
func (svc *DefaultBookingService) Cancel(ctx context.Context, id int64) (models.BookingStatus, error) {
	body, err := svc.API.Request(ctx, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", id), nil, nil)
	if err != nil {
		return "", svc.opError(err, "failed to cancel booking")
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse cancel response: %w", err)
	}

	status := NormalizeStatus(resp.Status)
	svc.Logger.Info("Booking cancelled", zap.Int64("bookingID", id), zap.String("status", string(status)))
	return status, nil
}

type paymentOutcome struct {
	Reference string `json:"reference"`
}

// ConfirmPayment forwards a successful payment gateway outcome to the
// backend to finalize the booking.
func (svc *DefaultBookingService) ConfirmPayment(ctx context.Context, reference string) error {
	if reference == "" {
		return fmt.Errorf("payment reference is required")
	}
	if _, err := svc.API.Request(ctx, "POST", "/api/v1/payments/confirm", paymentOutcome{Reference: reference}, nil); err != nil {
		return svc.opError(err, "failed to confirm payment")
	}
	svc.Logger.Info("Payment confirmed", zap.String("reference", reference))
	return nil
}

// ReportPaymentFailure forwards a failed payment gateway outcome.
func (svc *DefaultBookingService) ReportPaymentFailure(ctx context.Context, reference string) error {
	if reference == "" {
		return fmt.Errorf("payment reference is required")
	}
	if _, err := svc.API.Request(ctx, "POST", "/api/v1/payments/failure", paymentOutcome{Reference: reference}, nil); err != nil {
		return svc.opError(err, "failed to report payment failure")
	}
	svc.Logger.Info("Payment failure reported", zap.String("reference", reference))
	return nil
}

// Availability lists a venue's open court slots for a date. Slot times go
// through the same clock formatter as booking windows.
func (svc *DefaultBookingService) Availability(ctx context.Context, venueSlug, date string) ([]models.CourtAvailability, error) {
	query := url.Values{}
	query.Set("date", date)

	body, err := svc.API.Request(ctx, "GET", fmt.Sprintf("/api/v1/venues/%s/availability", url.PathEscape(venueSlug)), nil, query)
	if err != nil {
		return nil, svc.opError(err, "failed to load availability")
	}

	var resp struct {
		Courts []struct {
			CourtID int64            `json:"court_id"`
			Court   string           `json:"court"`
			Slots   []models.RawSlot `json:"slots"`
		} `json:"courts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse availability response: %w", err)
	}

	courts := make([]models.CourtAvailability, 0, len(resp.Courts))
	for _, c := range resp.Courts {
		slots := make([]models.AvailabilitySlot, 0, len(c.Slots))
		for _, s := range c.Slots {
			slots = append(slots, models.AvailabilitySlot{
				ID:        s.ID,
				StartTime: svc.Norm.FormatClock(firstNonEmpty(s.StartTime, s.StartTimeAlt, s.Time)),
				EndTime:   svc.Norm.FormatClock(firstNonEmpty(s.EndTime, s.EndTimeAlt)),
				Price:     parseAmount(s.Price),
				Available: true,
			})
		}
		courts = append(courts, models.CourtAvailability{CourtID: c.CourtID, Court: c.Court, Slots: slots})
	}
	return courts, nil
}

// opError surfaces the backend-supplied message verbatim when present,
// otherwise the fixed per-operation fallback. Authentication expiry passes
// through untouched so callers can redirect to login.
func (svc *DefaultBookingService) opError(err error, fallback string) error {
	if errors.Is(err, client.ErrAuthExpired) {
		return err
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != "request failed" {
		return &OperationError{Message: apiErr.Message, Err: err}
	}
	return &OperationError{Message: fallback, Err: err}
}

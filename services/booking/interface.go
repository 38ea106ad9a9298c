package booking

import (
	"context"
	"encoding/json"
	"net/url"

	"go.uber.org/zap"

	"courtside/models"
)

// Requester is the slice of the HTTP client the booking facade depends on.
type Requester interface {
	Request(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error)
}

// BookingService exposes the booking lifecycle: each operation is a single
// round trip to the backend, with list/get responses run through the
// normalizer before they reach the caller.
type BookingService interface {
	List(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	Create(ctx context.Context, input models.CreateBookingInput) (string, error)
	Cancel(ctx context.Context, id int64) (models.BookingStatus, error)
	ConfirmPayment(ctx context.Context, reference string) error
	ReportPaymentFailure(ctx context.Context, reference string) error
	Availability(ctx context.Context, venueSlug, date string) ([]models.CourtAvailability, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	API    Requester
	Norm   *Normalizer
	Logger *zap.Logger
}

var _ BookingService = (*DefaultBookingService)(nil)

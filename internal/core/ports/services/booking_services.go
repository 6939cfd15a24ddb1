package services

import (
	"context"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
)

// BookingSvcFacade creates and reads time-boxed event bookings.
type BookingSvcFacade interface {
	// CreateBooking reserves an event slot for the booking TTL with a
	// random 4-digit confirmation code.
	CreateBooking(ctx context.Context, event, day, timeOfDay string) (domain.Booking, error)

	// ListActiveBookings evicts expired bookings and returns the rest.
	ListActiveBookings(ctx context.Context) ([]domain.Booking, error)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
	portsrepo "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/repositories"
)

// BookingService creates and reads time-boxed event bookings on the
// shared ledger.
type BookingService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	logger     *slog.Logger
}

func NewBookingService(ledgerRepo portsrepo.LedgerRepositoryFacade, logger *slog.Logger) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{ledgerRepo: ledgerRepo, logger: logger}
}

// CreateBooking reserves an event slot with a random 4-digit confirmation
// code in the range 1000-9999. Codes are not unique across open bookings;
// the BookingID exists for log correlation only.
func (s *BookingService) CreateBooking(ctx context.Context, event, day, timeOfDay string) (domain.Booking, error) {
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		Event:       event,
		Day:         day,
		Time:        timeOfDay,
		BookingTime: time.Now(),
		BookingCode: 1000 + rand.Intn(9000),
	}
	if err := s.ledgerRepo.AddBooking(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("failed to store booking: %w", err)
	}
	s.logger.Info("booking created",
		slog.String("booking_id", booking.BookingID),
		slog.String("event", event),
		slog.Int("code", booking.BookingCode))
	return booking, nil
}

// ListActiveBookings evicts expired bookings and returns what is left.
func (s *BookingService) ListActiveBookings(ctx context.Context) ([]domain.Booking, error) {
	if _, err := s.ledgerRepo.EvictExpiredBookings(ctx, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to evict expired bookings: %w", err)
	}
	ledger, err := s.ledgerRepo.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger for bookings: %w", err)
	}
	return ledger.Bookings, nil
}

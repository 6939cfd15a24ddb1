package repositories

import (
	"context"
	"time"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
)

// LedgerReader defines read access to the day-scoped ledger document.
type LedgerReader interface {
	// Open loads the current day's ledger, rotating a stale-dated file
	// forward first. A missing file is the expected empty-ledger case,
	// not an error.
	Open(ctx context.Context) (*domain.Ledger, error)
}

// LedgerWriter defines the mutating operations on the ledger. Every
// mutation is a full open → modify → save cycle on the backing file.
type LedgerWriter interface {
	// Save serializes the full ledger and overwrites today's file.
	Save(ctx context.Context, ledger *domain.Ledger) error

	// SetLink stores a named external URL; last write wins.
	SetLink(ctx context.Context, name, url string) error

	// UpsertScheduleEntry adds entry unless one with the same details
	// already exists; reports whether it was added.
	UpsertScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) (bool, error)

	// RemoveScheduleEntries drops entries whose details contain term
	// case-insensitively; reports how many were removed.
	RemoveScheduleEntries(ctx context.Context, term string) (int, error)

	// AddPaidCode appends an operator-confirmed code idempotently;
	// reports whether it was newly added.
	AddPaidCode(ctx context.Context, code string) (bool, error)

	// AddVerificationRequest appends a user-requested code idempotently;
	// reports whether it was newly added.
	AddVerificationRequest(ctx context.Context, code string) (bool, error)

	// AddBooking appends a booking; no uniqueness constraint.
	AddBooking(ctx context.Context, booking domain.Booking) error

	// EvictExpiredBookings durably removes bookings past their TTL as of
	// now; reports how many were evicted.
	EvictExpiredBookings(ctx context.Context, now time.Time) (int, error)

	// Reset deletes the backing file entirely.
	Reset(ctx context.Context) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

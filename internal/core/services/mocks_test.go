package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
)

// MockLedgerRepository mocks the ledger repository facade for service
// tests.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Open(ctx context.Context) (*domain.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, ledger *domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) SetLink(ctx context.Context, name, url string) error {
	args := m.Called(ctx, name, url)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpsertScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) RemoveScheduleEntries(ctx context.Context, term string) (int, error) {
	args := m.Called(ctx, term)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) AddPaidCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) AddVerificationRequest(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) AddBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockLedgerRepository) EvictExpiredBookings(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

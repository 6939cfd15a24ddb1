package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
	portsrepo "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/repositories"
	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
)

// LedgerAdminService exposes operator maintenance of the ledger document.
type LedgerAdminService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

func NewLedgerAdminService(ledgerRepo portsrepo.LedgerRepositoryFacade) *LedgerAdminService {
	return &LedgerAdminService{ledgerRepo: ledgerRepo}
}

// Snapshot returns the current ledger with expired bookings evicted.
func (s *LedgerAdminService) Snapshot(ctx context.Context) (*domain.Ledger, error) {
	if _, err := s.ledgerRepo.EvictExpiredBookings(ctx, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to evict expired bookings: %w", err)
	}
	ledger, err := s.ledgerRepo.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return ledger, nil
}

// ExportDocument returns the serialized ledger and a readable summary of
// every collection, for delivery to the operator as a file attachment.
func (s *LedgerAdminService) ExportDocument(ctx context.Context) (dto.ExportResult, error) {
	ledger, err := s.Snapshot(ctx)
	if err != nil {
		return dto.ExportResult{}, err
	}
	raw, err := yaml.Marshal(ledger)
	if err != nil {
		return dto.ExportResult{}, fmt.Errorf("failed to serialize ledger for export: %w", err)
	}
	return dto.ExportResult{
		FileName: "data" + time.Now().Format("2006-01-02") + ".yaml",
		Document: raw,
		Summary:  summarize(ledger),
	}, nil
}

// Reset hard-deletes the backing ledger file.
func (s *LedgerAdminService) Reset(ctx context.Context) error {
	if err := s.ledgerRepo.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset ledger: %w", err)
	}
	return nil
}

func summarize(ledger *domain.Ledger) string {
	var b strings.Builder
	b.WriteString("links:\n")
	for name, url := range ledger.Links {
		fmt.Fprintf(&b, "  %s: %s\n", name, url)
	}
	b.WriteString("schedule:\n")
	for i, e := range ledger.Schedule {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, e.Details)
	}
	b.WriteString("paid_codes:\n")
	for i, c := range ledger.PaidCodes {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c.TransactionCode)
	}
	b.WriteString("verification_requests:\n")
	for i, c := range ledger.VerificationRequests {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
	}
	b.WriteString("bookings:\n")
	for i, bk := range ledger.Bookings {
		fmt.Fprintf(&b, "  %d. %s %s %s (code %d)\n", i+1, bk.Event, bk.Day, bk.Time, bk.BookingCode)
	}
	return b.String()
}

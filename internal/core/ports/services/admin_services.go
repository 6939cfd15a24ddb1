package services

import (
	"context"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
)

// LedgerAdminSvcFacade exposes operator maintenance of the ledger
// document: export, reset and the raw snapshot served by the admin API.
type LedgerAdminSvcFacade interface {
	// Snapshot returns the current ledger with expired bookings evicted.
	Snapshot(ctx context.Context) (*domain.Ledger, error)

	// ExportDocument returns the serialized ledger plus a readable
	// summary, for sending to the operator as a file attachment.
	ExportDocument(ctx context.Context) (dto.ExportResult, error)

	// Reset hard-deletes the backing ledger file. The two-step
	// confirm/cancel interaction lives at the transport boundary.
	Reset(ctx context.Context) error
}

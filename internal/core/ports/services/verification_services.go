package services

import (
	"context"

	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
)

// VerificationSvcFacade is the reconciliation state machine between
// operator-confirmed payments and user verification requests.
type VerificationSvcFacade interface {
	// RegisterPaid idempotently records an operator-confirmed code.
	// The returned bool reports whether it was newly added; behavior does
	// not depend on it, it exists for logging.
	RegisterPaid(ctx context.Context, code string) (bool, error)

	// RequestVerification runs one step of the two-phase verify protocol:
	// a first request for a code only records interest (Registered); a
	// repeat request triggers the match check (Matched/Unmatched).
	RequestVerification(ctx context.Context, code string) (dto.MatchResult, error)

	// BulkRegister extracts a transaction code from operator-pasted
	// confirmation text and registers it as paid.
	BulkRegister(ctx context.Context, text string) (dto.BulkResult, error)
}

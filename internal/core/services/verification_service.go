package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/repositories"
	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
	"github.com/habeshapay/telebirr_verify_bot/internal/parser"
)

// VerificationService reconciles operator-confirmed payments against user
// verification requests on the shared ledger.
type VerificationService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	logger     *slog.Logger
}

func NewVerificationService(ledgerRepo portsrepo.LedgerRepositoryFacade, logger *slog.Logger) *VerificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VerificationService{ledgerRepo: ledgerRepo, logger: logger}
}

// RegisterPaid idempotently records an operator-confirmed transaction code.
func (s *VerificationService) RegisterPaid(ctx context.Context, code string) (bool, error) {
	added, err := s.ledgerRepo.AddPaidCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to register paid code: %w", err)
	}
	if !added {
		s.logger.Info("paid code already registered", slog.String("code", code))
	}
	return added, nil
}

// RequestVerification runs one step of the two-phase verify protocol. The
// first request for a code only records interest; a repeat request
// triggers the match check against the paid codes. Collapsing this into
// one-shot matching would change the reconciliation semantics between user
// and operator actions, so the two-call contract is fixed.
func (s *VerificationService) RequestVerification(ctx context.Context, code string) (dto.MatchResult, error) {
	// Expired bookings are purged on every verification pass, whatever
	// the outcome.
	if _, err := s.ledgerRepo.EvictExpiredBookings(ctx, time.Now()); err != nil {
		s.logger.Warn("booking eviction failed during verification", slog.String("error", err.Error()))
	}

	added, err := s.ledgerRepo.AddVerificationRequest(ctx, code)
	if err != nil {
		return dto.MatchResult{}, fmt.Errorf("failed to record verification request: %w", err)
	}
	if added {
		s.logger.Info("verification request recorded", slog.String("code", code))
		return dto.MatchResult{Outcome: dto.OutcomeRegistered, Code: code}, nil
	}

	ledger, err := s.ledgerRepo.Open(ctx)
	if err != nil {
		return dto.MatchResult{}, fmt.Errorf("failed to open ledger for match check: %w", err)
	}
	if ledger.HasPaidCode(code) {
		return dto.MatchResult{
			Outcome: dto.OutcomeMatched,
			Code:    code,
			Link:    ledger.Links["link1"],
		}, nil
	}
	return dto.MatchResult{Outcome: dto.OutcomeUnmatched, Code: code}, nil
}

// BulkRegister extracts a transaction code from operator-pasted
// confirmation text and stores it as paid, idempotently.
func (s *VerificationService) BulkRegister(ctx context.Context, text string) (dto.BulkResult, error) {
	entry, err := parser.ExtractBulkEntry(text)
	if err != nil {
		return dto.BulkResult{}, fmt.Errorf("bulk entry extraction failed: %w", err)
	}

	added, err := s.ledgerRepo.AddPaidCode(ctx, entry.Code)
	if err != nil {
		return dto.BulkResult{}, fmt.Errorf("failed to store bulk paid code: %w", err)
	}

	result := dto.BulkResult{Code: entry.Code, Amount: entry.Amount.StringFixed(2)}
	if added {
		result.Outcome = dto.BulkStored
		s.logger.Info("paid code stored from bulk entry",
			slog.String("code", entry.Code), slog.String("amount", result.Amount))
	} else {
		result.Outcome = dto.BulkAlreadyStored
		s.logger.Info("bulk entry code already stored", slog.String("code", entry.Code))
	}
	return result, nil
}

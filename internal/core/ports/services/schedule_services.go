package services

import (
	"context"

	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
)

// ScheduleSvcFacade manages the links and recurring-event sections of the
// ledger.
type ScheduleSvcFacade interface {
	// SetLink stores a named external URL (link1, link2, ...).
	SetLink(ctx context.Context, name, url string) error

	// AddEntry validates and stores a schedule entry. A duplicate details
	// string returns apperrors.ErrDuplicate without mutating the ledger.
	AddEntry(ctx context.Context, req dto.ScheduleEntryRequest) error

	// RemoveEntries drops entries whose details contain term
	// case-insensitively; reports how many were removed.
	RemoveEntries(ctx context.Context, term string) (int, error)

	// ListEntries returns all schedule entries prepared for display.
	ListEntries(ctx context.Context) ([]dto.ScheduleEntryResponse, error)
}

package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/habeshapay/telebirr_verify_bot/internal/apperrors"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
	portsrepo "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/repositories"
	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
)

// hhmmPattern accepts 24-hour times between 0000 and 2359.
var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3])[0-5]\d$`)

// ScheduleService manages the links and recurring-event sections of the
// ledger.
type ScheduleService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	validate   *validator.Validate
}

func NewScheduleService(ledgerRepo portsrepo.LedgerRepositoryFacade) *ScheduleService {
	return &ScheduleService{
		ledgerRepo: ledgerRepo,
		validate:   validator.New(),
	}
}

// SetLink stores a named external URL; last write wins.
func (s *ScheduleService) SetLink(ctx context.Context, name, url string) error {
	if name == "" || url == "" {
		return fmt.Errorf("%w: link name and value are required", apperrors.ErrValidation)
	}
	if err := s.ledgerRepo.SetLink(ctx, name, url); err != nil {
		return fmt.Errorf("failed to set link %s: %w", name, err)
	}
	return nil
}

// AddEntry validates and stores a schedule entry. The entry's identity is
// the joined details string; a duplicate returns ErrDuplicate without
// mutating the ledger. The entry snapshots the links configured at the
// time it is added.
func (s *ScheduleService) AddEntry(ctx context.Context, req dto.ScheduleEntryRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: provide all details: event, day and time", apperrors.ErrValidation)
	}
	if !hhmmPattern.MatchString(req.TimeOfDay) {
		return fmt.Errorf("%w: time must be four digits between 0000 and 2359", apperrors.ErrValidation)
	}

	ledger, err := s.ledgerRepo.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open ledger for schedule entry: %w", err)
	}
	entry := domain.ScheduleEntry{
		Details: strings.Join([]string{req.Event, req.Day, req.TimeOfDay}, " "),
		Links: map[string]string{
			"link1": ledger.Links["link1"],
			"link2": ledger.Links["link2"],
		},
	}

	added, err := s.ledgerRepo.UpsertScheduleEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to store schedule entry: %w", err)
	}
	if !added {
		return fmt.Errorf("%w: schedule entry %q", apperrors.ErrDuplicate, entry.Details)
	}
	return nil
}

// RemoveEntries drops entries whose details contain term,
// case-insensitively.
func (s *ScheduleService) RemoveEntries(ctx context.Context, term string) (int, error) {
	if strings.TrimSpace(term) == "" {
		return 0, fmt.Errorf("%w: removal term is required", apperrors.ErrValidation)
	}
	removed, err := s.ledgerRepo.RemoveScheduleEntries(ctx, term)
	if err != nil {
		return 0, fmt.Errorf("failed to remove schedule entries: %w", err)
	}
	return removed, nil
}

// ListEntries returns all schedule entries prepared for display, with the
// time of day rendered on a 12-hour clock.
func (s *ScheduleService) ListEntries(ctx context.Context) ([]dto.ScheduleEntryResponse, error) {
	ledger, err := s.ledgerRepo.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger for schedule listing: %w", err)
	}

	entries := make([]dto.ScheduleEntryResponse, 0, len(ledger.Schedule))
	for _, e := range ledger.Schedule {
		fields := strings.Fields(e.Details)
		if len(fields) != 3 {
			continue
		}
		entries = append(entries, dto.ScheduleEntryResponse{
			Event:       fields[0],
			Day:         fields[1],
			TimeDisplay: formatTimeOfDay(fields[2]),
			Details:     e.Details,
			Links:       e.Links,
		})
	}
	return entries, nil
}

// formatTimeOfDay renders an HHMM string as e.g. "3:30 PM". Unparseable
// input is returned as-is rather than dropped.
func formatTimeOfDay(hhmm string) string {
	t, err := time.Parse("1504", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

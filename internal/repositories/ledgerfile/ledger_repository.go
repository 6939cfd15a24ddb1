// Package ledgerfile implements the ledger repository on a single flat
// YAML document per calendar day. The file is loaded whole, mutated in
// memory and written back whole; a mutex serializes every operation,
// including the day-rotation rename, because read-modify-write on a whole
// file has no isolation otherwise.
package ledgerfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
)

const (
	filePrefix = "data"
	fileExt    = ".yaml"
	dateLayout = "2006-01-02"
)

// LedgerRepository owns the on-disk ledger document.
type LedgerRepository struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger

	mu sync.Mutex
}

// NewLedgerRepository returns a repository rooted at dir. A zero ttl
// falls back to the default 10-minute booking window.
func NewLedgerRepository(dir string, ttl time.Duration, logger *slog.Logger) *LedgerRepository {
	if ttl <= 0 {
		ttl = domain.DefaultBookingTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerRepository{dir: dir, ttl: ttl, logger: logger}
}

// BookingTTL returns the configured booking validity window.
func (r *LedgerRepository) BookingTTL() time.Duration {
	return r.ttl
}

func (r *LedgerRepository) fileForDate(date time.Time) string {
	return filepath.Join(r.dir, filePrefix+date.Format(dateLayout)+fileExt)
}

func (r *LedgerRepository) ledgerFiles() []string {
	matches, err := filepath.Glob(filepath.Join(r.dir, filePrefix+"*"+fileExt))
	if err != nil {
		// Only possible with a malformed pattern; the pattern is fixed.
		return nil
	}
	return matches
}

// rotateLocked renames a stale-dated ledger file forward to today's name.
// Rotation renames, never deletes: the same logical ledger is carried day
// to day under a fresh filename. Caller holds the mutex.
func (r *LedgerRepository) rotateLocked(now time.Time) {
	todayPath := r.fileForDate(now)
	for _, path := range r.ledgerFiles() {
		if path == todayPath {
			continue
		}
		if _, err := os.Stat(todayPath); err == nil {
			// Both a stale and a current file exist; renaming would
			// clobber today's data, so leave the stale file alone.
			r.logger.Warn("stale ledger file left in place, today's file already exists",
				slog.String("stale", path), slog.String("current", todayPath))
			continue
		}
		if err := os.Rename(path, todayPath); err != nil {
			r.logger.Error("ledger rotation failed",
				slog.String("from", path), slog.String("to", todayPath), slog.String("error", err.Error()))
			continue
		}
		r.logger.Info("ledger rotated forward",
			slog.String("from", filepath.Base(path)), slog.String("to", filepath.Base(todayPath)))
	}
}

// openLocked loads today's ledger. Missing, unreadable or malformed files
// all degrade to an empty ledger with a log entry; open never fails.
func (r *LedgerRepository) openLocked(now time.Time) *domain.Ledger {
	r.rotateLocked(now)

	path := r.fileForDate(now)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("ledger file unreadable, starting from empty ledger",
				slog.String("path", path), slog.String("error", err.Error()))
		}
		return domain.NewLedger()
	}

	ledger := domain.NewLedger()
	if err := yaml.Unmarshal(raw, ledger); err != nil {
		r.logger.Warn("ledger file malformed, starting from empty ledger",
			slog.String("path", path), slog.String("error", err.Error()))
		return domain.NewLedger()
	}
	ledger.Normalize()
	return ledger
}

// saveLocked writes the full document for today. The marshal goes to a
// temp file first and is renamed into place, so readers never observe a
// torn write. Caller holds the mutex.
func (r *LedgerRepository) saveLocked(ledger *domain.Ledger, now time.Time) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	raw, err := yaml.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to serialize ledger: %w", err)
	}
	path := r.fileForDate(now)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}

// Open loads the current day's ledger, rotating any stale file forward
// first.
func (r *LedgerRepository) Open(ctx context.Context) (*domain.Ledger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openLocked(time.Now()), nil
}

// Save overwrites today's ledger file with the given document.
func (r *LedgerRepository) Save(ctx context.Context, ledger *domain.Ledger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ledger, time.Now())
}

// SetLink stores a named external URL and persists the ledger.
func (r *LedgerRepository) SetLink(ctx context.Context, name, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ledger := r.openLocked(now)
	ledger.SetLink(name, url)
	return r.saveLocked(ledger, now)
}

// UpsertScheduleEntry adds entry unless one with the same details exists.
func (r *LedgerRepository) UpsertScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ledger := r.openLocked(now)
	if !ledger.UpsertScheduleEntry(entry) {
		return false, nil
	}
	if err := r.saveLocked(ledger, now); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveScheduleEntries drops matching entries and persists the result.
func (r *LedgerRepository) RemoveScheduleEntries(ctx context.Context, term string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ledger := r.openLocked(now)
	removed := ledger.RemoveScheduleEntries(term)
	if removed == 0 {
		return 0, nil
	}
	if err := r.saveLocked(ledger, now); err != nil {
		return 0, err
	}
	return removed, nil
}

// AddPaidCode appends an operator-confirmed code idempotently.
func (r *LedgerRepository) AddPaidCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ledger := r.openLocked(now)
	if !ledger.AddPaidCode(code) {
		return false, nil
	}
	if err := r.saveLocked(ledger, now); err != nil {
		return false, err
	}
	return true, nil
}

// AddVerificationRequest appends a user-requested code idempotently.
func (r *LedgerRepository) AddVerificationRequest(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ledger := r.openLocked(now)
	if !ledger.AddVerificationRequest(code) {
		return false, nil
	}
	if err := r.saveLocked(ledger, now); err != nil {
		return false, err
	}
	return true, nil
}

// AddBooking appends a booking and persists the ledger.
func (r *LedgerRepository) AddBooking(ctx context.Context, booking domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ledger := r.openLocked(now)
	ledger.Bookings = append(ledger.Bookings, booking)
	return r.saveLocked(ledger, now)
}

// EvictExpiredBookings durably drops bookings past the TTL as of now. The
// purge is persisted so it is not just filtered in memory.
func (r *LedgerRepository) EvictExpiredBookings(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledger := r.openLocked(now)
	evicted := ledger.EvictExpiredBookings(now, r.ttl)
	if evicted == 0 {
		return 0, nil
	}
	if err := r.saveLocked(ledger, now); err != nil {
		return 0, err
	}
	return evicted, nil
}

// Reset deletes every ledger file in the data directory.
func (r *LedgerRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, path := range r.ledgerFiles() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete ledger file %s: %w", path, err)
		}
		r.logger.Info("ledger file deleted", slog.String("path", path))
	}
	return nil
}

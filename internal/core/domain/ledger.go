package domain

import (
	"strings"
	"time"
)

// DefaultBookingTTL is the validity window for a booking before it is
// evicted from the ledger.
const DefaultBookingTTL = 10 * time.Minute

// Ledger is the day-scoped document holding every persistent collection the
// bot works with. It is loaded whole, mutated in memory and written back
// whole; there is no partial update path.
type Ledger struct {
	Links                map[string]string `yaml:"links" json:"links"`
	Schedule             []ScheduleEntry   `yaml:"schedule" json:"schedule"`
	PaidCodes            []PaidCode        `yaml:"paid_codes" json:"paidCodes"`
	VerificationRequests []string          `yaml:"verification_requests" json:"verificationRequests"`
	Bookings             []Booking         `yaml:"bookings" json:"bookings"`
}

// NewLedger returns an empty ledger with all collections initialized, so a
// missing file on disk and a fresh day start from the same state.
func NewLedger() *Ledger {
	return &Ledger{
		Links:                map[string]string{},
		Schedule:             []ScheduleEntry{},
		PaidCodes:            []PaidCode{},
		VerificationRequests: []string{},
		Bookings:             []Booking{},
	}
}

// Normalize initializes any nil collection. Needed after unmarshalling a
// hand-edited or truncated document.
func (l *Ledger) Normalize() {
	if l.Links == nil {
		l.Links = map[string]string{}
	}
	if l.Schedule == nil {
		l.Schedule = []ScheduleEntry{}
	}
	if l.PaidCodes == nil {
		l.PaidCodes = []PaidCode{}
	}
	if l.VerificationRequests == nil {
		l.VerificationRequests = []string{}
	}
	if l.Bookings == nil {
		l.Bookings = []Booking{}
	}
}

// PaidCode is a transaction code an operator has confirmed as received
// payment. Entries are append-only and never expire.
type PaidCode struct {
	TransactionCode string `yaml:"transaction_code" json:"transactionCode"`
}

// ScheduleEntry is one recurring event, identified by its joined details
// string, carrying a snapshot of the links at the time it was added.
type ScheduleEntry struct {
	Details string            `yaml:"details" json:"details"`
	Links   map[string]string `yaml:"links" json:"links"`
}

// Booking is a time-boxed reservation with a random 4-digit confirmation
// code. There is no uniqueness constraint on the code.
type Booking struct {
	BookingID   string    `yaml:"booking_id" json:"bookingID"`
	Event       string    `yaml:"event" json:"event"`
	Day         string    `yaml:"day" json:"day"`
	Time        string    `yaml:"time" json:"time"`
	BookingTime time.Time `yaml:"booking_time" json:"bookingTime"`
	BookingCode int       `yaml:"booking_code" json:"bookingCode"`
}

// ExpiredAt reports whether the booking has outlived ttl at the given
// instant.
func (b Booking) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(b.BookingTime) > ttl
}

// HasPaidCode reports whether code has been confirmed by an operator.
func (l *Ledger) HasPaidCode(code string) bool {
	for _, pc := range l.PaidCodes {
		if pc.TransactionCode == code {
			return true
		}
	}
	return false
}

// AddPaidCode appends code to the paid collection. It reports whether the
// code was newly added; a repeat registration is a no-op.
func (l *Ledger) AddPaidCode(code string) bool {
	if l.HasPaidCode(code) {
		return false
	}
	l.PaidCodes = append(l.PaidCodes, PaidCode{TransactionCode: code})
	return true
}

// HasVerificationRequest reports whether a user has already asked about
// code.
func (l *Ledger) HasVerificationRequest(code string) bool {
	for _, c := range l.VerificationRequests {
		if c == code {
			return true
		}
	}
	return false
}

// AddVerificationRequest records a user's interest in code, idempotently.
func (l *Ledger) AddVerificationRequest(code string) bool {
	if l.HasVerificationRequest(code) {
		return false
	}
	l.VerificationRequests = append(l.VerificationRequests, code)
	return true
}

// SetLink stores a named external URL; last write wins.
func (l *Ledger) SetLink(name, url string) {
	if l.Links == nil {
		l.Links = map[string]string{}
	}
	l.Links[name] = url
}

// UpsertScheduleEntry appends entry unless one with the same details string
// already exists. It reports whether the entry was added.
func (l *Ledger) UpsertScheduleEntry(entry ScheduleEntry) bool {
	for _, e := range l.Schedule {
		if e.Details == entry.Details {
			return false
		}
	}
	l.Schedule = append(l.Schedule, entry)
	return true
}

// RemoveScheduleEntries drops every entry whose details contain term,
// case-insensitively, and returns how many were removed.
func (l *Ledger) RemoveScheduleEntries(term string) int {
	lower := strings.ToLower(term)
	kept := l.Schedule[:0]
	removed := 0
	for _, e := range l.Schedule {
		if strings.Contains(strings.ToLower(e.Details), lower) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	l.Schedule = kept
	return removed
}

// EvictExpiredBookings drops bookings older than ttl at the given instant
// and returns how many were evicted.
func (l *Ledger) EvictExpiredBookings(now time.Time, ttl time.Duration) int {
	kept := l.Bookings[:0]
	evicted := 0
	for _, b := range l.Bookings {
		if b.ExpiredAt(now, ttl) {
			evicted++
			continue
		}
		kept = append(kept, b)
	}
	l.Bookings = kept
	return evicted
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingExpiredAtBoundary(t *testing.T) {
	created := time.Now()
	booking := Booking{BookingID: "b-1", BookingTime: created}

	assert.False(t, booking.ExpiredAt(created.Add(9*time.Minute+59*time.Second), DefaultBookingTTL))
	assert.False(t, booking.ExpiredAt(created.Add(10*time.Minute), DefaultBookingTTL),
		"a booking at exactly the TTL boundary is still alive")
	assert.True(t, booking.ExpiredAt(created.Add(10*time.Minute+time.Second), DefaultBookingTTL))
}

func TestEvictExpiredBookingsKeepsOrder(t *testing.T) {
	now := time.Now()
	ledger := NewLedger()
	ledger.Bookings = []Booking{
		{BookingID: "old", BookingTime: now.Add(-11 * time.Minute)},
		{BookingID: "fresh", BookingTime: now.Add(-time.Minute)},
		{BookingID: "stale", BookingTime: now.Add(-15 * time.Minute)},
		{BookingID: "newest", BookingTime: now},
	}

	evicted := ledger.EvictExpiredBookings(now, DefaultBookingTTL)

	assert.Equal(t, 2, evicted)
	assert.Len(t, ledger.Bookings, 2)
	assert.Equal(t, "fresh", ledger.Bookings[0].BookingID)
	assert.Equal(t, "newest", ledger.Bookings[1].BookingID)
}

func TestNormalizeInitializesNilCollections(t *testing.T) {
	var ledger Ledger
	ledger.Normalize()

	assert.NotNil(t, ledger.Links)
	assert.NotNil(t, ledger.Schedule)
	assert.NotNil(t, ledger.PaidCodes)
	assert.NotNil(t, ledger.VerificationRequests)
	assert.NotNil(t, ledger.Bookings)
}

func TestRemoveScheduleEntriesMatchesSubstring(t *testing.T) {
	ledger := NewLedger()
	ledger.UpsertScheduleEntry(ScheduleEntry{Details: "Dr.Kiros Friday 1530"})
	ledger.UpsertScheduleEntry(ScheduleEntry{Details: "Dr.Hana Sunday 0900"})
	ledger.UpsertScheduleEntry(ScheduleEntry{Details: "Dr.Kiros Sunday 1800"})

	removed := ledger.RemoveScheduleEntries("kiros")

	assert.Equal(t, 2, removed)
	assert.Len(t, ledger.Schedule, 1)
	assert.Equal(t, "Dr.Hana Sunday 0900", ledger.Schedule[0].Details)
}

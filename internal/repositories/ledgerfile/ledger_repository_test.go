package ledgerfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
)

func newTestRepo(t *testing.T) (*LedgerRepository, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLedgerRepository(dir, 0, logger), dir
}

func TestOpenMissingFileYieldsEmptyLedger(t *testing.T) {
	repo, _ := newTestRepo(t)

	ledger, err := repo.Open(context.Background())
	require.NoError(t, err, "a missing file is the expected empty-ledger case")
	assert.NotNil(t, ledger.Links)
	assert.Empty(t, ledger.Schedule)
	assert.Empty(t, ledger.PaidCodes)
	assert.Empty(t, ledger.VerificationRequests)
	assert.Empty(t, ledger.Bookings)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	bookingTime := time.Now().UTC().Truncate(time.Second)
	original := domain.NewLedger()
	original.SetLink("link1", "t.me/achannelname")
	original.SetLink("link2", "t.me/somelink")
	original.UpsertScheduleEntry(domain.ScheduleEntry{
		Details: "Dr.Kiros Friday 1530",
		Links:   map[string]string{"link1": "t.me/achannelname", "link2": "t.me/somelink"},
	})
	original.AddPaidCode("BCL3GHPES3")
	original.AddVerificationRequest("BCL0H88HN9")
	original.Bookings = append(original.Bookings, domain.Booking{
		BookingID:   "b-1",
		Event:       "Dr.Kiros",
		Day:         "Friday",
		Time:        "3:30 PM",
		BookingTime: bookingTime,
		BookingCode: 4242,
	})

	require.NoError(t, repo.Save(ctx, original))

	loaded, err := repo.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, original.Links, loaded.Links)
	assert.Equal(t, original.Schedule, loaded.Schedule)
	assert.Equal(t, original.PaidCodes, loaded.PaidCodes)
	assert.Equal(t, original.VerificationRequests, loaded.VerificationRequests)
	require.Len(t, loaded.Bookings, 1)
	assert.Equal(t, 4242, loaded.Bookings[0].BookingCode)
	assert.True(t, bookingTime.Equal(loaded.Bookings[0].BookingTime))
}

func TestAddPaidCodeIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddPaidCode(ctx, "BCL3GHPES3")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddPaidCode(ctx, "BCL3GHPES3")
	require.NoError(t, err)
	assert.False(t, added, "repeat registration is a no-op")

	ledger, err := repo.Open(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.PaidCodes, 1)
}

func TestAddVerificationRequestIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddVerificationRequest(ctx, "ABCDEFGHJ1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddVerificationRequest(ctx, "ABCDEFGHJ1")
	require.NoError(t, err)
	assert.False(t, added)

	ledger, err := repo.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABCDEFGHJ1"}, ledger.VerificationRequests)
}

func TestRotationCarriesDataForward(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	stale := domain.NewLedger()
	stale.SetLink("link1", "t.me/achannelname")
	stale.AddPaidCode("BCL3GHPES3")
	stale.AddVerificationRequest("ABCDEFGHJ1")
	raw, err := yaml.Marshal(stale)
	require.NoError(t, err)

	yesterday := time.Now().AddDate(0, 0, -1)
	stalePath := filepath.Join(dir, filePrefix+yesterday.Format(dateLayout)+fileExt)
	require.NoError(t, os.WriteFile(stalePath, raw, 0o644))

	ledger, err := repo.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t.me/achannelname", ledger.Links["link1"])
	assert.True(t, ledger.HasPaidCode("BCL3GHPES3"))
	assert.True(t, ledger.HasVerificationRequest("ABCDEFGHJ1"))

	_, err = os.Stat(stalePath)
	assert.True(t, os.IsNotExist(err), "the stale file should have been renamed, not copied")
	todayPath := filepath.Join(dir, filePrefix+time.Now().Format(dateLayout)+fileExt)
	_, err = os.Stat(todayPath)
	assert.NoError(t, err, "today's file should exist after rotation")
}

func TestOpenMalformedFileRecoversEmpty(t *testing.T) {
	repo, dir := newTestRepo(t)

	todayPath := filepath.Join(dir, filePrefix+time.Now().Format(dateLayout)+fileExt)
	require.NoError(t, os.WriteFile(todayPath, []byte("links: [not: valid: yaml"), 0o644))

	ledger, err := repo.Open(context.Background())
	require.NoError(t, err, "a malformed file must not propagate as a crash")
	assert.Empty(t, ledger.PaidCodes)
}

func TestRemoveScheduleEntriesCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, details := range []string{"Dr.Kiros Friday 1530", "Dr.Hana Sunday 1800"} {
		added, err := repo.UpsertScheduleEntry(ctx, domain.ScheduleEntry{Details: details})
		require.NoError(t, err)
		require.True(t, added)
	}

	removed, err := repo.RemoveScheduleEntries(ctx, "FRIDAY")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// Reopen through a fresh repository to prove the removal persisted.
	repo2 := NewLedgerRepository(repo.dir, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ledger, err := repo2.Open(ctx)
	require.NoError(t, err)
	require.Len(t, ledger.Schedule, 1)
	assert.Equal(t, "Dr.Hana Sunday 1800", ledger.Schedule[0].Details)
}

func TestUpsertScheduleEntryDuplicate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	entry := domain.ScheduleEntry{Details: "Dr.Kiros Friday 1530"}

	added, err := repo.UpsertScheduleEntry(ctx, entry)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.UpsertScheduleEntry(ctx, entry)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestBookingEvictionWindow(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created := time.Now()
	require.NoError(t, repo.AddBooking(ctx, domain.Booking{
		BookingID:   "b-1",
		Event:       "Dr.Kiros",
		BookingTime: created,
		BookingCode: 1234,
	}))

	evicted, err := repo.EvictExpiredBookings(ctx, created.Add(9*time.Minute+59*time.Second))
	require.NoError(t, err)
	assert.Zero(t, evicted)

	ledger, err := repo.Open(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.Bookings, 1, "booking should survive inside the 10-minute window")

	evicted, err = repo.EvictExpiredBookings(ctx, created.Add(10*time.Minute+time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)

	ledger, err = repo.Open(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.Bookings, "the purge must be durable, not an in-memory filter")
}

func TestResetDeletesLedgerFile(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddPaidCode(ctx, "BCL3GHPES3")
	require.NoError(t, err)
	require.NoError(t, repo.Reset(ctx))

	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileExt))
	require.NoError(t, err)
	assert.Empty(t, matches)

	ledger, err := repo.Open(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.PaidCodes)
}

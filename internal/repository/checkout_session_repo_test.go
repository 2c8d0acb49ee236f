package repository

import (
	"context"
	"testing"
	"time"

	"turfbook/internal/database"
	"turfbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSessionRepo(t *testing.T) *CheckoutSessionRepository {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return NewCheckoutSessionRepository(db)
}

func TestCheckoutSessionRepository_MarkCompletedIdempotent(t *testing.T) {
	repo := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.CheckoutSession{
		BookingID:   5,
		SessionID:   "cs_test_1",
		ClientRef:   "ref-1",
		AmountMinor: 30000,
		Currency:    "inr",
		Status:      domain.CheckoutCreated,
	}))

	paidAt := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	changed, err := repo.MarkCompletedIdempotent(ctx, "cs_test_1", `{"id":"evt_1"}`, paidAt)
	require.NoError(t, err)
	assert.True(t, changed, "first delivery completes the session")

	changed, err = repo.MarkCompletedIdempotent(ctx, "cs_test_1", `{"id":"evt_1"}`, paidAt.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed, "replayed delivery is a no-op")

	got, err := repo.GetBySessionID(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutCompleted, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.WithinDuration(t, paidAt, *got.PaidAt, time.Second, "replay must not move paid_at")
}

func TestCheckoutSessionRepository_UnknownSession(t *testing.T) {
	repo := setupSessionRepo(t)
	ctx := context.Background()

	_, err := repo.GetBySessionID(ctx, "cs_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.MarkCompletedIdempotent(ctx, "cs_missing", "{}", time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

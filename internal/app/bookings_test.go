package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func seedProperty(t *testing.T, store *memStore, ownerID string, active bool) domain.Property {
	t.Helper()
	p := domain.Property{
		ID:         "prop-" + ownerID,
		OwnerID:    ownerID,
		Name:       "Seaside",
		City:       "Lisbon",
		BaseRate:   100,
		TotalRooms: 10,
		Active:     active,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, store.CreateProperty(context.Background(), p))
	return p
}

func TestCreateBooking(t *testing.T) {
	store := newMemStore()
	prop := seedProperty(t, store, "owner-1", true)
	svc := app.NewBookingService(store, store, store, 25)

	b, err := svc.Create(context.Background(), "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID,
		CheckIn:    "2024-01-01",
		CheckOut:   "2024-01-03",
		Guests:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 2, b.Nights)
	assert.Equal(t, int64(100), b.PricePerNight)
	assert.Equal(t, int64(225), b.TotalAmount)
	assert.NotEmpty(t, b.ID)
}

func TestCreateBookingInactiveProperty(t *testing.T) {
	store := newMemStore()
	prop := seedProperty(t, store, "owner-1", false)
	svc := app.NewBookingService(store, store, store, 25)

	_, err := svc.Create(context.Background(), "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID, CheckIn: "2024-01-01", CheckOut: "2024-01-03", Guests: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBookingBadDates(t *testing.T) {
	store := newMemStore()
	prop := seedProperty(t, store, "owner-1", true)
	svc := app.NewBookingService(store, store, store, 25)

	_, err := svc.Create(context.Background(), "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID, CheckIn: "January 1st", CheckOut: "2024-01-03", Guests: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	store := newMemStore()
	prop := seedProperty(t, store, "owner-1", true)
	svc := app.NewBookingService(store, store, store, 25)
	ctx := context.Background()

	b, err := svc.Create(ctx, "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID, CheckIn: "2024-01-01", CheckOut: "2024-01-03", Guests: 1,
	})
	require.NoError(t, err)

	// stranger is rejected before any state change
	_, err = svc.UpdateStatus(ctx, "owner-2", b.ID, "confirmed")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// unknown status is bad input
	_, err = svc.UpdateStatus(ctx, "owner-1", b.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// pending cannot jump straight to completed
	_, err = svc.UpdateStatus(ctx, "owner-1", b.ID, "completed")
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := svc.UpdateStatus(ctx, "owner-1", b.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)

	got, err = svc.UpdateStatus(ctx, "owner-1", b.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)

	// completed is terminal
	_, err = svc.UpdateStatus(ctx, "owner-1", b.ID, "confirmed")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.UpdateStatus(ctx, "owner-1", "missing", "confirmed")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelMine(t *testing.T) {
	store := newMemStore()
	prop := seedProperty(t, store, "owner-1", true)
	svc := app.NewBookingService(store, store, store, 25)
	ctx := context.Background()

	b, err := svc.Create(ctx, "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID, CheckIn: "2024-01-01", CheckOut: "2024-01-03", Guests: 1,
	})
	require.NoError(t, err)

	_, err = svc.CancelMine(ctx, "cust-2", b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.CancelMine(ctx, "cust-1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)

	// already cancelled
	_, err = svc.CancelMine(ctx, "cust-1", b.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "cannot cancel a cancelled booking")

	// completed booking cannot be cancelled either
	b2, err := svc.Create(ctx, "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID, CheckIn: "2024-02-01", CheckOut: "2024-02-03", Guests: 1,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, "owner-1", b2.ID, "confirmed")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, "owner-1", b2.ID, "completed")
	require.NoError(t, err)
	_, err = svc.CancelMine(ctx, "cust-1", b2.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "cannot cancel a completed booking")
}

func TestListMineReviewFlags(t *testing.T) {
	store := newMemStore()
	prop := seedProperty(t, store, "owner-1", true)
	bookings := app.NewBookingService(store, store, store, 25)
	reviews := app.NewReviewService(store, store, store, newFakeCache())
	ctx := context.Background()

	b, err := bookings.Create(ctx, "cust-1", app.CreateBookingInput{
		PropertyID: prop.ID, CheckIn: "2024-01-01", CheckOut: "2024-01-03", Guests: 1,
	})
	require.NoError(t, err)

	out, err := bookings.ListMine(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.False(t, out[0].ReviewSubmitted)
	assert.True(t, out[0].CanReview)

	_, err = reviews.Add(ctx, "cust-1", b.ID, 4, "nice stay")
	require.NoError(t, err)

	out, err = bookings.ListMine(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].ReviewSubmitted)
	assert.False(t, out[0].CanReview)
}

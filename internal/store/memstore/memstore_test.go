package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store"
)

func TestInsertBookingOnePerUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := primitive.NewObjectID()

	require.NoError(t, s.InsertBooking(ctx, &models.Booking{User: user, Dentist: primitive.NewObjectID()}))
	err := s.InsertBooking(ctx, &models.Booking{User: user, Dentist: primitive.NewObjectID()})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	all, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListDentistsNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.InsertDentist(ctx, &models.Dentist{Name: "Dr. A", CreatedAt: base}))
	require.NoError(t, s.InsertDentist(ctx, &models.Dentist{Name: "Dr. B", CreatedAt: base.Add(time.Hour)}))

	list, err := s.ListDentists(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dr. B", list[0].Name)
}

func TestReplaceDentistKeepsNamesUnique(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := &models.Dentist{Name: "Dr. A"}
	b := &models.Dentist{Name: "Dr. B"}
	require.NoError(t, s.InsertDentist(ctx, a))
	require.NoError(t, s.InsertDentist(ctx, b))

	b.Name = "Dr. A"
	assert.ErrorIs(t, s.ReplaceDentist(ctx, b), store.ErrDuplicate)

	a.YearsOfExperience = 3
	assert.NoError(t, s.ReplaceDentist(ctx, a))
}

func TestDeleteBookingsByDentist(t *testing.T) {
	s := New()
	ctx := context.Background()
	dentist := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.InsertBooking(ctx, &models.Booking{User: primitive.NewObjectID(), Dentist: dentist}))
	}
	require.NoError(t, s.InsertBooking(ctx, &models.Booking{User: primitive.NewObjectID(), Dentist: primitive.NewObjectID()}))

	n, err := s.DeleteBookingsByDentist(ctx, dentist)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, err := s.ListBookingsByDentist(ctx, dentist)
	require.NoError(t, err)
	assert.Empty(t, left)
}

package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dental-booking/internal/models"
)

// Stores return store.ErrNotFound for missing records and store.ErrDuplicate
// when a unique index rejects a write.

type UserStore interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
}

type DentistStore interface {
	ListDentists(ctx context.Context) ([]models.Dentist, error)
	FindDentistByID(ctx context.Context, id primitive.ObjectID) (*models.Dentist, error)
	FindDentistByName(ctx context.Context, name string) (*models.Dentist, error)
	FindDentistsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Dentist, error)
	InsertDentist(ctx context.Context, d *models.Dentist) error
	ReplaceDentist(ctx context.Context, d *models.Dentist) error
	DeleteDentist(ctx context.Context, id primitive.ObjectID) error
}

type BookingStore interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByDentist(ctx context.Context, dentistID primitive.ObjectID) ([]models.Booking, error)
	FindBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	FindBookingByUser(ctx context.Context, userID primitive.ObjectID) (*models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
	ReplaceBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, id primitive.ObjectID) error
	DeleteBookingsByDentist(ctx context.Context, dentistID primitive.ObjectID) (int64, error)
}

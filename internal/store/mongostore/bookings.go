package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dental-booking/internal/models"
)

func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, s.bookings, bson.M{}, newestFirst())
}

func (s *Store) ListBookingsByDentist(ctx context.Context, dentistID primitive.ObjectID) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, s.bookings, bson.M{"dentist": dentistID}, newestFirst())
}

func (s *Store) FindBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return findOne[models.Booking](ctx, s.bookings, bson.M{"_id": id})
}

func (s *Store) FindBookingByUser(ctx context.Context, userID primitive.ObjectID) (*models.Booking, error) {
	return findOne[models.Booking](ctx, s.bookings, bson.M{"user": userID})
}

func (s *Store) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := s.bookings.InsertOne(ctx, b)
	return translate(err)
}

// ReplaceBooking persists the mutable fields; the owning user is never rewritten.
func (s *Store) ReplaceBooking(ctx context.Context, b *models.Booking) error {
	res, err := s.bookings.UpdateOne(ctx, bson.M{"_id": b.ID}, bson.M{"$set": bson.M{
		"bookingDate": b.BookingDate,
		"dentist":     b.Dentist,
	}})
	if err != nil {
		return translate(err)
	}
	return requireMatch(res.MatchedCount)
}

func (s *Store) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.bookings.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	return requireMatch(res.DeletedCount)
}

func (s *Store) DeleteBookingsByDentist(ctx context.Context, dentistID primitive.ObjectID) (int64, error) {
	res, err := s.bookings.DeleteMany(ctx, bson.M{"dentist": dentistID})
	if err != nil {
		return 0, translate(err)
	}
	return res.DeletedCount, nil
}

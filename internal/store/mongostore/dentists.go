package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dental-booking/internal/models"
)

func (s *Store) ListDentists(ctx context.Context) ([]models.Dentist, error) {
	return findAll[models.Dentist](ctx, s.dentists, bson.M{}, newestFirst())
}

func (s *Store) FindDentistByID(ctx context.Context, id primitive.ObjectID) (*models.Dentist, error) {
	return findOne[models.Dentist](ctx, s.dentists, bson.M{"_id": id})
}

func (s *Store) FindDentistByName(ctx context.Context, name string) (*models.Dentist, error) {
	return findOne[models.Dentist](ctx, s.dentists, bson.M{"name": name})
}

func (s *Store) FindDentistsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Dentist, error) {
	if len(ids) == 0 {
		return []models.Dentist{}, nil
	}
	return findAll[models.Dentist](ctx, s.dentists, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *Store) InsertDentist(ctx context.Context, d *models.Dentist) error {
	_, err := s.dentists.InsertOne(ctx, d)
	return translate(err)
}

func (s *Store) ReplaceDentist(ctx context.Context, d *models.Dentist) error {
	res, err := s.dentists.UpdateOne(ctx, bson.M{"_id": d.ID}, bson.M{"$set": bson.M{
		"name":              d.Name,
		"areaOfExpertise":   d.AreaOfExpertise,
		"yearsOfExperience": d.YearsOfExperience,
	}})
	if err != nil {
		return translate(err)
	}
	return requireMatch(res.MatchedCount)
}

func (s *Store) DeleteDentist(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.dentists.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	return requireMatch(res.DeletedCount)
}

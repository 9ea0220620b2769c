// Package mongostore persists users, dentists and bookings in MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/dental-booking/internal/store"
)

const (
	usersCollection    = "users"
	dentistsCollection = "dentists"
	bookingsCollection = "bookings"
)

type Store struct {
	users    *mongo.Collection
	dentists *mongo.Collection
	bookings *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:    db.Collection(usersCollection),
		dentists: db.Collection(dentistsCollection),
		bookings: db.Collection(bookingsCollection),
	}
}

// EnsureIndexes creates the unique indexes the invariants rely on.
// The unique index on bookings.user is what actually limits a user to one booking.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.users, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}},
		{s.dentists, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("name_unique"),
		}},
		{s.bookings, mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_unique"),
		}},
		{s.bookings, mongo.IndexModel{
			Keys:    bson.D{{Key: "dentist", Value: 1}},
			Options: options.Index().SetName("dentist"),
		}},
	}
	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// requireMatch turns a zero match count into store.ErrNotFound.
func requireMatch(n int64) error {
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

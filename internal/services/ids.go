package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID reports whether s is a well-formed ObjectID. A malformed id can
// never match a record, so callers treat it as not found.
func parseID(s string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(s)
	return id, err == nil
}

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}

package memstore

import (
	"bytes"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newer orders by creation time descending; ObjectIDs break ties, and since
// they embed a timestamp plus a counter the later insert still comes first.
func newer(a, b time.Time, idA, idB primitive.ObjectID) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return bytes.Compare(idA[:], idB[:]) > 0
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingDate time.Time          `bson:"bookingDate" json:"bookingDate"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Dentist     primitive.ObjectID `bson:"dentist" json:"dentist"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// BookingView is a booking with its user and dentist summaries attached.
// A summary holds only the id when the referenced record no longer exists.
type BookingView struct {
	ID          primitive.ObjectID `json:"id"`
	BookingDate time.Time          `json:"bookingDate"`
	User        *UserSummary       `json:"user"`
	Dentist     *DentistSummary    `json:"dentist"`
	CreatedAt   time.Time          `json:"createdAt"`
}

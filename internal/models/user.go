package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Telephone string             `bson:"telephone" json:"telephone"`
	Role      string             `bson:"role" json:"role"`    // "user" or "admin"
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID   primitive.ObjectID
	Role string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Owns reports whether the identity is the given user or an admin.
func (i Identity) Owns(userID primitive.ObjectID) bool {
	return i.ID == userID || i.IsAdmin()
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}

// UserSummary is the subset of a user attached to booking views.
type UserSummary struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name,omitempty"`
	Email     string             `json:"email,omitempty"`
	Telephone string             `json:"telephone,omitempty"`
	Role      string             `json:"role,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Telephone: u.Telephone, Role: u.Role}
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors the 'users' collection. The password hash is never serialized
// to clients.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Creator is the minimal owner identity attached to property reads. It is a
// deliberate projection: name and email only, never credentials.
type Creator struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

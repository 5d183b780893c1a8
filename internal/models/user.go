package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User account types. A doctor is a regular user whose application was
// approved, tracked by the IsDoctor flag rather than a third type value.
const (
	TypeUser  = "user"
	TypeAdmin = "admin"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName         string             `bson:"fullName" json:"fullName"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"` // Hide from JSON responses
	Phone            string             `bson:"phone" json:"phone"`
	Type             string             `bson:"type" json:"type"` // "user" or "admin"
	IsDoctor         bool               `bson:"isdoctor" json:"isdoctor"`
	Notification     []Notification     `bson:"notification" json:"notification"`         // unseen
	SeenNotification []Notification     `bson:"seennotification" json:"seennotification"` // seen
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Type == TypeAdmin
}

// CanApplyAsDoctor reports whether the user may submit a doctor application:
// only standard users that are not already approved doctors.
func (u *User) CanApplyAsDoctor() bool {
	return u.Type == TypeUser && !u.IsDoctor
}

// Notification is one entry of a user's notification queue. Entries are
// immutable once appended; the owning user can only move them wholesale from
// the unseen queue to the seen queue, or clear both queues.
type Notification struct {
	Type        string    `bson:"type" json:"type"`
	Message     string    `bson:"message" json:"message"`
	Data        bson.M    `bson:"data,omitempty" json:"data,omitempty"`
	OnClickPath string    `bson:"onClickPath,omitempty" json:"onClickPath,omitempty"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

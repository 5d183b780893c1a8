package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor profile approval states.
const (
	DoctorStatusPending  = "pending"
	DoctorStatusApproved = "approved"
	DoctorStatusRejected = "rejected"
)

// Doctor is the practice profile a user submits when applying to be a
// doctor. At most one profile exists per user. Status starts at "pending"
// and only the admin workflow moves it to "approved" or "rejected".
type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	FullName       string             `bson:"fullName" json:"fullName"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Experience     string             `bson:"experience" json:"experience"`
	Fees           float64            `bson:"fees" json:"fees"`
	Timings        []string           `bson:"timings" json:"timings"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

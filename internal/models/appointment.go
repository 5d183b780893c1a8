package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment states. Bookings always start pending; the doctor workflow
// moves them to confirmed or rejected.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusRejected  = "rejected"
)

type Appointment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"` // the patient
	DoctorID  primitive.ObjectID   `bson:"doctorId" json:"doctorId"`
	Date      time.Time            `bson:"date" json:"date"`
	Document  *AppointmentDocument `bson:"document,omitempty" json:"document,omitempty"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt time.Time            `bson:"createdAt,omitempty" json:"createdAt"`
}

// AppointmentDocument records a file the patient attached when booking.
type AppointmentDocument struct {
	Filename string `bson:"filename" json:"filename"`
	Path     string `bson:"path" json:"path"`
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

// MaxDocumentSize caps uploaded appointment documents at 5 MiB.
const MaxDocumentSize = 5 << 20

// BookAppointment books a time slot with an approved doctor. The request is
// a multipart form with doctorId and date fields plus an optional document
// file. The patient is always the authenticated caller; nothing
// client-supplied identifies the patient.
func (h *Handler) BookAppointment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if user.Type != models.TypeUser {
		utils.RespondError(c, http.StatusForbidden, "Only standard users can book appointments")
		return
	}

	doctorIDHex := c.PostForm("doctorId")
	dateStr := c.PostForm("date")
	if doctorIDHex == "" || dateStr == "" {
		utils.RespondError(c, http.StatusBadRequest, "Doctor and date/time are required")
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(doctorIDHex)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid date format, use RFC3339")
		return
	}

	var doctor models.Doctor
	err = h.DB.Collection("doctors").FindOne(c.Request.Context(), bson.M{"_id": doctorID}).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(c, http.StatusNotFound, "Doctor not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error booking appointment")
		return
	}
	if doctor.Status != models.DoctorStatusApproved {
		utils.RespondError(c, http.StatusBadRequest, "Cannot book appointment with a non-approved doctor")
		return
	}

	// Optional document. The size check runs before anything is persisted,
	// so an oversize upload fails the whole request cleanly.
	var document *models.AppointmentDocument
	file, err := c.FormFile("document")
	switch {
	case err == nil:
		if file.Size > MaxDocumentSize {
			utils.RespondError(c, http.StatusBadRequest, "Document exceeds the 5MB size limit")
			return
		}
		stored := storedFilename(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, stored)); err != nil {
			log.Printf("BookAppointment: saving document failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to store document")
			return
		}
		document = &models.AppointmentDocument{
			Filename: stored,
			Path:     "/uploads/" + stored,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no document attached
	default:
		utils.RespondError(c, http.StatusBadRequest, "Invalid document upload")
		return
	}

	apt := models.Appointment{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		DoctorID:  doctor.ID,
		Date:      date,
		Document:  document,
		Status:    models.AppointmentStatusPending,
		CreatedAt: time.Now(),
	}

	if _, err := h.DB.Collection("appointments").InsertOne(c.Request.Context(), apt); err != nil {
		log.Printf("BookAppointment: insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Error booking appointment")
		return
	}

	// Best effort: a missing doctor account is logged, never a booking error.
	h.NotificationSvc.NotifyUser(c.Request.Context(), doctor.UserID, models.Notification{
		Type:        "new-appointment-request",
		Message:     "New appointment request from " + user.FullName,
		OnClickPath: "/doctor/appointments",
	})

	utils.RespondSuccess(c, http.StatusOK, "Appointment booked, waiting for doctor confirmation", apt)
}

// UserAppointment is an appointment annotated with the doctor's display
// name for list views.
type UserAppointment struct {
	models.Appointment
	DoctorName string `json:"doctorName"`
}

// GetUserAppointments lists the authenticated user's own bookings.
func (h *Handler) GetUserAppointments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if user.Type != models.TypeUser {
		utils.RespondError(c, http.StatusForbidden, "Unauthorized access")
		return
	}

	cursor, err := h.DB.Collection("appointments").Find(c.Request.Context(), bson.M{"userId": user.ID})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching user appointments")
		return
	}
	defer cursor.Close(c.Request.Context())

	var appointments []models.Appointment
	if err := cursor.All(c.Request.Context(), &appointments); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching user appointments")
		return
	}

	// Resolve doctor names in one query.
	doctorIDs := make([]primitive.ObjectID, 0, len(appointments))
	for _, apt := range appointments {
		doctorIDs = append(doctorIDs, apt.DoctorID)
	}
	names := map[primitive.ObjectID]string{}
	if len(doctorIDs) > 0 {
		docCursor, err := h.DB.Collection("doctors").Find(c.Request.Context(), bson.M{"_id": bson.M{"$in": doctorIDs}})
		if err == nil {
			var doctors []models.Doctor
			if err := docCursor.All(c.Request.Context(), &doctors); err == nil {
				for _, d := range doctors {
					names[d.ID] = d.FullName
				}
			}
		}
	}

	result := make([]UserAppointment, 0, len(appointments))
	for _, apt := range appointments {
		name := names[apt.DoctorID]
		if name == "" {
			name = "Unknown Doctor"
		}
		result = append(result, UserAppointment{Appointment: apt, DoctorName: name})
	}

	utils.RespondSuccess(c, http.StatusOK, "Your appointments", result)
}

// storedFilename builds a unique on-disk name for an upload, stripping any
// path components from the client-supplied name.
func storedFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	return uuid.NewString() + "-" + base
}

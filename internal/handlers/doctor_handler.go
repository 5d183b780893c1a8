package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

type DoctorApplicationRequest struct {
	FullName       string   `json:"fullName" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone" binding:"required"`
	Address        string   `json:"address" binding:"required"`
	Specialization string   `json:"specialization" binding:"required"`
	Experience     string   `json:"experience" binding:"required"`
	Fees           *float64 `json:"fees" binding:"required"` // pointer: zero is a valid fee, absence is not
	Timings        []string `json:"timings" binding:"required,min=1"`
}

// ApplyDoctor submits a doctor profile for admin approval. Only standard
// users without an approved profile may apply, and only one application per
// user is allowed, whatever its status.
func (h *Handler) ApplyDoctor(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.CanApplyAsDoctor() {
		utils.RespondError(c, http.StatusForbidden, "Only standard users can apply as doctor")
		return
	}

	var req struct {
		Doctor DoctorApplicationRequest `json:"doctor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetail(c, http.StatusBadRequest, "Please fill in all required doctor details", err.Error())
		return
	}

	doctors := h.DB.Collection("doctors")

	err := doctors.FindOne(c.Request.Context(), bson.M{"userId": user.ID}).Err()
	if err == nil {
		utils.RespondError(c, http.StatusConflict, "You have already applied for a doctor account")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Printf("ApplyDoctor: lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Error while applying for doctor")
		return
	}

	doctor := models.Doctor{
		ID:             primitive.NewObjectID(),
		UserID:         user.ID,
		FullName:       req.Doctor.FullName,
		Email:          req.Doctor.Email,
		Phone:          req.Doctor.Phone,
		Address:        req.Doctor.Address,
		Specialization: req.Doctor.Specialization,
		Experience:     req.Doctor.Experience,
		Fees:           *req.Doctor.Fees,
		Timings:        req.Doctor.Timings,
		Status:         models.DoctorStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := doctors.InsertOne(c.Request.Context(), doctor); err != nil {
		log.Printf("ApplyDoctor: insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Error while applying for doctor")
		return
	}

	// Best effort: the application stands even if no admin can be notified.
	h.NotificationSvc.NotifyAdmins(c.Request.Context(), models.Notification{
		Type:    "apply-doctor-request",
		Message: doctor.FullName + " has applied for doctor registration",
		Data: bson.M{
			"doctorId": doctor.ID.Hex(),
			"fullName": doctor.FullName,
		},
		OnClickPath: "/admin/doctors",
	})

	utils.RespondSuccess(c, http.StatusCreated, "Doctor registration request sent, waiting for admin approval", nil)
}

// ListApprovedDoctors returns every approved doctor profile for patients to
// browse and book against.
func (h *Handler) ListApprovedDoctors(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if user.Type != models.TypeUser {
		utils.RespondError(c, http.StatusForbidden, "Unauthorized access")
		return
	}

	cursor, err := h.DB.Collection("doctors").Find(
		c.Request.Context(),
		bson.M{"status": models.DoctorStatusApproved},
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching approved doctors")
		return
	}
	defer cursor.Close(c.Request.Context())

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(c.Request.Context(), &doctors); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching approved doctors")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "Approved doctor list", doctors)
}

type UpdateDoctorProfileRequest struct {
	FullName       string   `json:"fullName"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	Specialization string   `json:"specialization"`
	Experience     string   `json:"experience"`
	Fees           *float64 `json:"fees"`
	Timings        []string `json:"timings"`
}

// UpdateDoctorProfile lets an approved doctor change their own profile
// fields. Status and ownership are not updatable here.
func (h *Handler) UpdateDoctorProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.IsDoctor {
		utils.RespondError(c, http.StatusForbidden, "Only doctors can update a doctor profile")
		return
	}

	var req UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.FullName != "" {
		set["fullName"] = req.FullName
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Address != "" {
		set["address"] = req.Address
	}
	if req.Specialization != "" {
		set["specialization"] = req.Specialization
	}
	if req.Experience != "" {
		set["experience"] = req.Experience
	}
	if req.Fees != nil {
		set["fees"] = *req.Fees
	}
	if req.Timings != nil {
		set["timings"] = req.Timings
	}
	if len(set) == 1 {
		utils.RespondError(c, http.StatusBadRequest, "No update fields provided")
		return
	}

	result, err := h.DB.Collection("doctors").UpdateOne(
		c.Request.Context(),
		bson.M{"userId": user.ID},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update doctor profile")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(c, http.StatusNotFound, "Doctor profile not found")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "Doctor profile updated", nil)
}

// GetDoctorAppointments lists the appointments booked against the
// authenticated doctor's own profile.
func (h *Handler) GetDoctorAppointments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.IsDoctor {
		utils.RespondError(c, http.StatusForbidden, "Unauthorized access")
		return
	}

	var doctor models.Doctor
	err := h.DB.Collection("doctors").FindOne(c.Request.Context(), bson.M{"userId": user.ID}).Decode(&doctor)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Doctor profile not found")
		return
	}

	cursor, err := h.DB.Collection("appointments").Find(
		c.Request.Context(),
		bson.M{"doctorId": doctor.ID},
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching appointments")
		return
	}
	defer cursor.Close(c.Request.Context())

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(c.Request.Context(), &appointments); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching appointments")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "Doctor appointments", appointments)
}

type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleAppointmentStatus confirms or rejects an appointment addressed to
// the authenticated doctor, then notifies the patient.
func (h *Handler) HandleAppointmentStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.IsDoctor {
		utils.RespondError(c, http.StatusForbidden, "Only doctors can update appointment status")
		return
	}

	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var req AppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Status is required")
		return
	}
	if req.Status != models.AppointmentStatusConfirmed && req.Status != models.AppointmentStatusRejected {
		utils.RespondError(c, http.StatusBadRequest, "Status must be confirmed or rejected")
		return
	}

	var doctor models.Doctor
	err = h.DB.Collection("doctors").FindOne(c.Request.Context(), bson.M{"userId": user.ID}).Decode(&doctor)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Doctor profile not found")
		return
	}

	appointments := h.DB.Collection("appointments")

	var apt models.Appointment
	err = appointments.FindOne(c.Request.Context(), bson.M{"_id": appointmentID, "doctorId": doctor.ID}).Decode(&apt)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	_, err = appointments.UpdateOne(
		c.Request.Context(),
		bson.M{"_id": apt.ID},
		bson.M{"$set": bson.M{"status": req.Status}},
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	h.NotificationSvc.NotifyUser(c.Request.Context(), apt.UserID, models.Notification{
		Type:        "appointment-status-updated",
		Message:     "Your appointment with " + doctor.FullName + " has been " + req.Status,
		OnClickPath: "/appointments",
	})

	utils.RespondSuccess(c, http.StatusOK, "Appointment "+req.Status, nil)
}

// DownloadAppointmentDocument serves the file attached to one of the
// doctor's own appointments.
func (h *Handler) DownloadAppointmentDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.IsDoctor {
		utils.RespondError(c, http.StatusForbidden, "Unauthorized access")
		return
	}

	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var doctor models.Doctor
	err = h.DB.Collection("doctors").FindOne(c.Request.Context(), bson.M{"userId": user.ID}).Decode(&doctor)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Doctor profile not found")
		return
	}

	var apt models.Appointment
	err = h.DB.Collection("appointments").FindOne(
		c.Request.Context(),
		bson.M{"_id": appointmentID, "doctorId": doctor.ID},
	).Decode(&apt)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if apt.Document == nil {
		utils.RespondError(c, http.StatusNotFound, "No document attached to this appointment")
		return
	}

	c.FileAttachment(filepath.Join(h.UploadDir, apt.Document.Filename), apt.Document.Filename)
}

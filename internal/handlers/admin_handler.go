package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

func (h *Handler) requireAdmin(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	if !user.IsAdmin() {
		utils.RespondError(c, http.StatusForbidden, "Admin access required")
		return nil, false
	}
	return user, true
}

// GetAllUsers lists every account, passwords excluded.
func (h *Handler) GetAllUsers(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	cursor, err := h.DB.Collection("users").Find(
		c.Request.Context(),
		bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}),
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(c.Request.Context())

	users := make([]models.User, 0)
	if err := cursor.All(c.Request.Context(), &users); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching users")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "All users", users)
}

// GetAllDoctors lists every doctor profile, pending and rejected included.
func (h *Handler) GetAllDoctors(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	cursor, err := h.DB.Collection("doctors").Find(c.Request.Context(), bson.M{})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching doctors")
		return
	}
	defer cursor.Close(c.Request.Context())

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(c.Request.Context(), &doctors); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching doctors")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "All doctor profiles", doctors)
}

type DoctorStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeDoctorStatus approves or rejects a pending doctor application.
// Approval flips the owning user's doctor flag; either outcome notifies the
// applicant, best effort.
func (h *Handler) ChangeDoctorStatus(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var req DoctorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Status is required")
		return
	}
	if req.Status != models.DoctorStatusApproved && req.Status != models.DoctorStatusRejected {
		utils.RespondError(c, http.StatusBadRequest, "Status must be approved or rejected")
		return
	}

	doctors := h.DB.Collection("doctors")

	var doctor models.Doctor
	if err := doctors.FindOne(c.Request.Context(), bson.M{"_id": doctorID}).Decode(&doctor); err != nil {
		utils.RespondError(c, http.StatusNotFound, "Doctor profile not found")
		return
	}

	_, err = doctors.UpdateOne(
		c.Request.Context(),
		bson.M{"_id": doctor.ID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update doctor status")
		return
	}

	if req.Status == models.DoctorStatusApproved {
		_, err = h.DB.Collection("users").UpdateOne(
			c.Request.Context(),
			bson.M{"_id": doctor.UserID},
			bson.M{"$set": bson.M{"isdoctor": true}},
		)
		if err != nil {
			log.Printf("ChangeDoctorStatus: could not flag user %s as doctor: %v", doctor.UserID.Hex(), err)
		}
	}

	h.NotificationSvc.NotifyUser(c.Request.Context(), doctor.UserID, models.Notification{
		Type:        "doctor-account-request-updated",
		Message:     "Your doctor account request has been " + req.Status,
		OnClickPath: "/notification",
	})

	utils.RespondSuccess(c, http.StatusOK, "Doctor application "+req.Status, nil)
}

// GetAllAppointments lists every appointment in the system.
func (h *Handler) GetAllAppointments(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	cursor, err := h.DB.Collection("appointments").Find(c.Request.Context(), bson.M{})
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

	utils.RespondSuccess(c, http.StatusOK, "All appointments", appointments)
}

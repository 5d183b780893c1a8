package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func completeApplication() gin.H {
	return gin.H{
		"doctor": gin.H{
			"fullName":       "Dr. Jane Doe",
			"email":          "dr.jane@example.com",
			"phone":          "+123456789",
			"address":        "1 Clinic Street",
			"specialization": "Dermatology",
			"experience":     "5 years",
			"fees":           0, // zero is a valid fee
			"timings":        []string{"09:00", "17:00"},
		},
	}
}

func TestApplyDoctorForbiddenForAdmin(t *testing.T) {
	r := newTestRouter(adminUser())

	w := doJSON(t, r, http.MethodPost, "/api/doctors/apply", completeApplication())

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, decodeResponse(t, w).Success)
}

func TestApplyDoctorForbiddenWhenAlreadyDoctor(t *testing.T) {
	r := newTestRouter(doctorUser())

	w := doJSON(t, r, http.MethodPost, "/api/doctors/apply", completeApplication())

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApplyDoctorUnauthenticated(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, http.MethodPost, "/api/doctors/apply", completeApplication())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplyDoctorMissingFields(t *testing.T) {
	r := newTestRouter(standardUser())

	required := []string{"fullName", "email", "phone", "address", "specialization", "experience", "fees", "timings"}
	for _, field := range required {
		t.Run("missing "+field, func(t *testing.T) {
			body := completeApplication()
			doctor := body["doctor"].(gin.H)
			delete(doctor, field)

			w := doJSON(t, r, http.MethodPost, "/api/doctors/apply", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, decodeResponse(t, w).Success)
		})
	}
}

func TestApplyDoctorMissingBody(t *testing.T) {
	r := newTestRouter(standardUser())

	w := doJSON(t, r, http.MethodPost, "/api/doctors/apply", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListApprovedDoctorsForbiddenForAdmin(t *testing.T) {
	r := newTestRouter(adminUser())

	w := doJSON(t, r, http.MethodGet, "/api/doctors", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateDoctorProfileForbiddenForNonDoctor(t *testing.T) {
	r := newTestRouter(standardUser())

	w := doJSON(t, r, http.MethodPut, "/api/doctor/profile", gin.H{"address": "2 Clinic Street"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleAppointmentStatusValidation(t *testing.T) {
	r := newTestRouter(doctorUser())

	t.Run("invalid appointment id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/doctor/appointments/not-an-id/status", gin.H{"status": "confirmed"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status value", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/doctor/appointments/64b2f0d4e13f7a0012345678/status", gin.H{"status": "done"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forbidden for non-doctor", func(t *testing.T) {
		r := newTestRouter(standardUser())
		w := doJSON(t, r, http.MethodPatch, "/api/doctor/appointments/64b2f0d4e13f7a0012345678/status", gin.H{"status": "confirmed"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

// newTestRouter wires the real routes with an auth stub that injects the
// given user directly, the way AuthMiddleware would after verifying a
// token. These tests only exercise paths that reject before touching the
// database, so the handler runs with a nil DB; mock-deployment tests build
// their own handler and go through newRouterFor.
func newTestRouter(user *models.User) *gin.Engine {
	return newRouterFor(NewHandler(nil, nil, ""), user)
}

func newRouterFor(h *Handler, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/auth/register", h.RegisterUser)
	r.POST("/auth/login", h.Login)

	api := r.Group("/api")
	if user != nil {
		api.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, user)
		})
	}
	api.GET("/profile", h.GetProfile)
	api.POST("/doctors/apply", h.ApplyDoctor)
	api.GET("/doctors", h.ListApprovedDoctors)
	api.POST("/appointments", h.BookAppointment)
	api.GET("/appointments", h.GetUserAppointments)
	api.POST("/notifications/mark-read", h.MarkAllNotificationsRead)
	api.DELETE("/notifications", h.ClearAllNotifications)
	api.GET("/admin/users", h.GetAllUsers)
	api.POST("/admin/doctors/:id/status", h.ChangeDoctorStatus)
	api.PUT("/doctor/profile", h.UpdateDoctorProfile)
	api.PATCH("/doctor/appointments/:id/status", h.HandleAppointmentStatus)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func standardUser() *models.User {
	return &models.User{FullName: "Jane Doe", Email: "jane@example.com", Type: models.TypeUser}
}

func adminUser() *models.User {
	return &models.User{FullName: "Root Admin", Email: "admin@example.com", Type: models.TypeAdmin}
}

func doctorUser() *models.User {
	u := standardUser()
	u.IsDoctor = true
	return u
}

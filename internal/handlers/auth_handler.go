package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

type RegisterUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
	Type     string `json:"type"`
	IsDoctor *bool  `json:"isdoctor"`
}

// RegisterUser creates a new account. The stored type is always "user":
// clients cannot self-assign admin or the doctor flag through this route.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetail(c, http.StatusBadRequest, "Please fill in all required fields", err.Error())
		return
	}

	if req.Type == models.TypeAdmin {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user type specified during registration")
		return
	}
	if req.IsDoctor != nil {
		utils.RespondError(c, http.StatusBadRequest, "Cannot set doctor status during registration")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		ID:               primitive.NewObjectID(),
		FullName:         req.FullName,
		Email:            req.Email,
		Password:         hashedPassword,
		Phone:            req.Phone,
		Type:             models.TypeUser,
		Notification:     []models.Notification{},
		SeenNotification: []models.Notification{},
		CreatedAt:        time.Now(),
	}

	_, err = h.DB.Collection("users").InsertOne(c.Request.Context(), user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		log.Printf("RegisterUser: insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, "Registration successful", nil)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials and issues a 24-hour token. Unknown email
// and wrong password answer identically so the response does not reveal
// which accounts exist.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		log.Printf("Login: could not generate token: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	// The json:"-" tag on Password keeps the hash out of the response, but
	// blank it anyway.
	user.Password = ""
	utils.RespondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the authenticated user's own record.
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "User profile", user)
}

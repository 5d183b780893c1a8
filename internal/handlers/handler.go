package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docbook/docbook-api/internal/services"
)

// Handler carries the shared dependencies of every endpoint: the database
// and the notification service.
type Handler struct {
	DB              *mongo.Database
	NotificationSvc *services.NotificationService

	// UploadDir is where appointment documents are stored on disk.
	UploadDir string
}

func NewHandler(db *mongo.Database, notificationSvc *services.NotificationService, uploadDir string) *Handler {
	return &Handler{
		DB:              db,
		NotificationSvc: notificationSvc,
		UploadDir:       uploadDir,
	}
}

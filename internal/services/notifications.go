package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docbook/docbook-api/internal/models"
)

// NotificationService appends entries to per-user notification queues.
// Delivery is best effort everywhere: callers that just booked or applied
// never fail because a notification could not be written, so every method
// only logs its errors.
type NotificationService struct {
	DB *mongo.Database
}

func NewNotificationService(db *mongo.Database) *NotificationService {
	return &NotificationService{DB: db}
}

// NotifyUser appends one entry to the unseen queue of the given user. The
// append is a single atomic $push, so concurrent notifiers cannot lose each
// other's entries.
func (s *NotificationService) NotifyUser(ctx context.Context, userID primitive.ObjectID, n models.Notification) {
	n.CreatedAt = time.Now()
	res, err := s.DB.Collection("users").UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"notification": n}},
	)
	if err != nil {
		log.Printf("Failed to deliver %q notification to user %s: %v", n.Type, userID.Hex(), err)
		return
	}
	if res.MatchedCount == 0 {
		log.Printf("Notification %q not delivered: user %s not found", n.Type, userID.Hex())
	}
}

// NotifyAdmins appends one entry to every admin account. A deployment
// without any admin gets a log line, not an error.
func (s *NotificationService) NotifyAdmins(ctx context.Context, n models.Notification) {
	n.CreatedAt = time.Now()
	res, err := s.DB.Collection("users").UpdateMany(
		ctx,
		bson.M{"type": models.TypeAdmin},
		bson.M{"$push": bson.M{"notification": n}},
	)
	if err != nil {
		log.Printf("Failed to deliver %q notification to admins: %v", n.Type, err)
		return
	}
	if res.MatchedCount == 0 {
		log.Printf("No admin account found, %q notification dropped", n.Type)
	}
}

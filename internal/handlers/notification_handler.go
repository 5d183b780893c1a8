package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

// MarkAllNotificationsRead moves every unseen notification onto the end of
// the seen queue, preserving order. The move is one server-side pipeline
// update, so entries appended concurrently are never dropped between a read
// and a write.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	// $ifNull covers accounts seeded without the queue fields.
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"seennotification": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$seennotification", bson.A{}}},
				bson.M{"$ifNull": bson.A{"$notification", bson.A{}}},
			}},
			"notification": bson.A{},
		}}},
	}

	var updated models.User
	err := h.DB.Collection("users").FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": user.ID},
		pipeline,
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0}),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error marking notifications as read")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "All unread notifications marked as read", updated)
}

// ClearAllNotifications empties both queues. Calling it twice in a row
// yields the same empty state, so it is safe to retry from the client.
func (h *Handler) ClearAllNotifications(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var updated models.User
	err := h.DB.Collection("users").FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"notification":     bson.A{},
			"seennotification": bson.A{},
		}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0}),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error deleting notifications")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, "All notifications deleted", updated)
}

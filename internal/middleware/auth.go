package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docbook/docbook-api/internal/models"
	"github.com/docbook/docbook-api/internal/utils"
)

const userContextKey = "currentUser"

// AuthMiddleware verifies the bearer token and loads the matching user from
// the database, password excluded. The loaded user is the authorization
// context for everything downstream; any failure rejects the request before
// handler logic runs.
func AuthMiddleware(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		var user models.User
		err = db.Collection("users").FindOne(
			c.Request.Context(),
			bson.M{"_id": userID},
			options.FindOne().SetProjection(bson.M{"password": 0}),
		).Decode(&user)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// CurrentUser returns the authorization context set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// SetCurrentUser attaches a user to the request context directly. Used by
// tests to exercise role checks without a real token.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userContextKey, user)
}

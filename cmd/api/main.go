package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docbook/docbook-api/internal/handlers"
	"github.com/docbook/docbook-api/internal/middleware"
	"github.com/docbook/docbook-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("WARNING: JWT_SECRET is not set, authentication will fail.")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(os.Getenv("MONGO_DATABASE"))
	log.Println("Successfully connected to MongoDB!")

	// One account per email; duplicate registrations surface as a
	// duplicate-key error.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Failed to create unique email index: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// --- Initialize Services and Handlers ---
	notificationSvc := services.NewNotificationService(db)
	h := handlers.NewHandler(db, notificationSvc, uploadDir)

	// --- Gin Router ---
	r := gin.Default()
	r.MaxMultipartMemory = handlers.MaxDocumentSize

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", uploadDir)

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(db))
	{
		apiRoutes.GET("/profile", h.GetProfile)

		apiRoutes.POST("/doctors/apply", h.ApplyDoctor)
		apiRoutes.GET("/doctors", h.ListApprovedDoctors)

		apiRoutes.POST("/appointments", h.BookAppointment)
		apiRoutes.GET("/appointments", h.GetUserAppointments)

		apiRoutes.POST("/notifications/mark-read", h.MarkAllNotificationsRead)
		apiRoutes.DELETE("/notifications", h.ClearAllNotifications)

		adminRoutes := apiRoutes.Group("/admin")
		{
			adminRoutes.GET("/users", h.GetAllUsers)
			adminRoutes.GET("/doctors", h.GetAllDoctors)
			adminRoutes.POST("/doctors/:id/status", h.ChangeDoctorStatus)
			adminRoutes.GET("/appointments", h.GetAllAppointments)
		}

		doctorRoutes := apiRoutes.Group("/doctor")
		{
			doctorRoutes.PUT("/profile", h.UpdateDoctorProfile)
			doctorRoutes.GET("/appointments", h.GetDoctorAppointments)
			doctorRoutes.PATCH("/appointments/:id/status", h.HandleAppointmentStatus)
			doctorRoutes.GET("/appointments/:id/document", h.DownloadAppointmentDocument)
		}
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}

// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"healthcare-waste-api-server/config"
	"healthcare-waste-api-server/internal/api/routes"
	"healthcare-waste-api-server/internal/auth"
	"healthcare-waste-api-server/internal/classify"
	"healthcare-waste-api-server/internal/database"
	"healthcare-waste-api-server/internal/s3"
	"healthcare-waste-api-server/internal/socket"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	auth.JwtSecret = []byte(cfg.JWT.Secret)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to MongoDB
	db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	st := store.NewMongoStore(db)

	// 3. Seed the reference catalogs (disposal methods, training modules)
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.SeedReferenceData(seedCtx, st); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	// 4. Initialize the S3 uploader and the Groq classifier
	uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 uploader: %v", err)
	}
	classifier := classify.NewClassifier(cfg.Groq)

	// 5. WebSocket hub for dashboard push
	wsHub := socket.NewHub()

	// 6. Assemble the router and start serving
	router := routes.SetupRouter(cfg, st, uploader, classifier, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

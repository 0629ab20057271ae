package main

import (
	"context"
	"log"
	"os"

	"github.com/DeshmukhRuturaj/BROKER-FREE/config"
	"github.com/DeshmukhRuturaj/BROKER-FREE/handlers"
	"github.com/DeshmukhRuturaj/BROKER-FREE/routes"
	"github.com/DeshmukhRuturaj/BROKER-FREE/storage"
	"github.com/DeshmukhRuturaj/BROKER-FREE/store"
	"github.com/DeshmukhRuturaj/BROKER-FREE/utils"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.ConnectDB()

	utils.InitRedis()

	userStore := store.NewMongoUserStore(config.GetCollection("users"))
	propertyStore := store.NewMongoPropertyStore(config.GetCollection("properties"))
	if err := userStore.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Failed to create user indexes: %v", err)
	}
	if err := propertyStore.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Failed to create property indexes: %v", err)
	}

	objectStorage := storage.NewS3Storage(context.Background(), storage.Credentials{
		Region:    os.Getenv("AWS_REGION"),
		Bucket:    os.Getenv("AWS_S3_BUCKET"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	})

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.RegisterRoutes(e, routes.Controllers{
		Users:      handlers.NewUserController(userStore),
		Favorites:  handlers.NewFavoriteController(userStore, propertyStore),
		Properties: handlers.NewPropertyController(propertyStore, objectStorage),
		Uploads:    handlers.NewUploadController(objectStorage),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

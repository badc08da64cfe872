package main

import (
	"log"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/routes"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Server-side sessions (24h cookie)
	store := utils.NewSessionStore(utils.NewSessionStorage(cfg))

	// Create Fiber app with the server-rendered views
	engine := html.New("./backend/views", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Static client assets
	app.Static("/", "./public")

	// Setup routes
	routes.SetupRoutes(app, db, store, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}

package main

import (
	"log"

	"visiontrain/config"
	"visiontrain/internal/domain/user"
	"visiontrain/internal/handler"
	"visiontrain/internal/repository"
	"visiontrain/internal/server"
	"visiontrain/internal/services"
	"visiontrain/pkg/database"
	"visiontrain/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	defer l.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&user.User{}); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	trainingService := services.NewTrainingService(cfg, l)

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(&server.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Training: handler.NewTrainingHandler(trainingService),
	})

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

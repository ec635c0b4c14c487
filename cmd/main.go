package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wayfarer-travel/wayfarer-backend/internal/db"
	"github.com/wayfarer-travel/wayfarer-backend/internal/handlers"
	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/middleware"
	"github.com/wayfarer-travel/wayfarer-backend/internal/repos"
	"github.com/wayfarer-travel/wayfarer-backend/internal/server"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
	"github.com/wayfarer-travel/wayfarer-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	tourRepo := repos.NewTourRepo(thePG, log)
	bookingRepo := repos.NewBookingRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	wishlistRepo := repos.NewWishlistRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, bookingRepo, reviewRepo)
	tourService := services.NewTourService(thePG, log, tourRepo, reviewRepo)
	bookingService := services.NewBookingService(thePG, log, bookingRepo, userRepo, tourRepo)
	reviewService := services.NewReviewService(thePG, log, reviewRepo, userRepo, tourRepo, tourService)
	wishlistService := services.NewWishlistService(thePG, log, wishlistRepo, userRepo, tourRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	tourHandler := handlers.NewTourHandler(tourService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	adminHandler := handlers.NewAdminHandler(userService, tourService, bookingService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		UserHandler:     userHandler,
		TourHandler:     tourHandler,
		BookingHandler:  bookingHandler,
		ReviewHandler:   reviewHandler,
		WishlistHandler: wishlistHandler,
		AdminHandler:    adminHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/wayfarer-backend/internal/handlers"
	"github.com/wayfarer-travel/wayfarer-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	TourHandler     *handlers.TourHandler
	BookingHandler  *handlers.BookingHandler
	ReviewHandler   *handlers.ReviewHandler
	WishlistHandler *handlers.WishlistHandler
	AdminHandler    *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		// Tour catalog reads are open to anonymous browsing.
		api.GET("/tours", cfg.TourHandler.List)
		api.GET("/tours/search", cfg.TourHandler.Search)
		api.GET("/tours/top-rated", cfg.TourHandler.TopRated)
		api.GET("/tours/latest", cfg.TourHandler.Latest)
		api.GET("/tours/price-range", cfg.TourHandler.ByPriceRange)
		api.GET("/tours/duration-range", cfg.TourHandler.ByDurationRange)
		api.GET("/tours/category/:category", cfg.TourHandler.ByCategory)
		api.GET("/tours/destination/:destination", cfg.TourHandler.ByDestination)
		api.GET("/tours/difficulty/:difficulty", cfg.TourHandler.ByDifficulty)
		api.GET("/tours/:id", cfg.TourHandler.Get)
		api.GET("/reviews/tour/:tourId", cfg.ReviewHandler.ByTour)
		api.GET("/reviews/tour/:tourId/average", cfg.ReviewHandler.AverageRating)
		api.GET("/reviews/tour/:tourId/count", cfg.ReviewHandler.Count)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.GET("/auth/me", cfg.AuthHandler.Me)
	// User
	protected.PUT("/users/profile", cfg.UserHandler.UpdateProfile)
	// Bookings
	protected.POST("/bookings", cfg.BookingHandler.Create)
	protected.GET("/bookings/my", cfg.BookingHandler.MyBookings)
	protected.GET("/bookings/:id", cfg.BookingHandler.Get)
	protected.DELETE("/bookings/:id", cfg.BookingHandler.Delete)
	// Reviews
	protected.POST("/reviews", cfg.ReviewHandler.Create)
	protected.GET("/reviews/my", cfg.ReviewHandler.MyReviews)
	protected.GET("/reviews/:id", cfg.ReviewHandler.Get)
	protected.PUT("/reviews/:id", cfg.ReviewHandler.Update)
	protected.DELETE("/reviews/:id", cfg.ReviewHandler.Delete)
	// Wishlist
	protected.POST("/wishlist", cfg.WishlistHandler.Add)
	protected.DELETE("/wishlist", cfg.WishlistHandler.Remove)
	protected.GET("/wishlist/my", cfg.WishlistHandler.MyWishlist)
	protected.GET("/wishlist/check/:tourId", cfg.WishlistHandler.Check)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	// Users
	admin.GET("/users", cfg.AdminHandler.ListUsers)
	admin.GET("/users/active", cfg.AdminHandler.ListActiveUsers)
	admin.GET("/users/search", cfg.AdminHandler.SearchUsers)
	admin.GET("/users/:id", cfg.AdminHandler.GetUser)
	admin.PUT("/users/:id", cfg.AdminHandler.UpdateUser)
	admin.DELETE("/users/:id", cfg.AdminHandler.DeleteUser)
	admin.PATCH("/users/:id/activate", cfg.AdminHandler.ActivateUser)
	admin.PATCH("/users/:id/deactivate", cfg.AdminHandler.DeactivateUser)
	// Tours
	admin.GET("/tours", cfg.AdminHandler.ListTours)
	admin.POST("/tours", cfg.AdminHandler.CreateTour)
	admin.PUT("/tours/:id", cfg.AdminHandler.UpdateTour)
	admin.DELETE("/tours/:id", cfg.AdminHandler.DeleteTour)
	admin.PATCH("/tours/:id/activate", cfg.AdminHandler.ActivateTour)
	admin.PATCH("/tours/:id/deactivate", cfg.AdminHandler.DeactivateTour)
	// Bookings
	admin.GET("/bookings", cfg.BookingHandler.List)
	admin.GET("/bookings/user/:userId", cfg.BookingHandler.ByUser)
	admin.GET("/bookings/tour/:tourId", cfg.BookingHandler.ByTour)
	admin.GET("/bookings/status/:status", cfg.BookingHandler.ByStatus)
	admin.GET("/bookings/payment-status/:paymentStatus", cfg.BookingHandler.ByPaymentStatus)
	admin.GET("/bookings/date-range", cfg.BookingHandler.ByDateRange)
	admin.PATCH("/bookings/:id/status", cfg.BookingHandler.SetStatus)
	admin.PATCH("/bookings/:id/payment-status", cfg.BookingHandler.SetPaymentStatus)
	// Reviews
	admin.GET("/reviews", cfg.ReviewHandler.List)
	admin.GET("/reviews/user/:userId", cfg.ReviewHandler.ByUser)
	admin.GET("/reviews/rating/:rating", cfg.ReviewHandler.ByRating)
	// Wishlist
	admin.GET("/wishlist/user/:userId", cfg.WishlistHandler.ByUser)
	admin.GET("/wishlist/tour/:tourId/count", cfg.WishlistHandler.CountForTour)
	// Dashboard
	admin.GET("/dashboard/stats", cfg.AdminHandler.DashboardStats)

	return router
}

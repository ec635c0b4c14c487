package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
)

// AdminHandler groups the management endpoints that only operators can
// reach. Route-level guards live in middleware; nothing here rechecks
// the caller's role.
type AdminHandler struct {
	userService    services.UserService
	tourService    services.TourService
	bookingService services.BookingService
}

func NewAdminHandler(userService services.UserService, tourService services.TourService, bookingService services.BookingService) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		tourService:    tourService,
		bookingService: bookingService,
	}
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.userService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, users)
}

func (ah *AdminHandler) ListActiveUsers(c *gin.Context) {
	users, err := ah.userService.ListActive(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, users)
}

func (ah *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := ah.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (ah *AdminHandler) SearchUsers(c *gin.Context) {
	users, err := ah.userService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, users)
}

func (ah *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	user, err := ah.userService.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (ah *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ah.userService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "User deleted successfully"})
}

func (ah *AdminHandler) ActivateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ah.userService.Activate(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "User activated"})
}

func (ah *AdminHandler) DeactivateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ah.userService.Deactivate(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "User deactivated"})
}

func (ah *AdminHandler) ListTours(c *gin.Context) {
	tours, err := ah.tourService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (ah *AdminHandler) CreateTour(c *gin.Context) {
	var in services.TourInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	tour, err := ah.tourService.Create(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tour)
}

func (ah *AdminHandler) UpdateTour(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.TourInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	tour, err := ah.tourService.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tour)
}

func (ah *AdminHandler) DeleteTour(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ah.tourService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Tour deleted successfully"})
}

func (ah *AdminHandler) ActivateTour(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ah.tourService.Activate(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Tour activated"})
}

func (ah *AdminHandler) DeactivateTour(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ah.tourService.Deactivate(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Tour deactivated"})
}

func (ah *AdminHandler) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	totalUsers, err := ah.userService.TotalCount(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	activeUsers, err := ah.userService.ActiveCount(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	confirmedBookings, err := ah.bookingService.ConfirmedCount(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	totalRevenue, err := ah.bookingService.TotalRevenue(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"total_users":        totalUsers,
		"active_users":       activeUsers,
		"confirmed_bookings": confirmedBookings,
		"total_revenue":      totalRevenue,
	})
}

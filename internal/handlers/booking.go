package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (bh *BookingHandler) Create(c *gin.Context) {
	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	booking, err := bh.bookingService.Create(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, booking)
}

func (bh *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bh.bookingService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, booking)
}

func (bh *BookingHandler) List(c *gin.Context) {
	bookings, err := bh.bookingService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) ByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	bookings, err := bh.bookingService.ByUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) ByTour(c *gin.Context) {
	tourID, ok := parseID(c, "tourId")
	if !ok {
		return
	}
	bookings, err := bh.bookingService.ByTour(c.Request.Context(), tourID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) ByStatus(c *gin.Context) {
	bookings, err := bh.bookingService.ByStatus(c.Request.Context(), types.BookingStatus(c.Param("status")))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) ByPaymentStatus(c *gin.Context) {
	bookings, err := bh.bookingService.ByPaymentStatus(c.Request.Context(), types.PaymentStatus(c.Param("paymentStatus")))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) ByDateRange(c *gin.Context) {
	start, err1 := time.Parse("2006-01-02", c.Query("start"))
	end, err2 := time.Parse("2006-01-02", c.Query("end"))
	if err1 != nil || err2 != nil {
		RespondError(c, apperr.Invalid("start and end query params must be YYYY-MM-DD dates"))
		return
	}
	bookings, err := bh.bookingService.ByTravelDateRange(c.Request.Context(), start, end)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) MyBookings(c *gin.Context) {
	bookings, err := bh.bookingService.MyBookings(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, bookings)
}

func (bh *BookingHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Status types.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	booking, err := bh.bookingService.SetStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, booking)
}

func (bh *BookingHandler) SetPaymentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in struct {
		PaymentStatus types.PaymentStatus `json:"payment_status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	booking, err := bh.bookingService.SetPaymentStatus(c.Request.Context(), id, in.PaymentStatus)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, booking)
}

func (bh *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := bh.bookingService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Booking deleted successfully"})
}

func (bh *BookingHandler) ConfirmedCount(c *gin.Context) {
	count, err := bh.bookingService.ConfirmedCount(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"confirmed_count": count})
}

func (bh *BookingHandler) TotalRevenue(c *gin.Context) {
	revenue, err := bh.bookingService.TotalRevenue(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"total_revenue": revenue})
}

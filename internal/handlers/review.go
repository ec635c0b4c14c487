package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (rh *ReviewHandler) Create(c *gin.Context) {
	var in struct {
		UserID  uuid.UUID `json:"user_id"`
		TourID  uuid.UUID `json:"tour_id"`
		Rating  int       `json:"rating"`
		Comment string    `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	review, err := rh.reviewService.Create(c.Request.Context(), in.UserID, in.TourID, in.Rating, in.Comment)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}

func (rh *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := rh.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}

func (rh *ReviewHandler) List(c *gin.Context) {
	reviews, err := rh.reviewService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reviews)
}

func (rh *ReviewHandler) ByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	reviews, err := rh.reviewService.ByUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reviews)
}

func (rh *ReviewHandler) ByTour(c *gin.Context) {
	tourID, ok := parseID(c, "tourId")
	if !ok {
		return
	}
	reviews, err := rh.reviewService.ByTour(c.Request.Context(), tourID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reviews)
}

func (rh *ReviewHandler) ByRating(c *gin.Context) {
	rating, err := strconv.Atoi(c.Param("rating"))
	if err != nil {
		RespondError(c, apperr.Invalid("rating must be an integer"))
		return
	}
	reviews, err := rh.reviewService.ByRating(c.Request.Context(), rating)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reviews)
}

func (rh *ReviewHandler) MyReviews(c *gin.Context) {
	reviews, err := rh.reviewService.MyReviews(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reviews)
}

func (rh *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	review, err := rh.reviewService.Update(c.Request.Context(), id, in.Rating, in.Comment)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}

func (rh *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rh.reviewService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Review deleted successfully"})
}

func (rh *ReviewHandler) AverageRating(c *gin.Context) {
	tourID, ok := parseID(c, "tourId")
	if !ok {
		return
	}
	avg, err := rh.reviewService.AverageRating(c.Request.Context(), tourID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"average_rating": avg})
}

func (rh *ReviewHandler) Count(c *gin.Context) {
	tourID, ok := parseID(c, "tourId")
	if !ok {
		return
	}
	count, err := rh.reviewService.Count(c.Request.Context(), tourID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"review_count": count})
}

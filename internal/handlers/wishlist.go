package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
)

type WishlistHandler struct {
	wishlistService services.WishlistService
}

func NewWishlistHandler(wishlistService services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, apperr.Unauthorized("no authenticated user in request context"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (wh *WishlistHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in struct {
		TourID uuid.UUID `json:"tour_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	if err := wh.wishlistService.Add(c.Request.Context(), userID, in.TourID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Tour added to wishlist"})
}

func (wh *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in struct {
		TourID uuid.UUID `json:"tour_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	if err := wh.wishlistService.Remove(c.Request.Context(), userID, in.TourID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Tour removed from wishlist"})
}

func (wh *WishlistHandler) ByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	tours, err := wh.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (wh *WishlistHandler) MyWishlist(c *gin.Context) {
	tours, err := wh.wishlistService.MyWishlist(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (wh *WishlistHandler) Check(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tourID, ok := parseID(c, "tourId")
	if !ok {
		return
	}
	exists, err := wh.wishlistService.Exists(c.Request.Context(), userID, tourID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"in_wishlist": exists})
}

func (wh *WishlistHandler) CountForTour(c *gin.Context) {
	tourID, ok := parseID(c, "tourId")
	if !ok {
		return
	}
	count, err := wh.wishlistService.CountForTour(c.Request.Context(), tourID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"wishlist_count": count})
}

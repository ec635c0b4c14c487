package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type TourHandler struct {
	tourService services.TourService
}

func NewTourHandler(tourService services.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, apperr.Invalidf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func (th *TourHandler) List(c *gin.Context) {
	tours, err := th.tourService.ListActive(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tour, err := th.tourService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tour)
}

func (th *TourHandler) ByCategory(c *gin.Context) {
	tours, err := th.tourService.ByCategory(c.Request.Context(), types.TourCategory(c.Param("category")))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) ByDestination(c *gin.Context) {
	tours, err := th.tourService.ByDestination(c.Request.Context(), c.Param("destination"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) ByDifficulty(c *gin.Context) {
	tours, err := th.tourService.ByDifficulty(c.Request.Context(), types.TourDifficulty(c.Param("difficulty")))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) Search(c *gin.Context) {
	tours, err := th.tourService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) ByPriceRange(c *gin.Context) {
	minPrice, err1 := strconv.ParseFloat(c.Query("min"), 64)
	maxPrice, err2 := strconv.ParseFloat(c.Query("max"), 64)
	if err1 != nil || err2 != nil {
		RespondError(c, apperr.Invalid("min and max query params must be numbers"))
		return
	}
	tours, err := th.tourService.ByPriceRange(c.Request.Context(), minPrice, maxPrice)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) ByDurationRange(c *gin.Context) {
	minDuration, err1 := strconv.Atoi(c.Query("min"))
	maxDuration, err2 := strconv.Atoi(c.Query("max"))
	if err1 != nil || err2 != nil {
		RespondError(c, apperr.Invalid("min and max query params must be integers"))
		return
	}
	tours, err := th.tourService.ByDurationRange(c.Request.Context(), minDuration, maxDuration)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) TopRated(c *gin.Context) {
	tours, err := th.tourService.TopRated(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

func (th *TourHandler) Latest(c *gin.Context) {
	tours, err := th.tourService.Latest(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tours)
}

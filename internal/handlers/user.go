package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.CurrentUser(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var in services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

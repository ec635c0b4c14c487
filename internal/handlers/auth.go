package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "User registered successfully", "user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Invalid("invalid request body"))
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Login successful", "token": token, "user": user})
}

func (ah *AuthHandler) Me(c *gin.Context) {
	user, err := ah.userService.CurrentUser(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

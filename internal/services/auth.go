package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/repos"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
	"github.com/wayfarer-travel/wayfarer-backend/internal/utils"
)

type RegisterInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	AvatarURL   string `json:"avatar_url"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	ContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	if in.Email == "" {
		return nil, apperr.Invalid("an email is required to register")
	}
	if in.Password == "" {
		return nil, apperr.Invalid("a password is required to register")
	}
	if in.FirstName == "" {
		return nil, apperr.Invalid("a first name is required to register")
	}
	if in.LastName == "" {
		return nil, apperr.Invalid("a last name is required to register")
	}
	exists, err := as.userRepo.EmailExists(ctx, nil, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("EMAIL_EXISTS", "email is already in use")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &types.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Password:    hashed,
		PhoneNumber: in.PhoneNumber,
		AvatarURL:   in.AvatarURL,
		Role:        types.RoleUser,
		IsActive:    true,
		JoinDate:    now,
		LastLogin:   now,
	}
	created, err := as.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", created.ID)
	return created, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Invalid("email and password are required to login")
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}
	if !utils.CheckPassword(user.Password, password) {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return "", nil, apperr.Unauthorized("account is deactivated")
	}

	user.LastLogin = time.Now().UTC()
	if _, err := as.userRepo.Save(ctx, nil, user); err != nil {
		return "", nil, err
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	as.log.Info("User logged in", "user_id", user.ID)
	return token, user, nil
}

// ContextFromToken validates the bearer token and returns a context
// carrying the caller's identity. This is the only place identity
// enters the request path; nothing reads it from global state.
func (as *authService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperr.Unauthorized("token subject is not a user id")
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Unauthorized("token user no longer exists")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("account is deactivated")
	}
	rd := &requestdata.RequestData{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		TokenString: tokenString,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

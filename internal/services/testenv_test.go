package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/repos"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type testEnv struct {
	db       *gorm.DB
	users    UserService
	tours    TourService
	bookings BookingService
	reviews  ReviewService
	wishlist WishlistService
	auth     AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}

	// A named in-memory database keeps every pooled connection on the
	// same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.Tour{},
		&types.Booking{},
		&types.Review{},
		&types.WishlistItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	userRepo := repos.NewUserRepo(db, log)
	tourRepo := repos.NewTourRepo(db, log)
	bookingRepo := repos.NewBookingRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)
	wishlistRepo := repos.NewWishlistRepo(db, log)

	tours := NewTourService(db, log, tourRepo, reviewRepo)
	return &testEnv{
		db:       db,
		users:    NewUserService(db, log, userRepo, bookingRepo, reviewRepo),
		tours:    tours,
		bookings: NewBookingService(db, log, bookingRepo, userRepo, tourRepo),
		reviews:  NewReviewService(db, log, reviewRepo, userRepo, tourRepo, tours),
		wishlist: NewWishlistService(db, log, wishlistRepo, userRepo, tourRepo),
		auth:     NewAuthService(db, log, userRepo, "test-secret", time.Hour),
	}
}

func (env *testEnv) seedUser(t *testing.T, email string) *types.User {
	t.Helper()
	now := time.Now().UTC()
	user := &types.User{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  "Traveler",
		Email:     email,
		Password:  "hashed",
		Role:      types.RoleUser,
		IsActive:  true,
		JoinDate:  now,
		LastLogin: now,
	}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (env *testEnv) seedTour(t *testing.T, title string, maxGroupSize int) *types.Tour {
	t.Helper()
	tour, err := env.tours.Create(context.Background(), TourInput{
		Title:        title,
		Description:  "a tour",
		Price:        499,
		Duration:     5,
		Destination:  "Bali",
		Category:     types.CategoryBeach,
		Difficulty:   types.DifficultyEasy,
		MaxGroupSize: maxGroupSize,
	})
	if err != nil {
		t.Fatalf("seed tour: %v", err)
	}
	return tour
}

package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/repos"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type UpdateUserInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	AvatarURL   string `json:"avatar_url"`
}

// ProfileUpdateInput updates only the fields the caller actually sent.
type ProfileUpdateInput struct {
	FirstName        *string   `json:"first_name"`
	LastName         *string   `json:"last_name"`
	PhoneNumber      *string   `json:"phone_number"`
	AvatarURL        *string   `json:"avatar_url"`
	CountriesVisited *[]string `json:"countries_visited"`
}

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	ListAll(ctx context.Context) ([]*types.User, error)
	ListActive(ctx context.Context) ([]*types.User, error)
	Search(ctx context.Context, term string) ([]*types.User, error)
	Update(ctx context.Context, userID uuid.UUID, in UpdateUserInput) (*types.User, error)
	UpdateProfile(ctx context.Context, in ProfileUpdateInput) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	Activate(ctx context.Context, userID uuid.UUID) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
	TotalCount(ctx context.Context) (int64, error)
	ActiveCount(ctx context.Context) (int64, error)
	CurrentUser(ctx context.Context) (*types.User, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	bookingRepo repos.BookingRepo
	reviewRepo  repos.ReviewRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, bookingRepo repos.BookingRepo, reviewRepo repos.ReviewRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, orNotFound(err, "User", userID)
	}
	return us.materialize(ctx, user)
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	user, err := us.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, orNotFound(err, "User", email)
	}
	return us.materialize(ctx, user)
}

func (us *userService) ListAll(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) ListActive(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.ListActive(ctx, nil)
}

func (us *userService) Search(ctx context.Context, term string) ([]*types.User, error) {
	return us.userRepo.Search(ctx, nil, term)
}

func (us *userService) Update(ctx context.Context, userID uuid.UUID, in UpdateUserInput) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, orNotFound(err, "User", userID)
	}
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.PhoneNumber = in.PhoneNumber
	user.AvatarURL = in.AvatarURL
	updated, err := us.userRepo.Save(ctx, nil, user)
	if err != nil {
		return nil, err
	}
	return us.materialize(ctx, updated)
}

func (us *userService) UpdateProfile(ctx context.Context, in ProfileUpdateInput) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.Unauthorized("no authenticated user in request context")
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, orNotFound(err, "User", rd.UserID)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.CountriesVisited != nil {
		user.CountriesVisited = toJSONList(*in.CountriesVisited)
	}
	updated, err := us.userRepo.Save(ctx, nil, user)
	if err != nil {
		return nil, err
	}
	return us.materialize(ctx, updated)
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	affected, err := us.userRepo.Delete(ctx, nil, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("User", userID)
	}
	us.log.Info("User deleted", "user_id", userID)
	return nil
}

func (us *userService) Activate(ctx context.Context, userID uuid.UUID) error {
	return us.setActive(ctx, userID, true)
}

func (us *userService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return us.setActive(ctx, userID, false)
}

func (us *userService) setActive(ctx context.Context, userID uuid.UUID, active bool) error {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return orNotFound(err, "User", userID)
	}
	user.IsActive = active
	_, err = us.userRepo.Save(ctx, nil, user)
	return err
}

func (us *userService) TotalCount(ctx context.Context) (int64, error) {
	return us.userRepo.CountAll(ctx, nil)
}

func (us *userService) ActiveCount(ctx context.Context) (int64, error) {
	return us.userRepo.CountActive(ctx, nil)
}

func (us *userService) CurrentUser(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.Unauthorized("no authenticated user in request context")
	}
	return us.GetByID(ctx, rd.UserID)
}

// materialize fills the denormalized activity counters from the
// booking and review sets. The stored columns are never trusted; the
// live sets are the source of truth.
func (us *userService) materialize(ctx context.Context, user *types.User) (*types.User, error) {
	bookings, err := us.bookingRepo.CountByUser(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	spent, err := us.bookingRepo.SumPaidAmountByUser(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := us.reviewRepo.CountByUser(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	user.TotalBookings = int(bookings)
	user.TotalSpent = spent
	user.ReviewsGiven = int(reviews)
	return user, nil
}

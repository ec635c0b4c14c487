package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/repos"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TourID     uuid.UUID `json:"tour_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReviewService interface {
	Create(ctx context.Context, userID, tourID uuid.UUID, rating int, comment string) (*ReviewDTO, error)
	GetByID(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error)
	ListAll(ctx context.Context) ([]*ReviewDTO, error)
	ByUser(ctx context.Context, userID uuid.UUID) ([]*ReviewDTO, error)
	ByTour(ctx context.Context, tourID uuid.UUID) ([]*ReviewDTO, error)
	ByRating(ctx context.Context, rating int) ([]*ReviewDTO, error)
	MyReviews(ctx context.Context) ([]*ReviewDTO, error)
	Update(ctx context.Context, reviewID uuid.UUID, rating int, comment string) (*ReviewDTO, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
	AverageRating(ctx context.Context, tourID uuid.UUID) (float64, error)
	Count(ctx context.Context, tourID uuid.UUID) (int64, error)
}

type reviewService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  repos.ReviewRepo
	userRepo    repos.UserRepo
	tourRepo    repos.TourRepo
	tourService TourService
}

func NewReviewService(db *gorm.DB, log *logger.Logger, reviewRepo repos.ReviewRepo, userRepo repos.UserRepo, tourRepo repos.TourRepo, tourService TourService) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{
		db:          db,
		log:         serviceLog,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		tourRepo:    tourRepo,
		tourService: tourService,
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperr.Invalidf("rating must be between 1 and 5, got %d", rating)
	}
	return nil
}

// Create persists the review and recomputes the tour's denormalized
// rating in the same transaction, so the two can never diverge at
// commit time. Duplicate reviews per (user, tour) are allowed.
func (rs *reviewService) Create(ctx context.Context, userID, tourID uuid.UUID, rating int, comment string) (*ReviewDTO, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	user, err := rs.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, orNotFound(err, "User", userID)
	}
	tour, err := rs.tourRepo.GetByID(ctx, nil, tourID)
	if err != nil {
		return nil, orNotFound(err, "Tour", tourID)
	}

	review := &types.Review{
		UserID:  user.ID,
		TourID:  tour.ID,
		Rating:  rating,
		Comment: comment,
	}
	err = rs.db.Transaction(func(tx *gorm.DB) error {
		if _, err := rs.reviewRepo.Create(ctx, tx, review); err != nil {
			return err
		}
		return rs.tourService.RecomputeRating(ctx, tx, tour.ID)
	})
	if err != nil {
		return nil, err
	}
	rs.log.Info("Review created", "review_id", review.ID, "tour_id", tour.ID, "rating", rating)
	return rs.toDTO(ctx, review)
}

func (rs *reviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error) {
	review, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return nil, orNotFound(err, "Review", reviewID)
	}
	return rs.toDTO(ctx, review)
}

func (rs *reviewService) ListAll(ctx context.Context) ([]*ReviewDTO, error) {
	reviews, err := rs.reviewRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return rs.toDTOs(ctx, reviews)
}

func (rs *reviewService) ByUser(ctx context.Context, userID uuid.UUID) ([]*ReviewDTO, error) {
	reviews, err := rs.reviewRepo.ByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return rs.toDTOs(ctx, reviews)
}

func (rs *reviewService) ByTour(ctx context.Context, tourID uuid.UUID) ([]*ReviewDTO, error) {
	reviews, err := rs.reviewRepo.ByTour(ctx, nil, tourID)
	if err != nil {
		return nil, err
	}
	return rs.toDTOs(ctx, reviews)
}

func (rs *reviewService) ByRating(ctx context.Context, rating int) ([]*ReviewDTO, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	reviews, err := rs.reviewRepo.ByRating(ctx, nil, rating)
	if err != nil {
		return nil, err
	}
	return rs.toDTOs(ctx, reviews)
}

func (rs *reviewService) MyReviews(ctx context.Context) ([]*ReviewDTO, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.Unauthorized("no authenticated user in request context")
	}
	return rs.ByUser(ctx, rd.UserID)
}

// Update mutates rating and comment only; the user/tour association is
// immutable after creation.
func (rs *reviewService) Update(ctx context.Context, reviewID uuid.UUID, rating int, comment string) (*ReviewDTO, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	review, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return nil, orNotFound(err, "Review", reviewID)
	}
	review.Rating = rating
	review.Comment = comment
	err = rs.db.Transaction(func(tx *gorm.DB) error {
		if _, err := rs.reviewRepo.Save(ctx, tx, review); err != nil {
			return err
		}
		return rs.tourService.RecomputeRating(ctx, tx, review.TourID)
	})
	if err != nil {
		return nil, err
	}
	return rs.toDTO(ctx, review)
}

// Delete removes the review and recomputes after the delete within the
// same transaction, so the new average excludes the deleted row.
func (rs *reviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	review, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return orNotFound(err, "Review", reviewID)
	}
	tourID := review.TourID
	err = rs.db.Transaction(func(tx *gorm.DB) error {
		affected, err := rs.reviewRepo.Delete(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.NotFound("Review", reviewID)
		}
		return rs.tourService.RecomputeRating(ctx, tx, tourID)
	})
	if err != nil {
		return err
	}
	rs.log.Info("Review deleted", "review_id", reviewID, "tour_id", tourID)
	return nil
}

func (rs *reviewService) AverageRating(ctx context.Context, tourID uuid.UUID) (float64, error) {
	return rs.reviewRepo.AverageRatingByTour(ctx, nil, tourID)
}

func (rs *reviewService) Count(ctx context.Context, tourID uuid.UUID) (int64, error) {
	return rs.reviewRepo.CountByTour(ctx, nil, tourID)
}

func (rs *reviewService) toDTO(ctx context.Context, review *types.Review) (*ReviewDTO, error) {
	dto := &ReviewDTO{
		ID:        review.ID,
		UserID:    review.UserID,
		TourID:    review.TourID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	user, err := rs.userRepo.GetByID(ctx, nil, review.UserID)
	if err != nil {
		return nil, orNotFound(err, "User", review.UserID)
	}
	dto.UserName = user.FullName()
	dto.UserAvatar = user.AvatarURL
	return dto, nil
}

func (rs *reviewService) toDTOs(ctx context.Context, reviews []*types.Review) ([]*ReviewDTO, error) {
	dtos := make([]*ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		dto, err := rs.toDTO(ctx, r)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

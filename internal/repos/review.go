package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (*types.Review, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error)
	ByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Review, error)
	ByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) ([]*types.Review, error)
	ByRating(ctx context.Context, tx *gorm.DB, rating int) ([]*types.Review, error)
	Save(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
	Delete(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (int64, error)
	AverageRatingByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (float64, error)
	CountByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (int64, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (rr *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Review
	if err := transaction.WithContext(ctx).
		Where("id = ?", reviewID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *reviewRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) ByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) ByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) ByRating(ctx context.Context, tx *gorm.DB, rating int) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("rating = ?", rating).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) Save(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (rr *reviewRepo) Delete(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&types.Review{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (rr *reviewRepo) AverageRatingByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var avg float64
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Where("tour_id = ?", tourID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

func (rr *reviewRepo) CountByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Where("tour_id = ?", tourID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *reviewRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

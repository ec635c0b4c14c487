package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type WishlistRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.WishlistItem) (*types.WishlistItem, error)
	ExistsByUserAndTour(ctx context.Context, tx *gorm.DB, userID, tourID uuid.UUID) (bool, error)
	ByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WishlistItem, error)
	DeleteByUserAndTour(ctx context.Context, tx *gorm.DB, userID, tourID uuid.UUID) (int64, error)
	CountByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (int64, error)
}

type wishlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWishlistRepo(db *gorm.DB, baseLog *logger.Logger) WishlistRepo {
	repoLog := baseLog.With("repo", "WishlistRepo")
	return &wishlistRepo{db: db, log: repoLog}
}

func (wr *wishlistRepo) Create(ctx context.Context, tx *gorm.DB, item *types.WishlistItem) (*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (wr *wishlistRepo) ExistsByUserAndTour(ctx context.Context, tx *gorm.DB, userID, tourID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WishlistItem{}).
		Where("user_id = ? AND tour_id = ?", userID, tourID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (wr *wishlistRepo) ByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WishlistItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *wishlistRepo) DeleteByUserAndTour(ctx context.Context, tx *gorm.DB, userID, tourID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND tour_id = ?", userID, tourID).
		Delete(&types.WishlistItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (wr *wishlistRepo) CountByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WishlistItem{}).
		Where("tour_id = ?", tourID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

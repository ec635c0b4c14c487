package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type TourRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tour *types.Tour) (*types.Tour, error)
	GetByID(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (*types.Tour, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Tour, error)
	ListByActive(ctx context.Context, tx *gorm.DB, active bool) ([]*types.Tour, error)
	ByCategory(ctx context.Context, tx *gorm.DB, category types.TourCategory) ([]*types.Tour, error)
	ByDestination(ctx context.Context, tx *gorm.DB, destination string) ([]*types.Tour, error)
	ByDifficulty(ctx context.Context, tx *gorm.DB, difficulty types.TourDifficulty) ([]*types.Tour, error)
	ByPriceBetween(ctx context.Context, tx *gorm.DB, minPrice, maxPrice float64) ([]*types.Tour, error)
	ByDurationBetween(ctx context.Context, tx *gorm.DB, minDuration, maxDuration int) ([]*types.Tour, error)
	Search(ctx context.Context, tx *gorm.DB, term string) ([]*types.Tour, error)
	TopRated(ctx context.Context, tx *gorm.DB) ([]*types.Tour, error)
	Latest(ctx context.Context, tx *gorm.DB) ([]*types.Tour, error)
	Save(ctx context.Context, tx *gorm.DB, tour *types.Tour) (*types.Tour, error)
	Delete(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (int64, error)
	// UpdateRating writes the denormalized rating and review count in a
	// single UPDATE so no reader sees one without the other.
	UpdateRating(ctx context.Context, tx *gorm.DB, tourID uuid.UUID, rating float64, reviewCount int64) error
}

type tourRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTourRepo(db *gorm.DB, baseLog *logger.Logger) TourRepo {
	repoLog := baseLog.With("repo", "TourRepo")
	return &tourRepo{db: db, log: repoLog}
}

func (tr *tourRepo) Create(ctx context.Context, tx *gorm.DB, tour *types.Tour) (*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Create(tour).Error; err != nil {
		return nil, err
	}
	return tour, nil
}

func (tr *tourRepo) GetByID(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Tour
	if err := transaction.WithContext(ctx).
		Where("id = ?", tourID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *tourRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) ListByActive(ctx context.Context, tx *gorm.DB, active bool) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", active).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) ByCategory(ctx context.Context, tx *gorm.DB, category types.TourCategory) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("category = ?", category).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) ByDestination(ctx context.Context, tx *gorm.DB, destination string) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("destination = ?", destination).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) ByDifficulty(ctx context.Context, tx *gorm.DB, difficulty types.TourDifficulty) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("difficulty = ?", difficulty).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) ByPriceBetween(ctx context.Context, tx *gorm.DB, minPrice, maxPrice float64) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("price BETWEEN ? AND ?", minPrice, maxPrice).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) ByDurationBetween(ctx context.Context, tx *gorm.DB, minDuration, maxDuration int) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("duration BETWEEN ? AND ?", minDuration, maxDuration).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) Search(ctx context.Context, tx *gorm.DB, term string) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	pattern := "%" + term + "%"
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Where("title LIKE ? OR description LIKE ? OR destination LIKE ?", pattern, pattern, pattern).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) TopRated(ctx context.Context, tx *gorm.DB) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("rating DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) Latest(ctx context.Context, tx *gorm.DB) ([]*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tour
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tourRepo) Save(ctx context.Context, tx *gorm.DB, tour *types.Tour) (*types.Tour, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Save(tour).Error; err != nil {
		return nil, err
	}
	return tour, nil
}

func (tr *tourRepo) Delete(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", tourID).
		Delete(&types.Tour{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (tr *tourRepo) UpdateRating(ctx context.Context, tx *gorm.DB, tourID uuid.UUID, rating float64, reviewCount int64) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Tour{}).
		Where("id = ?", tourID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
}

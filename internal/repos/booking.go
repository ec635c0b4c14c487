package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type BookingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error)
	GetByID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Booking, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Booking, error)
	ByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Booking, error)
	ByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) ([]*types.Booking, error)
	ByStatus(ctx context.Context, tx *gorm.DB, status types.BookingStatus) ([]*types.Booking, error)
	ByPaymentStatus(ctx context.Context, tx *gorm.DB, status types.PaymentStatus) ([]*types.Booking, error)
	ByTravelDateBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]*types.Booking, error)
	Save(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error)
	Delete(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, status types.BookingStatus) (int64, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	SumAmountByPaymentStatus(ctx context.Context, tx *gorm.DB, status types.PaymentStatus) (float64, error)
	SumPaidAmountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error)
}

type bookingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
	repoLog := baseLog.With("repo", "BookingRepo")
	return &bookingRepo{db: db, log: repoLog}
}

func (br *bookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (br *bookingRepo) GetByID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.Booking
	if err := transaction.WithContext(ctx).
		Where("id = ?", bookingID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *bookingRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) ByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) ByTour(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) ([]*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) ByStatus(ctx context.Context, tx *gorm.DB, status types.BookingStatus) ([]*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) ByPaymentStatus(ctx context.Context, tx *gorm.DB, status types.PaymentStatus) ([]*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(ctx).
		Where("payment_status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) ByTravelDateBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(ctx).
		Where("travel_date >= ? AND travel_date <= ?", start, end).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) Save(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (br *bookingRepo) Delete(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", bookingID).
		Delete(&types.Booking{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (br *bookingRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status types.BookingStatus) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Booking{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (br *bookingRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Booking{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (br *bookingRepo) SumAmountByPaymentStatus(ctx context.Context, tx *gorm.DB, status types.PaymentStatus) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var total float64
	if err := transaction.WithContext(ctx).
		Model(&types.Booking{}).
		Where("payment_status = ?", status).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (br *bookingRepo) SumPaidAmountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var total float64
	if err := transaction.WithContext(ctx).
		Model(&types.Booking{}).
		Where("user_id = ? AND payment_status = ?", userID, types.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

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

type WishlistService interface {
	Add(ctx context.Context, userID, tourID uuid.UUID) error
	Remove(ctx context.Context, userID, tourID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*types.Tour, error)
	MyWishlist(ctx context.Context) ([]*types.Tour, error)
	Exists(ctx context.Context, userID, tourID uuid.UUID) (bool, error)
	CountForTour(ctx context.Context, tourID uuid.UUID) (int64, error)
}

type wishlistService struct {
	db           *gorm.DB
	log          *logger.Logger
	wishlistRepo repos.WishlistRepo
	userRepo     repos.UserRepo
	tourRepo     repos.TourRepo
}

func NewWishlistService(db *gorm.DB, log *logger.Logger, wishlistRepo repos.WishlistRepo, userRepo repos.UserRepo, tourRepo repos.TourRepo) WishlistService {
	serviceLog := log.With("service", "WishlistService")
	return &wishlistService{
		db:           db,
		log:          serviceLog,
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
		tourRepo:     tourRepo,
	}
}

// Add inserts a wishlist item for the pair. The existence check and the
// insert run inside one transaction, and the composite unique index
// backs them up against racing duplicates.
func (ws *wishlistService) Add(ctx context.Context, userID, tourID uuid.UUID) error {
	user, err := ws.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return orNotFound(err, "User", userID)
	}
	tour, err := ws.tourRepo.GetByID(ctx, nil, tourID)
	if err != nil {
		return orNotFound(err, "Tour", tourID)
	}

	err = ws.db.Transaction(func(tx *gorm.DB) error {
		exists, err := ws.wishlistRepo.ExistsByUserAndTour(ctx, tx, user.ID, tour.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("ALREADY_IN_WISHLIST", "tour is already in wishlist")
		}
		item := &types.WishlistItem{
			UserID:  user.ID,
			TourID:  tour.ID,
			AddedAt: time.Now().UTC(),
		}
		_, err = ws.wishlistRepo.Create(ctx, tx, item)
		return err
	})
	if err != nil {
		return err
	}
	ws.log.Info("Tour added to wishlist", "user_id", userID, "tour_id", tourID)
	return nil
}

func (ws *wishlistService) Remove(ctx context.Context, userID, tourID uuid.UUID) error {
	affected, err := ws.wishlistRepo.DeleteByUserAndTour(ctx, nil, userID, tourID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("WishlistItem", tourID)
	}
	return nil
}

// List resolves each item through the tour table so entries reflect
// live tour state rather than a snapshot, newest first.
func (ws *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]*types.Tour, error) {
	items, err := ws.wishlistRepo.ByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	tours := make([]*types.Tour, 0, len(items))
	for _, item := range items {
		tour, err := ws.tourRepo.GetByID(ctx, nil, item.TourID)
		if err != nil {
			return nil, orNotFound(err, "Tour", item.TourID)
		}
		tours = append(tours, tour)
	}
	return tours, nil
}

func (ws *wishlistService) MyWishlist(ctx context.Context) ([]*types.Tour, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.Unauthorized("no authenticated user in request context")
	}
	return ws.List(ctx, rd.UserID)
}

func (ws *wishlistService) Exists(ctx context.Context, userID, tourID uuid.UUID) (bool, error) {
	return ws.wishlistRepo.ExistsByUserAndTour(ctx, nil, userID, tourID)
}

func (ws *wishlistService) CountForTour(ctx context.Context, tourID uuid.UUID) (int64, error) {
	return ws.wishlistRepo.CountByTour(ctx, nil, tourID)
}

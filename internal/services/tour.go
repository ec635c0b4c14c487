package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/repos"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type TourInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Price        float64              `json:"price"`
	Duration     int                  `json:"duration"`
	Destination  string               `json:"destination"`
	Category     types.TourCategory   `json:"category"`
	ImageURL     string               `json:"image_url"`
	Includes     []string             `json:"includes"`
	MaxGroupSize int                  `json:"max_group_size"`
	Difficulty   types.TourDifficulty `json:"difficulty"`
	IsActive     *bool                `json:"is_active"`
}

type TourService interface {
	Create(ctx context.Context, in TourInput) (*types.Tour, error)
	GetByID(ctx context.Context, tourID uuid.UUID) (*types.Tour, error)
	ListAll(ctx context.Context) ([]*types.Tour, error)
	ListActive(ctx context.Context) ([]*types.Tour, error)
	ByCategory(ctx context.Context, category types.TourCategory) ([]*types.Tour, error)
	ByDestination(ctx context.Context, destination string) ([]*types.Tour, error)
	ByDifficulty(ctx context.Context, difficulty types.TourDifficulty) ([]*types.Tour, error)
	ByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*types.Tour, error)
	ByDurationRange(ctx context.Context, minDuration, maxDuration int) ([]*types.Tour, error)
	Search(ctx context.Context, term string) ([]*types.Tour, error)
	TopRated(ctx context.Context) ([]*types.Tour, error)
	Latest(ctx context.Context) ([]*types.Tour, error)
	Update(ctx context.Context, tourID uuid.UUID, in TourInput) (*types.Tour, error)
	Delete(ctx context.Context, tourID uuid.UUID) error
	Activate(ctx context.Context, tourID uuid.UUID) error
	Deactivate(ctx context.Context, tourID uuid.UUID) error
	RecomputeRating(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) error
}

type tourService struct {
	db         *gorm.DB
	log        *logger.Logger
	tourRepo   repos.TourRepo
	reviewRepo repos.ReviewRepo
}

func NewTourService(db *gorm.DB, log *logger.Logger, tourRepo repos.TourRepo, reviewRepo repos.ReviewRepo) TourService {
	serviceLog := log.With("service", "TourService")
	return &tourService{
		db:         db,
		log:        serviceLog,
		tourRepo:   tourRepo,
		reviewRepo: reviewRepo,
	}
}

func validateTourInput(in TourInput) error {
	if in.Title == "" {
		return apperr.Invalid("a title is required")
	}
	if in.Destination == "" {
		return apperr.Invalid("a destination is required")
	}
	if in.Price < 0 {
		return apperr.Invalid("price must not be negative")
	}
	if in.Duration < 1 {
		return apperr.Invalid("duration must be at least one day")
	}
	if in.Category != "" && !in.Category.Valid() {
		return apperr.Invalidf("unknown category %q", in.Category)
	}
	if in.Difficulty != "" && !in.Difficulty.Valid() {
		return apperr.Invalidf("unknown difficulty %q", in.Difficulty)
	}
	if in.MaxGroupSize < 0 {
		return apperr.Invalid("max group size must not be negative")
	}
	return nil
}

func (ts *tourService) Create(ctx context.Context, in TourInput) (*types.Tour, error) {
	if err := validateTourInput(in); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	tour := &types.Tour{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Duration:     in.Duration,
		Destination:  in.Destination,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		Includes:     toJSONList(in.Includes),
		MaxGroupSize: in.MaxGroupSize,
		Difficulty:   in.Difficulty,
		IsActive:     active,
	}
	created, err := ts.tourRepo.Create(ctx, nil, tour)
	if err != nil {
		return nil, err
	}
	ts.log.Info("Tour created", "tour_id", created.ID, "destination", created.Destination)
	return created, nil
}

func (ts *tourService) GetByID(ctx context.Context, tourID uuid.UUID) (*types.Tour, error) {
	tour, err := ts.tourRepo.GetByID(ctx, nil, tourID)
	if err != nil {
		return nil, orNotFound(err, "Tour", tourID)
	}
	return tour, nil
}

func (ts *tourService) ListAll(ctx context.Context) ([]*types.Tour, error) {
	return ts.tourRepo.List(ctx, nil)
}

func (ts *tourService) ListActive(ctx context.Context) ([]*types.Tour, error) {
	return ts.tourRepo.ListByActive(ctx, nil, true)
}

func (ts *tourService) ByCategory(ctx context.Context, category types.TourCategory) ([]*types.Tour, error) {
	if !category.Valid() {
		return nil, apperr.Invalidf("unknown category %q", category)
	}
	return ts.tourRepo.ByCategory(ctx, nil, category)
}

func (ts *tourService) ByDestination(ctx context.Context, destination string) ([]*types.Tour, error) {
	return ts.tourRepo.ByDestination(ctx, nil, destination)
}

func (ts *tourService) ByDifficulty(ctx context.Context, difficulty types.TourDifficulty) ([]*types.Tour, error) {
	if !difficulty.Valid() {
		return nil, apperr.Invalidf("unknown difficulty %q", difficulty)
	}
	return ts.tourRepo.ByDifficulty(ctx, nil, difficulty)
}

func (ts *tourService) ByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*types.Tour, error) {
	if minPrice > maxPrice {
		return nil, apperr.Invalid("min price must not exceed max price")
	}
	return ts.tourRepo.ByPriceBetween(ctx, nil, minPrice, maxPrice)
}

func (ts *tourService) ByDurationRange(ctx context.Context, minDuration, maxDuration int) ([]*types.Tour, error) {
	if minDuration > maxDuration {
		return nil, apperr.Invalid("min duration must not exceed max duration")
	}
	return ts.tourRepo.ByDurationBetween(ctx, nil, minDuration, maxDuration)
}

func (ts *tourService) Search(ctx context.Context, term string) ([]*types.Tour, error) {
	return ts.tourRepo.Search(ctx, nil, term)
}

func (ts *tourService) TopRated(ctx context.Context) ([]*types.Tour, error) {
	return ts.tourRepo.TopRated(ctx, nil)
}

func (ts *tourService) Latest(ctx context.Context) ([]*types.Tour, error) {
	return ts.tourRepo.Latest(ctx, nil)
}

// Update is full-replace: every mutable field is overwritten from the
// input, callers must resend the whole object. Rating and ReviewCount
// are untouchable here.
func (ts *tourService) Update(ctx context.Context, tourID uuid.UUID, in TourInput) (*types.Tour, error) {
	if err := validateTourInput(in); err != nil {
		return nil, err
	}
	tour, err := ts.tourRepo.GetByID(ctx, nil, tourID)
	if err != nil {
		return nil, orNotFound(err, "Tour", tourID)
	}
	tour.Title = in.Title
	tour.Description = in.Description
	tour.Price = in.Price
	tour.Duration = in.Duration
	tour.Destination = in.Destination
	tour.Category = in.Category
	tour.ImageURL = in.ImageURL
	tour.Includes = toJSONList(in.Includes)
	tour.MaxGroupSize = in.MaxGroupSize
	tour.Difficulty = in.Difficulty
	if in.IsActive != nil {
		tour.IsActive = *in.IsActive
	}
	return ts.tourRepo.Save(ctx, nil, tour)
}

func (ts *tourService) Delete(ctx context.Context, tourID uuid.UUID) error {
	affected, err := ts.tourRepo.Delete(ctx, nil, tourID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Tour", tourID)
	}
	ts.log.Info("Tour deleted", "tour_id", tourID)
	return nil
}

func (ts *tourService) Activate(ctx context.Context, tourID uuid.UUID) error {
	return ts.setActive(ctx, tourID, true)
}

func (ts *tourService) Deactivate(ctx context.Context, tourID uuid.UUID) error {
	return ts.setActive(ctx, tourID, false)
}

func (ts *tourService) setActive(ctx context.Context, tourID uuid.UUID, active bool) error {
	tour, err := ts.tourRepo.GetByID(ctx, nil, tourID)
	if err != nil {
		return orNotFound(err, "Tour", tourID)
	}
	tour.IsActive = active
	_, err = ts.tourRepo.Save(ctx, nil, tour)
	return err
}

// RecomputeRating re-derives the tour's denormalized rating and review
// count from the review set and writes both back in a single UPDATE.
// Callers mutating reviews must pass their transaction so the recompute
// sees the mutation and commits with it.
func (ts *tourService) RecomputeRating(ctx context.Context, tx *gorm.DB, tourID uuid.UUID) error {
	if _, err := ts.tourRepo.GetByID(ctx, tx, tourID); err != nil {
		return orNotFound(err, "Tour", tourID)
	}
	avg, err := ts.reviewRepo.AverageRatingByTour(ctx, tx, tourID)
	if err != nil {
		return err
	}
	count, err := ts.reviewRepo.CountByTour(ctx, tx, tourID)
	if err != nil {
		return err
	}
	if err := ts.tourRepo.UpdateRating(ctx, tx, tourID, avg, count); err != nil {
		return err
	}
	ts.log.Debug("Tour rating recomputed", "tour_id", tourID, "rating", avg, "review_count", count)
	return nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
)

func TestReviewCreate_RecomputesTourRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if _, err := env.reviews.Create(ctx, user.ID, tour.ID, 4, "great"); err != nil {
		t.Fatalf("create review: %v", err)
	}
	got, err := env.tours.GetByID(ctx, tour.ID)
	if err != nil {
		t.Fatalf("get tour: %v", err)
	}
	if got.Rating != 4.0 || got.ReviewCount != 1 {
		t.Fatalf("after first review: rating=%v count=%d, want 4.0/1", got.Rating, got.ReviewCount)
	}

	if _, err := env.reviews.Create(ctx, user.ID, tour.ID, 2, "meh"); err != nil {
		t.Fatalf("create second review: %v", err)
	}
	got, err = env.tours.GetByID(ctx, tour.ID)
	if err != nil {
		t.Fatalf("get tour: %v", err)
	}
	if got.Rating != 3.0 || got.ReviewCount != 2 {
		t.Fatalf("after second review: rating=%v count=%d, want 3.0/2", got.Rating, got.ReviewCount)
	}
}

func TestReviewDelete_RecomputesAndResetsWhenLastGoes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	first, err := env.reviews.Create(ctx, user.ID, tour.ID, 4, "great")
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	second, err := env.reviews.Create(ctx, user.ID, tour.ID, 2, "meh")
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	if err := env.reviews.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	got, err := env.tours.GetByID(ctx, tour.ID)
	if err != nil {
		t.Fatalf("get tour: %v", err)
	}
	if got.Rating != 4.0 || got.ReviewCount != 1 {
		t.Fatalf("after delete: rating=%v count=%d, want 4.0/1", got.Rating, got.ReviewCount)
	}

	if err := env.reviews.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete last review: %v", err)
	}
	got, err = env.tours.GetByID(ctx, tour.ID)
	if err != nil {
		t.Fatalf("get tour: %v", err)
	}
	if got.Rating != 0.0 || got.ReviewCount != 0 {
		t.Fatalf("after last delete: rating=%v count=%d, want 0.0/0", got.Rating, got.ReviewCount)
	}
}

func TestReviewUpdate_RecomputesTourRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	review, err := env.reviews.Create(ctx, user.ID, tour.ID, 2, "meh")
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if _, err := env.reviews.Update(ctx, review.ID, 5, "changed my mind"); err != nil {
		t.Fatalf("update review: %v", err)
	}
	got, err := env.tours.GetByID(ctx, tour.ID)
	if err != nil {
		t.Fatalf("get tour: %v", err)
	}
	if got.Rating != 5.0 || got.ReviewCount != 1 {
		t.Fatalf("after update: rating=%v count=%d, want 5.0/1", got.Rating, got.ReviewCount)
	}
}

func TestReviewCreate_RejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	for _, rating := range []int{0, 6, -1} {
		if _, err := env.reviews.Create(ctx, user.ID, tour.ID, rating, "x"); !errors.Is(err, apperr.ErrInvalid) {
			t.Fatalf("rating %d: got %v, want invalid", rating, err)
		}
	}
}

func TestReviewCreate_UnknownReferencesAreNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if _, err := env.reviews.Create(ctx, uuid.New(), tour.ID, 3, "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown user: got %v, want not found", err)
	}
	if _, err := env.reviews.Create(ctx, user.ID, uuid.New(), 3, "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown tour: got %v, want not found", err)
	}
}

func TestReviewCreate_AllowsDuplicatePerUserAndTour(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if _, err := env.reviews.Create(ctx, user.ID, tour.ID, 5, "first"); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := env.reviews.Create(ctx, user.ID, tour.ID, 3, "second"); err != nil {
		t.Fatalf("second review by same user: %v", err)
	}
	count, err := env.reviews.Count(ctx, tour.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
}

func TestReviewDTO_JoinsUserDisplayFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "rater@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	review, err := env.reviews.Create(ctx, user.ID, tour.ID, 5, "great")
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.UserName != user.FullName() {
		t.Fatalf("user name %q, want %q", review.UserName, user.FullName())
	}
}

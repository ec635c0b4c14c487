package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
)

func TestWishlistAdd_IsUniquePerUserAndTour(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "wisher@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if err := env.wishlist.Add(ctx, user.ID, tour.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	exists, err := env.wishlist.Exists(ctx, user.ID, tour.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected item to exist after add")
	}

	if err := env.wishlist.Add(ctx, user.ID, tour.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate add: got %v, want conflict", err)
	}

	// A second user wishing the same tour is fine.
	other := env.seedUser(t, "other@example.com")
	if err := env.wishlist.Add(ctx, other.ID, tour.ID); err != nil {
		t.Fatalf("add by other user: %v", err)
	}
	count, err := env.wishlist.CountForTour(ctx, tour.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
}

func TestWishlistAdd_UnknownReferencesAreNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "wisher@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if err := env.wishlist.Add(ctx, uuid.New(), tour.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown user: got %v, want not found", err)
	}
	if err := env.wishlist.Add(ctx, user.ID, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown tour: got %v, want not found", err)
	}
}

func TestWishlistRemove_DeletesAndReportsMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "wisher@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if err := env.wishlist.Add(ctx, user.ID, tour.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := env.wishlist.Remove(ctx, user.ID, tour.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	exists, err := env.wishlist.Exists(ctx, user.ID, tour.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("expected item gone after remove")
	}
	if err := env.wishlist.Remove(ctx, user.ID, tour.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second remove: got %v, want not found", err)
	}
}

func TestWishlistList_ReturnsLiveTours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "wisher@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if err := env.wishlist.Add(ctx, user.ID, tour.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := env.tours.Deactivate(ctx, tour.ID); err != nil {
		t.Fatalf("deactivate tour: %v", err)
	}
	tours, err := env.wishlist.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tours) != 1 {
		t.Fatalf("len=%d, want 1", len(tours))
	}
	if tours[0].IsActive {
		t.Fatalf("expected list to reflect live tour state")
	}
}

func TestMyWishlist_RequiresIdentityInContext(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "wisher@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	if _, err := env.wishlist.MyWishlist(ctx); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("anonymous context: got %v, want unauthorized", err)
	}

	if err := env.wishlist.Add(ctx, user.ID, tour.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	authed := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	tours, err := env.wishlist.MyWishlist(authed)
	if err != nil {
		t.Fatalf("my wishlist: %v", err)
	}
	if len(tours) != 1 {
		t.Fatalf("len=%d, want 1", len(tours))
	}
}

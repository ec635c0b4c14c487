package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

func TestUserGetByID_ComputesActivityCountersFromLiveSets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	first, err := env.bookings.Create(ctx, testBookingInput(user.ID, tour.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	in := testBookingInput(user.ID, tour.ID)
	in.TotalAmount = 300
	if _, err := env.bookings.Create(ctx, in); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := env.bookings.SetPaymentStatus(ctx, first.ID, types.PaymentPaid); err != nil {
		t.Fatalf("set payment status: %v", err)
	}
	if _, err := env.reviews.Create(ctx, user.ID, tour.ID, 5, "great"); err != nil {
		t.Fatalf("create review: %v", err)
	}

	got, err := env.users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.TotalBookings != 2 {
		t.Fatalf("total bookings=%d, want 2", got.TotalBookings)
	}
	// Spend counts only PAID bookings.
	if got.TotalSpent != first.TotalAmount {
		t.Fatalf("total spent=%v, want %v", got.TotalSpent, first.TotalAmount)
	}
	if got.ReviewsGiven != 1 {
		t.Fatalf("reviews given=%d, want 1", got.ReviewsGiven)
	}
}

func TestUserActivateDeactivate_TogglesListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")

	active, err := env.users.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active=%d, want 1", len(active))
	}

	if err := env.users.Deactivate(ctx, user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err = env.users.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active=%d after deactivate, want 0", len(active))
	}

	if err := env.users.Activate(ctx, user.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	active, err = env.users.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active=%d after activate, want 1", len(active))
	}
}

func TestUserActiveCount_ExcludesAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "traveler@example.com")
	admin := env.seedUser(t, "admin@example.com")
	admin.Role = types.RoleAdmin
	if err := env.db.Save(admin).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	count, err := env.users.ActiveCount(ctx)
	if err != nil {
		t.Fatalf("active count: %v", err)
	}
	if count != 1 {
		t.Fatalf("active count=%d, want 1 (admins excluded)", count)
	}
}

func TestUserDelete_UnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.users.Delete(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestUserSearch_MatchesNameAndEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice@example.com")
	user.FirstName = "Alice"
	if err := env.db.Save(user).Error; err != nil {
		t.Fatalf("rename user: %v", err)
	}
	env.seedUser(t, "bob@example.com")

	found, err := env.users.Search(ctx, "alice")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Email != "alice@example.com" {
		t.Fatalf("search result=%v, want only alice", len(found))
	}
}

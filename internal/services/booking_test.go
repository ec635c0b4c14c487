package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

func testBookingInput(userID, tourID uuid.UUID) BookingInput {
	travel := time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC)
	return BookingInput{
		UserID:        userID,
		TourID:        tourID,
		TravelDate:    travel,
		EndDate:       travel.AddDate(0, 0, 5),
		Guests:        2,
		TotalAmount:   998,
		PaymentMethod: "card",
	}
}

func TestBookingCreate_AlwaysStartsPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	booking, err := env.bookings.Create(ctx, testBookingInput(user.ID, tour.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != types.BookingPending {
		t.Fatalf("status=%q, want PENDING", booking.Status)
	}
	if booking.PaymentStatus != types.PaymentPending {
		t.Fatalf("payment status=%q, want PENDING", booking.PaymentStatus)
	}
}

func TestBookingCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 4)

	tests := []struct {
		name   string
		mutate func(*BookingInput)
		want   error
	}{
		{"zero guests", func(in *BookingInput) { in.Guests = 0 }, apperr.ErrInvalid},
		{"guests over max group size", func(in *BookingInput) { in.Guests = 5 }, apperr.ErrInvalid},
		{"travel date after end date", func(in *BookingInput) { in.EndDate = in.TravelDate.AddDate(0, 0, -1) }, apperr.ErrInvalid},
		{"negative amount", func(in *BookingInput) { in.TotalAmount = -1 }, apperr.ErrInvalid},
		{"unknown user", func(in *BookingInput) { in.UserID = uuid.New() }, apperr.ErrNotFound},
		{"unknown tour", func(in *BookingInput) { in.TourID = uuid.New() }, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testBookingInput(user.ID, tour.ID)
			tt.mutate(&in)
			if _, err := env.bookings.Create(ctx, in); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBookingCreate_AmountNotCrossCheckedAgainstTourPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	in := testBookingInput(user.ID, tour.ID)
	in.TotalAmount = 1
	booking, err := env.bookings.Create(ctx, in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TotalAmount != 1 {
		t.Fatalf("amount=%v, want 1 stored as sent", booking.TotalAmount)
	}
}

func TestBookingSetStatus_OverwritesUnconditionally(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	booking, err := env.bookings.Create(ctx, testBookingInput(user.ID, tour.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	// No transition table: any valid value replaces any other,
	// including moving out of a terminal state.
	sequence := []types.BookingStatus{
		types.BookingConfirmed,
		types.BookingCancelled,
		types.BookingCompleted,
		types.BookingPending,
	}
	for _, status := range sequence {
		updated, err := env.bookings.SetStatus(ctx, booking.ID, status)
		if err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status=%q, want %q", updated.Status, status)
		}
	}

	if _, err := env.bookings.SetStatus(ctx, booking.ID, types.BookingStatus("SHIPPED")); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("unknown status: got %v, want invalid", err)
	}
	if _, err := env.bookings.SetStatus(ctx, uuid.New(), types.BookingConfirmed); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown booking: got %v, want not found", err)
	}
}

func TestBookingSetPaymentStatus_IndependentOfStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	booking, err := env.bookings.Create(ctx, testBookingInput(user.ID, tour.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	updated, err := env.bookings.SetPaymentStatus(ctx, booking.ID, types.PaymentPaid)
	if err != nil {
		t.Fatalf("set payment status: %v", err)
	}
	if updated.PaymentStatus != types.PaymentPaid {
		t.Fatalf("payment status=%q, want PAID", updated.PaymentStatus)
	}
	if updated.Status != types.BookingPending {
		t.Fatalf("status=%q, want PENDING untouched", updated.Status)
	}
}

func TestBookingStats_ConfirmedCountAndRevenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	count, err := env.bookings.ConfirmedCount(ctx)
	if err != nil {
		t.Fatalf("confirmed count: %v", err)
	}
	revenue, err := env.bookings.TotalRevenue(ctx)
	if err != nil {
		t.Fatalf("total revenue: %v", err)
	}
	if count != 0 || revenue != 0 {
		t.Fatalf("empty set: count=%d revenue=%v, want 0/0", count, revenue)
	}

	amounts := []float64{100, 250, 75}
	var bookings []*BookingDTO
	for _, amount := range amounts {
		in := testBookingInput(user.ID, tour.ID)
		in.TotalAmount = amount
		b, err := env.bookings.Create(ctx, in)
		if err != nil {
			t.Fatalf("create booking: %v", err)
		}
		bookings = append(bookings, b)
	}
	// Confirm two, pay one of the confirmed and the unconfirmed one.
	if _, err := env.bookings.SetStatus(ctx, bookings[0].ID, types.BookingConfirmed); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if _, err := env.bookings.SetStatus(ctx, bookings[1].ID, types.BookingConfirmed); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if _, err := env.bookings.SetPaymentStatus(ctx, bookings[0].ID, types.PaymentPaid); err != nil {
		t.Fatalf("set payment status: %v", err)
	}
	if _, err := env.bookings.SetPaymentStatus(ctx, bookings[2].ID, types.PaymentPaid); err != nil {
		t.Fatalf("set payment status: %v", err)
	}

	count, err = env.bookings.ConfirmedCount(ctx)
	if err != nil {
		t.Fatalf("confirmed count: %v", err)
	}
	if count != 2 {
		t.Fatalf("confirmed count=%d, want 2", count)
	}
	revenue, err = env.bookings.TotalRevenue(ctx)
	if err != nil {
		t.Fatalf("total revenue: %v", err)
	}
	// Revenue follows payment status, not booking status.
	if revenue != 175 {
		t.Fatalf("revenue=%v, want 175", revenue)
	}
}

func TestBookingDTO_JoinsLiveTourAndUserFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "traveler@example.com")
	tour := env.seedTour(t, "Bali Beach Escape", 12)

	booking, err := env.bookings.Create(ctx, testBookingInput(user.ID, tour.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TourTitle != "Bali Beach Escape" {
		t.Fatalf("tour title=%q", booking.TourTitle)
	}
	if booking.UserEmail != "traveler@example.com" {
		t.Fatalf("user email=%q", booking.UserEmail)
	}

	// Rename the tour; a fresh read of the booking reflects it.
	if _, err := env.tours.Update(ctx, tour.ID, TourInput{
		Title:       "Renamed Escape",
		Description: tour.Description,
		Price:       tour.Price,
		Duration:    tour.Duration,
		Destination: tour.Destination,
		Category:    tour.Category,
		Difficulty:  tour.Difficulty,
	}); err != nil {
		t.Fatalf("update tour: %v", err)
	}
	got, err := env.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.TourTitle != "Renamed Escape" {
		t.Fatalf("tour title=%q, want live value", got.TourTitle)
	}
}

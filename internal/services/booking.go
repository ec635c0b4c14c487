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

type BookingInput struct {
	UserID        uuid.UUID `json:"user_id"`
	TourID        uuid.UUID `json:"tour_id"`
	TravelDate    time.Time `json:"travel_date"`
	EndDate       time.Time `json:"end_date"`
	Guests        int       `json:"guests"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
}

// BookingDTO carries the booking row joined with live tour and user
// display fields. The join happens at convert time, so the display
// fields always reflect current tour and user state.
type BookingDTO struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	TourID        uuid.UUID           `json:"tour_id"`
	TourTitle     string              `json:"tour_title"`
	TourImage     string              `json:"tour_image"`
	Destination   string              `json:"destination"`
	UserEmail     string              `json:"user_email"`
	UserName      string              `json:"user_name"`
	BookingDate   time.Time           `json:"booking_date"`
	TravelDate    time.Time           `json:"travel_date"`
	EndDate       time.Time           `json:"end_date"`
	Guests        int                 `json:"guests"`
	TotalAmount   float64             `json:"total_amount"`
	Status        types.BookingStatus `json:"status"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
}

type BookingService interface {
	Create(ctx context.Context, in BookingInput) (*BookingDTO, error)
	GetByID(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error)
	ListAll(ctx context.Context) ([]*BookingDTO, error)
	ByUser(ctx context.Context, userID uuid.UUID) ([]*BookingDTO, error)
	ByTour(ctx context.Context, tourID uuid.UUID) ([]*BookingDTO, error)
	ByStatus(ctx context.Context, status types.BookingStatus) ([]*BookingDTO, error)
	ByPaymentStatus(ctx context.Context, status types.PaymentStatus) ([]*BookingDTO, error)
	ByTravelDateRange(ctx context.Context, start, end time.Time) ([]*BookingDTO, error)
	MyBookings(ctx context.Context) ([]*BookingDTO, error)
	SetStatus(ctx context.Context, bookingID uuid.UUID, status types.BookingStatus) (*BookingDTO, error)
	SetPaymentStatus(ctx context.Context, bookingID uuid.UUID, status types.PaymentStatus) (*BookingDTO, error)
	Delete(ctx context.Context, bookingID uuid.UUID) error
	ConfirmedCount(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type bookingService struct {
	db          *gorm.DB
	log         *logger.Logger
	bookingRepo repos.BookingRepo
	userRepo    repos.UserRepo
	tourRepo    repos.TourRepo
}

func NewBookingService(db *gorm.DB, log *logger.Logger, bookingRepo repos.BookingRepo, userRepo repos.UserRepo, tourRepo repos.TourRepo) BookingService {
	serviceLog := log.With("service", "BookingService")
	return &bookingService{
		db:          db,
		log:         serviceLog,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		tourRepo:    tourRepo,
	}
}

func (bs *bookingService) Create(ctx context.Context, in BookingInput) (*BookingDTO, error) {
	user, err := bs.userRepo.GetByID(ctx, nil, in.UserID)
	if err != nil {
		return nil, orNotFound(err, "User", in.UserID)
	}
	tour, err := bs.tourRepo.GetByID(ctx, nil, in.TourID)
	if err != nil {
		return nil, orNotFound(err, "Tour", in.TourID)
	}

	if in.Guests < 1 {
		return nil, apperr.Invalid("at least one guest is required")
	}
	if tour.MaxGroupSize > 0 && in.Guests > tour.MaxGroupSize {
		return nil, apperr.Invalidf("guests %d exceeds max group size %d", in.Guests, tour.MaxGroupSize)
	}
	if in.TravelDate.After(in.EndDate) {
		return nil, apperr.Invalid("travel date must not be after end date")
	}
	if in.TotalAmount < 0 {
		return nil, apperr.Invalid("total amount must not be negative")
	}

	// Status and payment status always start at PENDING; whatever the
	// caller sent is ignored.
	booking := &types.Booking{
		UserID:        user.ID,
		TourID:        tour.ID,
		BookingDate:   time.Now().UTC(),
		TravelDate:    in.TravelDate,
		EndDate:       in.EndDate,
		Guests:        in.Guests,
		TotalAmount:   in.TotalAmount,
		Status:        types.BookingPending,
		PaymentStatus: types.PaymentPending,
		PaymentMethod: in.PaymentMethod,
	}
	created, err := bs.bookingRepo.Create(ctx, nil, booking)
	if err != nil {
		return nil, err
	}
	bs.log.Info("Booking created", "booking_id", created.ID, "user_id", user.ID, "tour_id", tour.ID)
	return bs.toDTO(ctx, created)
}

func (bs *bookingService) GetByID(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	booking, err := bs.bookingRepo.GetByID(ctx, nil, bookingID)
	if err != nil {
		return nil, orNotFound(err, "Booking", bookingID)
	}
	return bs.toDTO(ctx, booking)
}

func (bs *bookingService) ListAll(ctx context.Context) ([]*BookingDTO, error) {
	bookings, err := bs.bookingRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return bs.toDTOs(ctx, bookings)
}

func (bs *bookingService) ByUser(ctx context.Context, userID uuid.UUID) ([]*BookingDTO, error) {
	bookings, err := bs.bookingRepo.ByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return bs.toDTOs(ctx, bookings)
}

func (bs *bookingService) ByTour(ctx context.Context, tourID uuid.UUID) ([]*BookingDTO, error) {
	bookings, err := bs.bookingRepo.ByTour(ctx, nil, tourID)
	if err != nil {
		return nil, err
	}
	return bs.toDTOs(ctx, bookings)
}

func (bs *bookingService) ByStatus(ctx context.Context, status types.BookingStatus) ([]*BookingDTO, error) {
	if !status.Valid() {
		return nil, apperr.Invalidf("unknown booking status %q", status)
	}
	bookings, err := bs.bookingRepo.ByStatus(ctx, nil, status)
	if err != nil {
		return nil, err
	}
	return bs.toDTOs(ctx, bookings)
}

func (bs *bookingService) ByPaymentStatus(ctx context.Context, status types.PaymentStatus) ([]*BookingDTO, error) {
	if !status.Valid() {
		return nil, apperr.Invalidf("unknown payment status %q", status)
	}
	bookings, err := bs.bookingRepo.ByPaymentStatus(ctx, nil, status)
	if err != nil {
		return nil, err
	}
	return bs.toDTOs(ctx, bookings)
}

func (bs *bookingService) ByTravelDateRange(ctx context.Context, start, end time.Time) ([]*BookingDTO, error) {
	if start.After(end) {
		return nil, apperr.Invalid("start date must not be after end date")
	}
	bookings, err := bs.bookingRepo.ByTravelDateBetween(ctx, nil, start, end)
	if err != nil {
		return nil, err
	}
	return bs.toDTOs(ctx, bookings)
}

func (bs *bookingService) MyBookings(ctx context.Context) ([]*BookingDTO, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.Unauthorized("no authenticated user in request context")
	}
	return bs.ByUser(ctx, rd.UserID)
}

// SetStatus overwrites the booking status unconditionally. There is no
// transition table; any valid value replaces any other, terminal or not.
func (bs *bookingService) SetStatus(ctx context.Context, bookingID uuid.UUID, status types.BookingStatus) (*BookingDTO, error) {
	if !status.Valid() {
		return nil, apperr.Invalidf("unknown booking status %q", status)
	}
	booking, err := bs.bookingRepo.GetByID(ctx, nil, bookingID)
	if err != nil {
		return nil, orNotFound(err, "Booking", bookingID)
	}
	booking.Status = status
	updated, err := bs.bookingRepo.Save(ctx, nil, booking)
	if err != nil {
		return nil, err
	}
	bs.log.Info("Booking status updated", "booking_id", bookingID, "status", status)
	return bs.toDTO(ctx, updated)
}

func (bs *bookingService) SetPaymentStatus(ctx context.Context, bookingID uuid.UUID, status types.PaymentStatus) (*BookingDTO, error) {
	if !status.Valid() {
		return nil, apperr.Invalidf("unknown payment status %q", status)
	}
	booking, err := bs.bookingRepo.GetByID(ctx, nil, bookingID)
	if err != nil {
		return nil, orNotFound(err, "Booking", bookingID)
	}
	booking.PaymentStatus = status
	updated, err := bs.bookingRepo.Save(ctx, nil, booking)
	if err != nil {
		return nil, err
	}
	bs.log.Info("Booking payment status updated", "booking_id", bookingID, "payment_status", status)
	return bs.toDTO(ctx, updated)
}

func (bs *bookingService) Delete(ctx context.Context, bookingID uuid.UUID) error {
	affected, err := bs.bookingRepo.Delete(ctx, nil, bookingID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Booking", bookingID)
	}
	return nil
}

func (bs *bookingService) ConfirmedCount(ctx context.Context) (int64, error) {
	return bs.bookingRepo.CountByStatus(ctx, nil, types.BookingConfirmed)
}

func (bs *bookingService) TotalRevenue(ctx context.Context) (float64, error) {
	return bs.bookingRepo.SumAmountByPaymentStatus(ctx, nil, types.PaymentPaid)
}

func (bs *bookingService) toDTO(ctx context.Context, booking *types.Booking) (*BookingDTO, error) {
	dto := &BookingDTO{
		ID:            booking.ID,
		UserID:        booking.UserID,
		TourID:        booking.TourID,
		BookingDate:   booking.BookingDate,
		TravelDate:    booking.TravelDate,
		EndDate:       booking.EndDate,
		Guests:        booking.Guests,
		TotalAmount:   booking.TotalAmount,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		PaymentMethod: booking.PaymentMethod,
		CreatedAt:     booking.CreatedAt,
	}
	tour, err := bs.tourRepo.GetByID(ctx, nil, booking.TourID)
	if err != nil {
		return nil, orNotFound(err, "Tour", booking.TourID)
	}
	dto.TourTitle = tour.Title
	dto.TourImage = tour.ImageURL
	dto.Destination = tour.Destination

	user, err := bs.userRepo.GetByID(ctx, nil, booking.UserID)
	if err != nil {
		return nil, orNotFound(err, "User", booking.UserID)
	}
	dto.UserEmail = user.Email
	dto.UserName = user.FullName()
	return dto, nil
}

func (bs *bookingService) toDTOs(ctx context.Context, bookings []*types.Booking) ([]*BookingDTO, error) {
	dtos := make([]*BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dto, err := bs.toDTO(ctx, b)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

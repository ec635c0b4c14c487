package types

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

// Status and PaymentStatus are independent lifecycles; there is no
// transition table, any value can overwrite any other.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	TourID        uuid.UUID     `gorm:"type:uuid;not null;index;column:tour_id" json:"tour_id"`
	BookingDate   time.Time     `gorm:"not null;column:booking_date" json:"booking_date"`
	TravelDate    time.Time     `gorm:"not null;index;column:travel_date" json:"travel_date"`
	EndDate       time.Time     `gorm:"not null;column:end_date" json:"end_date"`
	Guests        int           `gorm:"not null" json:"guests"`
	TotalAmount   float64       `gorm:"not null;column:total_amount" json:"total_amount"`
	Status        BookingStatus `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null;default:PENDING;index;column:payment_status" json:"payment_status"`
	PaymentMethod string        `gorm:"column:payment_method" json:"payment_method"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

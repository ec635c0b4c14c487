package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName        string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName         string         `gorm:"not null;column:last_name" json:"last_name"`
	Email            string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password         string         `gorm:"not null;column:password" json:"-"`
	PhoneNumber      string         `gorm:"column:phone_number" json:"phone_number"`
	Role             UserRole       `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	AvatarURL        string         `gorm:"column:avatar_url" json:"avatar_url"`
	JoinDate         time.Time      `gorm:"not null" json:"join_date"`
	LastLogin        time.Time      `gorm:"not null" json:"last_login"`
	IsActive         bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	TotalBookings    int            `gorm:"not null;default:0;column:total_bookings" json:"total_bookings"`
	TotalSpent       float64        `gorm:"not null;default:0;column:total_spent" json:"total_spent"`
	ReviewsGiven     int            `gorm:"not null;default:0;column:reviews_given" json:"reviews_given"`
	CountriesVisited datatypes.JSON `gorm:"type:jsonb" json:"countries_visited"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

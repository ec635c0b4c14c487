package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TourCategory string

const (
	CategoryBeach     TourCategory = "BEACH"
	CategoryAdventure TourCategory = "ADVENTURE"
	CategoryCultural  TourCategory = "CULTURAL"
	CategoryWildlife  TourCategory = "WILDLIFE"
	CategoryCity      TourCategory = "CITY"
	CategoryMountain  TourCategory = "MOUNTAIN"
	CategoryCruise    TourCategory = "CRUISE"
	CategoryFood      TourCategory = "FOOD"
)

func (c TourCategory) Valid() bool {
	switch c {
	case CategoryBeach, CategoryAdventure, CategoryCultural, CategoryWildlife,
		CategoryCity, CategoryMountain, CategoryCruise, CategoryFood:
		return true
	}
	return false
}

type TourDifficulty string

const (
	DifficultyEasy      TourDifficulty = "EASY"
	DifficultyModerate  TourDifficulty = "MODERATE"
	DifficultyDifficult TourDifficulty = "DIFFICULT"
)

func (d TourDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyDifficult:
		return true
	}
	return false
}

// Rating and ReviewCount are denormalized from the review set and are
// only ever written by the rating recompute; the reviews table is the
// source of truth.
type Tour struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	Duration     int            `gorm:"not null" json:"duration"`
	Destination  string         `gorm:"not null;index" json:"destination"`
	Category     TourCategory   `gorm:"type:varchar(16);index" json:"category"`
	ImageURL     string         `gorm:"column:image_url" json:"image_url"`
	Includes     datatypes.JSON `gorm:"type:jsonb" json:"includes"`
	MaxGroupSize int            `gorm:"column:max_group_size" json:"max_group_size"`
	Difficulty   TourDifficulty `gorm:"type:varchar(16)" json:"difficulty"`
	Rating       float64        `gorm:"not null;default:0" json:"rating"`
	ReviewCount  int            `gorm:"not null;default:0;column:review_count" json:"review_count"`
	IsActive     bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (Tour) TableName() string {
	return "tours"
}

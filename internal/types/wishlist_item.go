package types

import (
	"time"

	"github.com/google/uuid"
)

// At most one item per (user, tour) pair; enforced transactionally in
// the wishlist service and backed by the composite unique index.
type WishlistItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour;column:user_id" json:"user_id"`
	TourID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour;column:tour_id" json:"tour_id"`
	AddedAt time.Time `gorm:"not null;column:added_at" json:"added_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

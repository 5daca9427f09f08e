package models

import "time"

// Store is a rateable entity owned by a store_owner user.
type Store struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(60);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Address   string    `json:"address" gorm:"type:varchar(400);not null"`
	OwnerID   string    `json:"owner_id" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StoreRatings []Rating `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// StoreWithRating is the listing row for stores: the store itself, the
// average of all its ratings (0 when unrated) and, when the listing was
// requested by an authenticated user, that user's own rating.
type StoreWithRating struct {
	Store
	Rating     float64 `json:"rating"`
	UserRating *int    `json:"user_rating,omitempty"`
}

package models

import "time"

// Rating is a single user's rating of a single store. At most one row
// exists per (user, store) pair; resubmitting overwrites the value.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_store;index"`
	StoreID   string    `json:"store_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_store;index"`
	Value     int       `json:"rating" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingWithUser joins a rating to its author's public identity for the
// store owner's rater list.
type RatingWithUser struct {
	Rating
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// RatingSummary is the aggregate view of a store's ratings. Average is 0,
// not null, when Count is 0.
type RatingSummary struct {
	Average float64 `json:"averageRating"`
	Count   int64   `json:"totalRatings"`
}

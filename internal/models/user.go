package models

import "time"

// User represents an account in the rating system.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(60);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Address   string    `json:"address,omitempty" gorm:"type:varchar(400)"`
	Role      Role      `json:"role" gorm:"type:varchar(50);not null;default:normal_user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stores  []Store  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Ratings []Rating `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserDetail is the admin view of a user. Store owners carry their owned
// store's id and current average rating.
type UserDetail struct {
	User
	StoreID     string   `json:"store_id,omitempty"`
	StoreRating *float64 `json:"store_rating,omitempty"`
}

// DashboardSummary holds the system-wide counts shown on the admin dashboard.
type DashboardSummary struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

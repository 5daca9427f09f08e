package repositories

import "ratehub/internal/models"

// RatingRepository defines the interface for rating data access. Upsert is
// a single atomic insert-or-update keyed on the (user_id, store_id)
// uniqueness constraint; GetByUserAndStore returns (nil, nil) when the user
// has not rated the store.
type RatingRepository interface {
	Upsert(userID, storeID string, value int) (*models.Rating, error)
	GetByID(id string) (*models.Rating, error)
	GetByUserAndStore(userID, storeID string) (*models.Rating, error)
	ListByStore(storeID string, page, limit int) ([]models.RatingWithUser, int64, error)
	AverageForStore(storeID string) (models.RatingSummary, error)
	Delete(id string) error
	TotalCount() (int64, error)
}

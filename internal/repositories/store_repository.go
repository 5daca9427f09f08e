package repositories

import "ratehub/internal/models"

// StoreRepository defines the interface for store data access. List rows
// carry the computed average rating and, when requestingUserID is set, the
// requesting user's own rating per store.
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id string) (*models.Store, error)
	GetByEmail(email string) (*models.Store, error)
	GetByOwner(ownerID string) (*models.Store, error)
	List(filters models.ListFilters, requestingUserID string) ([]models.StoreWithRating, int64, error)
	Update(id string, changes map[string]interface{}) (*models.Store, error)
	Delete(id string) error
	TotalCount() (int64, error)
}

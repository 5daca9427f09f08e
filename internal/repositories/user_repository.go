package repositories

import "ratehub/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(filters models.ListFilters) ([]models.User, int64, error)
	Update(id string, changes map[string]interface{}) (*models.User, error)
	Delete(id string) error
	TotalCount() (int64, error)
}

package repositories

import (
	"errors"
	"fmt"
	"strings"

	"ratehub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userSortFields is the allow-list for user listing sort keys. Anything
// outside it falls back to the default ordering.
var userSortFields = map[string]string{
	"id":      "id",
	"name":    "name",
	"email":   "email",
	"address": "address",
	"role":    "role",
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. A unique-constraint violation on email is
// reported as models.ErrDuplicateEmail; the constraint, not a pre-check,
// is what closes the race window.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, password hash included. The match
// is case-sensitive exact, mirroring the uniqueness constraint.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// applyUserFilters adds the filter predicates to a query. List and its
// count share this builder so total always matches the filtered set.
func applyUserFilters(q *gorm.DB, f models.ListFilters) *gorm.DB {
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Email != "" {
		q = q.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(f.Email)+"%")
	}
	if f.Address != "" {
		q = q.Where("LOWER(address) LIKE ?", "%"+strings.ToLower(f.Address)+"%")
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	return q
}

// List returns a filtered, sorted, paginated page of users plus the total
// number of rows matching the same predicates.
func (r *GORMUserRepository) List(filters models.ListFilters) ([]models.User, int64, error) {
	filters.Normalize()

	var total int64
	if err := applyUserFilters(r.db.Model(&models.User{}), filters).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	order := "id asc"
	if col, ok := userSortFields[filters.SortBy]; ok {
		order = col + " " + filters.SortOrder
	}

	var users []models.User
	err := applyUserFilters(r.db.Model(&models.User{}), filters).
		Order(order).
		Limit(filters.Limit).
		Offset(filters.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Update applies only the supplied fields and returns the fresh record.
// GORM bumps updated_at on its own.
func (r *GORMUserRepository) Update(id string, changes map[string]interface{}) (*models.User, error) {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetByID(id)
}

// Delete removes the user. Owned stores and authored ratings go with it
// through the foreign-key cascades.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TotalCount returns the global user count for the admin dashboard.
func (r *GORMUserRepository) TotalCount() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

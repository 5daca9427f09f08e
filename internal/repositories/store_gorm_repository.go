package repositories

import (
	"errors"
	"fmt"
	"strings"

	"ratehub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// storeSortFields is the allow-list for store listing sort keys. "rating"
// is virtual and orders by the computed average.
var storeSortFields = map[string]string{
	"id":      "stores.id",
	"name":    "stores.name",
	"email":   "stores.email",
	"address": "stores.address",
	"rating":  "rating",
}

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create inserts a new store. A unique-constraint violation on email is
// reported as models.ErrDuplicateEmail.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// GetByID retrieves a store by id.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// GetByEmail retrieves a store by email, used for uniqueness checks.
func (r *GORMStoreRepository) GetByEmail(email string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store by email: %w", err)
	}
	return &store, nil
}

// GetByOwner retrieves the store owned by the given user.
func (r *GORMStoreRepository) GetByOwner(ownerID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store by owner %s: %w", ownerID, err)
	}
	return &store, nil
}

func applyStoreFilters(q *gorm.DB, f models.ListFilters) *gorm.DB {
	if f.Name != "" {
		q = q.Where("LOWER(stores.name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Email != "" {
		q = q.Where("LOWER(stores.email) LIKE ?", "%"+strings.ToLower(f.Email)+"%")
	}
	if f.Address != "" {
		q = q.Where("LOWER(stores.address) LIKE ?", "%"+strings.ToLower(f.Address)+"%")
	}
	return q
}

// List returns a page of stores, each with the average of its ratings
// (0 when unrated) and, when requestingUserID is non-empty, that user's
// own rating for the store. The count query shares the same predicates.
func (r *GORMStoreRepository) List(filters models.ListFilters, requestingUserID string) ([]models.StoreWithRating, int64, error) {
	filters.Normalize()

	var total int64
	if err := applyStoreFilters(r.db.Model(&models.Store{}), filters).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	sel := "stores.*, COALESCE(AVG(ratings.value), 0) AS rating"
	args := []interface{}{}
	if requestingUserID != "" {
		sel += ", (SELECT value FROM ratings WHERE ratings.store_id = stores.id AND ratings.user_id = ?) AS user_rating"
		args = append(args, requestingUserID)
	}

	order := "stores.id asc"
	if col, ok := storeSortFields[filters.SortBy]; ok {
		order = col + " " + filters.SortOrder
	}

	q := r.db.Model(&models.Store{}).
		Select(sel, args...).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id")

	var rows []models.StoreWithRating
	err := applyStoreFilters(q, filters).
		Order(order).
		Limit(filters.Limit).
		Offset(filters.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}
	return rows, total, nil
}

// Update applies only the supplied fields and returns the fresh record.
func (r *GORMStoreRepository) Update(id string, changes map[string]interface{}) (*models.Store, error) {
	res := r.db.Model(&models.Store{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update store %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetByID(id)
}

// Delete removes the store; its ratings go with it through the cascade.
func (r *GORMStoreRepository) Delete(id string) error {
	res := r.db.Delete(&models.Store{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete store %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TotalCount returns the global store count for the admin dashboard.
func (r *GORMStoreRepository) TotalCount() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Store{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return count, nil
}

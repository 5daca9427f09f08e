package repositories

import (
	"errors"
	"fmt"
	"time"

	"ratehub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Upsert inserts a rating or, when the (user_id, store_id) row already
// exists, overwrites its value in the same statement. The ON CONFLICT
// clause keeps concurrent submissions from the same user down to a single
// row, last write winning.
func (r *GORMRatingRepository) Upsert(userID, storeID string, value int) (*models.Rating, error) {
	rating := models.Rating{
		ID:      uuid.New().String(),
		UserID:  userID,
		StoreID: storeID,
		Value:   value,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}
	// On conflict the stored row keeps its original id; re-read for the
	// caller-facing record.
	return r.GetByUserAndStore(userID, storeID)
}

// GetByID retrieves a rating by id.
func (r *GORMRatingRepository) GetByID(id string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.First(&rating, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rating by ID %s: %w", id, err)
	}
	return &rating, nil
}

// GetByUserAndStore returns the user's rating for the store, or (nil, nil)
// when the user has not rated it. "Not yet rated" is a result, not an error.
func (r *GORMRatingRepository) GetByUserAndStore(userID, storeID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.First(&rating, "user_id = ? AND store_id = ?", userID, storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating for user %s store %s: %w", userID, storeID, err)
	}
	return &rating, nil
}

// ListByStore returns a page of the store's ratings joined to each
// author's public identity, newest first, plus the store's total.
func (r *GORMRatingRepository) ListByStore(storeID string, page, limit int) ([]models.RatingWithUser, int64, error) {
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}

	var total int64
	if err := r.db.Model(&models.Rating{}).Where("store_id = ?", storeID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings for store %s: %w", storeID, err)
	}

	var rows []models.RatingWithUser
	err := r.db.Model(&models.Rating{}).
		Select("ratings.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings for store %s: %w", storeID, err)
	}
	return rows, total, nil
}

// AverageForStore returns the store's average rating and rating count.
// An unrated store yields {0, 0}. The average keeps full precision; any
// rounding is for display only.
func (r *GORMRatingRepository) AverageForStore(storeID string) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&summary).Error
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to average ratings for store %s: %w", storeID, err)
	}
	return summary, nil
}

// Delete removes a rating by id.
func (r *GORMRatingRepository) Delete(id string) error {
	res := r.db.Delete(&models.Rating{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete rating %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TotalCount returns the global rating count for the admin dashboard.
func (r *GORMRatingRepository) TotalCount() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}

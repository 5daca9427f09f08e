package services

import (
	"ratehub/internal/models"
	"ratehub/internal/repositories"
	"ratehub/internal/validation"
)

// RatingService handles rating submission, lookup and aggregation.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	storeRepo  repositories.StoreRepository
	rules      validation.Rules
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repositories.RatingRepository, storeRepo repositories.StoreRepository, rules validation.Rules) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		rules:      rules,
	}
}

// Submit upserts the caller's rating for a store. The value is bounds
// checked and the store must exist before anything is written; resubmitting
// overwrites the earlier value rather than adding a row.
func (s *RatingService) Submit(userID, storeID string, value int) (*models.Rating, error) {
	if err := s.rules.CheckRating(value); err != nil {
		return nil, models.ErrInvalidRating
	}
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	return s.ratingRepo.Upsert(userID, storeID, value)
}

// MyRating returns the caller's rating for a store, or nil when they have
// not rated it yet.
func (s *RatingService) MyRating(userID, storeID string) (*models.Rating, error) {
	return s.ratingRepo.GetByUserAndStore(userID, storeID)
}

// ListForStore returns a page of a store's ratings with author identities.
func (s *RatingService) ListForStore(storeID string, page, limit int) ([]models.RatingWithUser, int64, error) {
	return s.ratingRepo.ListByStore(storeID, page, limit)
}

// Average returns the store's rating aggregate, {0, 0} when unrated.
func (s *RatingService) Average(storeID string) (models.RatingSummary, error) {
	return s.ratingRepo.AverageForStore(storeID)
}

// Delete removes the caller's own rating. Deleting someone else's rating
// is forbidden; a missing id is a not-found, not a failure.
func (s *RatingService) Delete(id, callerID string) error {
	rating, err := s.ratingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rating.UserID != callerID {
		return models.ErrForbidden
	}
	return s.ratingRepo.Delete(id)
}

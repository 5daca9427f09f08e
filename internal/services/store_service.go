package services

import (
	"errors"

	"ratehub/internal/models"
	"ratehub/internal/repositories"
	"ratehub/internal/validation"
)

// StoreService handles store management and browsing.
type StoreService struct {
	storeRepo  repositories.StoreRepository
	userRepo   repositories.UserRepository
	ratingRepo repositories.RatingRepository
	rules      validation.Rules
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, userRepo repositories.UserRepository, ratingRepo repositories.RatingRepository, rules validation.Rules) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		rules:      rules,
	}
}

// UpdateStoreInput carries the optional fields of a store update.
type UpdateStoreInput struct {
	Name    *string
	Email   *string
	Address *string
}

// Create adds a store. The owner must exist and hold the store_owner role.
func (s *StoreService) Create(name, email, address, ownerID string) (*models.Store, error) {
	if err := s.rules.CheckStore(name, email, address).OrNil(); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, models.ErrOwnerNotFound
	}
	owner, err := s.userRepo.GetByID(ownerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.Role != models.RoleStoreOwner {
		return nil, models.ErrInvalidRole
	}

	store := &models.Store{
		Name:    name,
		Email:   email,
		Address: address,
		OwnerID: ownerID,
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Find returns a store without touching its ratings.
func (s *StoreService) Find(id string) (*models.Store, error) {
	return s.storeRepo.GetByID(id)
}

// Get returns a store together with its rating aggregate.
func (s *StoreService) Get(id string) (*models.Store, models.RatingSummary, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, models.RatingSummary{}, err
	}
	summary, err := s.ratingRepo.AverageForStore(id)
	if err != nil {
		return nil, models.RatingSummary{}, err
	}
	return store, summary, nil
}

// List returns a page of stores with computed averages and, for an
// authenticated caller, their own rating per store.
func (s *StoreService) List(filters models.ListFilters, requestingUserID string) ([]models.StoreWithRating, int64, error) {
	return s.storeRepo.List(filters, requestingUserID)
}

// Update applies only the supplied fields.
func (s *StoreService) Update(id string, input UpdateStoreInput) (*models.Store, error) {
	changes := map[string]interface{}{}
	if input.Name != nil {
		if err := s.rules.CheckName(*input.Name); err != nil {
			return nil, validation.Errors{err.Error()}
		}
		changes["name"] = *input.Name
	}
	if input.Email != nil {
		if err := s.rules.CheckEmail(*input.Email); err != nil {
			return nil, validation.Errors{err.Error()}
		}
		changes["email"] = *input.Email
	}
	if input.Address != nil {
		if *input.Address == "" {
			return nil, validation.Errors{"address is required"}
		}
		if err := s.rules.CheckAddress(*input.Address); err != nil {
			return nil, validation.Errors{err.Error()}
		}
		changes["address"] = *input.Address
	}
	if len(changes) == 0 {
		return s.storeRepo.GetByID(id)
	}
	return s.storeRepo.Update(id, changes)
}

// Delete removes a store; its ratings cascade away.
func (s *StoreService) Delete(id string) error {
	return s.storeRepo.Delete(id)
}

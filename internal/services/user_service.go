package services

import (
	"fmt"

	"ratehub/internal/models"
	"ratehub/internal/repositories"
	"ratehub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles admin-side user management and the dashboard counts.
type UserService struct {
	userRepo   repositories.UserRepository
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
	rules      validation.Rules
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository, rules validation.Rules) *UserService {
	return &UserService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		rules:      rules,
	}
}

// UpdateUserInput carries the optional fields of a user update. Nil means
// "leave unchanged".
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Address  *string
}

// Create adds a user with an explicit role. Legacy role spellings are
// normalized; unknown ones are rejected before anything is written.
func (s *UserService) Create(name, email, password, address, role string) (*models.User, error) {
	if err := s.rules.CheckSignup(name, email, password, address).OrNil(); err != nil {
		return nil, err
	}
	canonical, ok := models.NormalizeRole(role)
	if !ok {
		return nil, models.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Address:  address,
		Role:     canonical,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a user; store owners are enriched with their store's id and
// current average rating for the admin detail view.
func (s *UserService) Get(id string) (*models.UserDetail, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	detail := &models.UserDetail{User: *user}
	if user.Role == models.RoleStoreOwner {
		store, err := s.storeRepo.GetByOwner(user.ID)
		if err == nil {
			summary, err := s.ratingRepo.AverageForStore(store.ID)
			if err != nil {
				return nil, err
			}
			detail.StoreID = store.ID
			detail.StoreRating = &summary.Average
		}
	}
	return detail, nil
}

// List returns a filtered, sorted, paginated page of users and the total.
func (s *UserService) List(filters models.ListFilters) ([]models.User, int64, error) {
	return s.userRepo.List(filters)
}

// Update applies only the supplied fields; a new password is re-hashed.
func (s *UserService) Update(id string, input UpdateUserInput) (*models.User, error) {
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
		if err := s.rules.CheckAddress(*input.Address); err != nil {
			return nil, validation.Errors{err.Error()}
		}
		changes["address"] = *input.Address
	}
	if input.Password != nil {
		if err := s.rules.CheckPassword(*input.Password); err != nil {
			return nil, validation.Errors{err.Error()}
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes["password"] = string(hashed)
	}
	if len(changes) == 0 {
		return s.userRepo.GetByID(id)
	}
	return s.userRepo.Update(id, changes)
}

// Delete removes a user; their stores and ratings cascade away.
func (s *UserService) Delete(id string) error {
	return s.userRepo.Delete(id)
}

// DashboardSummary returns the system-wide counts for the admin dashboard.
func (s *UserService) DashboardSummary() (*models.DashboardSummary, error) {
	users, err := s.userRepo.TotalCount()
	if err != nil {
		return nil, err
	}
	stores, err := s.storeRepo.TotalCount()
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.TotalCount()
	if err != nil {
		return nil, err
	}
	return &models.DashboardSummary{
		TotalUsers:   users,
		TotalStores:  stores,
		TotalRatings: ratings,
	}, nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"ratehub/internal/models"
	"ratehub/internal/repositories"
	"ratehub/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login, password changes and session tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	storeRepo  repositories.StoreRepository
	rules      validation.Rules
	jwtSecret  []byte
	tokenDurat time.Duration
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, storeRepo repositories.StoreRepository, rules validation.Rules, jwtSecret string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		rules:      rules,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		logger:     logger,
	}
}

// Signup registers a normal user and returns a session token with the
// created identity. Duplicate emails surface as models.ErrDuplicateEmail
// out of the storage constraint, so no row is added on conflict.
func (s *AuthService) Signup(name, email, password, address string) (string, *models.User, error) {
	if err := s.rules.CheckSignup(name, email, password, address).OrNil(); err != nil {
		return "", nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Address:  address,
		Role:     models.RoleNormalUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": user.ID}).Info("user signed up")
	return token, user, nil
}

// Login authenticates by email and password. Failures are a uniform
// models.ErrInvalidCredentials regardless of whether the email exists.
// For store owners the owned store's id is returned alongside the
// identity, which their dashboard needs.
func (s *AuthService) Login(email, password string) (string, *models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, "", models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, "", models.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, "", err
	}

	storeID := ""
	if user.Role == models.RoleStoreOwner {
		if store, err := s.storeRepo.GetByOwner(user.ID); err == nil {
			storeID = store.ID
		}
	}
	return token, user, storeID, nil
}

// ChangePassword verifies the old password before re-hashing the new one.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.ErrInvalidCredentials
	}
	if err := s.rules.CheckPassword(newPassword); err != nil {
		return validation.Errors{err.Error()}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.userRepo.Update(userID, map[string]interface{}{"password": string(hashed)}); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID}).Info("password changed")
	return nil
}

// generateToken signs an HS256 token carrying the identity and role claims.
func (s *AuthService) generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

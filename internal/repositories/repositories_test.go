package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"ratehub/internal/models"
	"ratehub/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a per-test in-memory SQLite database with foreign keys
// enforced, so cascade behavior matches the production schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}))
	return db
}

func seedUser(t *testing.T, repo repositories.UserRepository, name, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: "hashed-password",
		Role:     role,
	}
	require.NoError(t, repo.Create(user))
	return user
}

func seedStore(t *testing.T, repo repositories.StoreRepository, name, email, ownerID string) *models.Store {
	t.Helper()
	store := &models.Store{
		Name:    name,
		Email:   email,
		Address: "1 Market Street",
		OwnerID: ownerID,
	}
	require.NoError(t, repo.Create(store))
	return store
}

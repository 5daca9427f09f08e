package repositories_test

import (
	"testing"

	"ratehub/internal/models"
	"ratehub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRepository_CreateAndLookups(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	byID, err := storeRepo.GetByID(store.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, byID.OwnerID)

	byEmail, err := storeRepo.GetByEmail("shop@example.com")
	require.NoError(t, err)
	assert.Equal(t, store.ID, byEmail.ID)

	byOwner, err := storeRepo.GetByOwner(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ID, byOwner.ID)

	_, err = storeRepo.GetByOwner("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStoreRepository_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	err := storeRepo.Create(&models.Store{
		Name:    "Copy Shop",
		Email:   "shop@example.com",
		Address: "2 Other Street",
		OwnerID: owner.ID,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestStoreRepository_ListComputesAverages(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater1 := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	rater2 := seedUser(t, userRepo, "Bob", "bob@example.com", models.RoleNormalUser)

	rated := seedStore(t, storeRepo, "Rated Shop", "rated@example.com", owner.ID)
	seedStore(t, storeRepo, "Quiet Shop", "quiet@example.com", owner.ID)

	_, err := ratingRepo.Upsert(rater1.ID, rated.ID, 4)
	require.NoError(t, err)
	_, err = ratingRepo.Upsert(rater2.ID, rated.ID, 5)
	require.NoError(t, err)

	rows, total, err := storeRepo.List(models.ListFilters{SortBy: "name"}, rater1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	byName := map[string]models.StoreWithRating{}
	for _, row := range rows {
		byName[row.Name] = row
	}

	assert.InDelta(t, 4.5, byName["Rated Shop"].Rating, 0.0001)
	require.NotNil(t, byName["Rated Shop"].UserRating)
	assert.Equal(t, 4, *byName["Rated Shop"].UserRating)

	// Unrated store averages to 0, not null; the caller has no rating.
	assert.Equal(t, 0.0, byName["Quiet Shop"].Rating)
	assert.Nil(t, byName["Quiet Shop"].UserRating)

	// Without a requesting user no own-rating column is produced.
	rows, _, err = storeRepo.List(models.ListFilters{}, "")
	require.NoError(t, err)
	for _, row := range rows {
		assert.Nil(t, row.UserRating)
	}
}

func TestStoreRepository_SortByRating(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)

	low := seedStore(t, storeRepo, "Low Shop", "low@example.com", owner.ID)
	high := seedStore(t, storeRepo, "High Shop", "high@example.com", owner.ID)

	_, err := ratingRepo.Upsert(rater.ID, low.ID, 2)
	require.NoError(t, err)
	_, err = ratingRepo.Upsert(rater.ID, high.ID, 5)
	require.NoError(t, err)

	rows, _, err := storeRepo.List(models.ListFilters{SortBy: "rating", SortOrder: "desc"}, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "High Shop", rows[0].Name)
	assert.Equal(t, "Low Shop", rows[1].Name)
}

func TestStoreRepository_FilterTotalsMatch(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	seedStore(t, storeRepo, "Alpha Market", "alpha@example.com", owner.ID)
	seedStore(t, storeRepo, "Beta Market", "beta@example.com", owner.ID)
	seedStore(t, storeRepo, "Gamma Deli", "gamma@example.com", owner.ID)

	rows, total, err := storeRepo.List(models.ListFilters{Name: "market"}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
}

func TestStoreRepository_UpdateAndDelete(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	updated, err := storeRepo.Update(store.ID, map[string]interface{}{"name": "Corner Shop II"})
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop II", updated.Name)

	_, err = storeRepo.Update("missing", map[string]interface{}{"name": "Nothing"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, storeRepo.Delete(store.ID))
	assert.ErrorIs(t, storeRepo.Delete(store.ID), models.ErrNotFound)
}

package repositories_test

import (
	"testing"

	"ratehub/internal/models"
	"ratehub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRepository_UpsertKeepsOneRow(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	first, err := ratingRepo.Upsert(rater.ID, store.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Value)

	second, err := ratingRepo.Upsert(rater.ID, store.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Value)

	// The second submission overwrote the first row instead of adding one.
	assert.Equal(t, first.ID, second.ID)

	total, err := ratingRepo.TotalCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	summary, err := ratingRepo.AverageForStore(store.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.InDelta(t, 2.0, summary.Average, 0.0001)
}

func TestRatingRepository_AverageUnratedStore(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	store := seedStore(t, storeRepo, "Quiet Shop", "quiet@example.com", owner.ID)

	summary, err := ratingRepo.AverageForStore(store.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, int64(0), summary.Count)
}

func TestRatingRepository_AverageFullPrecision(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	values := []int{5, 4, 4}
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, v := range values {
		rater := seedUser(t, userRepo, "Rater", emails[i], models.RoleNormalUser)
		_, err := ratingRepo.Upsert(rater.ID, store.ID, v)
		require.NoError(t, err)
	}

	summary, err := ratingRepo.AverageForStore(store.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.InDelta(t, 13.0/3.0, summary.Average, 0.0001)
}

func TestRatingRepository_GetByUserAndStore(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	// "Not yet rated" is a nil result, not an error.
	rating, err := ratingRepo.GetByUserAndStore(rater.ID, store.ID)
	require.NoError(t, err)
	assert.Nil(t, rating)

	_, err = ratingRepo.Upsert(rater.ID, store.ID, 3)
	require.NoError(t, err)

	rating, err = ratingRepo.GetByUserAndStore(rater.ID, store.ID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 3, rating.Value)
}

func TestRatingRepository_ListByStore(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	alice := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	bob := seedUser(t, userRepo, "Bob", "bob@example.com", models.RoleNormalUser)
	_, err := ratingRepo.Upsert(alice.ID, store.ID, 4)
	require.NoError(t, err)
	_, err = ratingRepo.Upsert(bob.ID, store.ID, 5)
	require.NoError(t, err)

	rows, total, err := ratingRepo.ListByStore(store.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	names := map[string]string{}
	for _, row := range rows {
		names[row.UserName] = row.UserEmail
	}
	assert.Equal(t, "alice@example.com", names["Alice"])
	assert.Equal(t, "bob@example.com", names["Bob"])

	rows, total, err = ratingRepo.ListByStore(store.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 1)
}

func TestRatingRepository_Delete(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	rating, err := ratingRepo.Upsert(rater.ID, store.ID, 4)
	require.NoError(t, err)

	require.NoError(t, ratingRepo.Delete(rating.ID))
	assert.ErrorIs(t, ratingRepo.Delete(rating.ID), models.ErrNotFound)
}

func TestCascade_DeleteUserRemovesStoresAndRatings(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	_, err := ratingRepo.Upsert(rater.ID, store.ID, 4)
	require.NoError(t, err)

	// Deleting the owner cascades to their store, and in turn to the
	// store's ratings.
	require.NoError(t, userRepo.Delete(owner.ID))

	_, err = storeRepo.GetByID(store.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	total, err := ratingRepo.TotalCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCascade_DeleteRaterRemovesTheirRatings(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	owner := seedUser(t, userRepo, "Olive Owner", "olive@example.com", models.RoleStoreOwner)
	rater := seedUser(t, userRepo, "Alice", "alice@example.com", models.RoleNormalUser)
	store := seedStore(t, storeRepo, "Corner Shop", "shop@example.com", owner.ID)

	_, err := ratingRepo.Upsert(rater.ID, store.ID, 4)
	require.NoError(t, err)

	require.NoError(t, userRepo.Delete(rater.ID))

	// The store survives, its ratings from the deleted user do not.
	_, err = storeRepo.GetByID(store.ID)
	require.NoError(t, err)
	summary, err := ratingRepo.AverageForStore(store.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Count)
	assert.Equal(t, 0.0, summary.Average)
}

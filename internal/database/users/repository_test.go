package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db.DB
}

func TestRepository_CreateUser(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	user := &entities.User{Username: "testuser", PasswordHash: "hash"}
	err := repo.CreateUser(ctx, user)

	require.NoError(t, err)
	assert.Len(t, user.ID, 36) // UUID assigned by the store
	assert.Equal(t, "testuser", user.Username)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRepository_CreateUser_DuplicateUsername(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &entities.User{Username: "testuser", PasswordHash: "a"}))

	err := repo.CreateUser(ctx, &entities.User{Username: "testuser", PasswordHash: "b"})

	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	created := &entities.User{Username: "testuser", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, created))

	user, err := repo.GetUserByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
}

func TestRepository_GetUserByID_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetUserByID(context.Background(), "missing")

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_GetUserByUsername(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	created := &entities.User{Username: "testuser", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, created))

	user, err := repo.GetUserByUsername(ctx, "testuser")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetUserByUsername_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetUserByUsername(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_DeleteUserWithAnimes(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	alice := &entities.User{Username: "alice12", PasswordHash: "hash"}
	bob := &entities.User{Username: "bobby1", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, alice))
	require.NoError(t, repo.CreateUser(ctx, bob))

	require.NoError(t, db.Create(&entities.Anime{Title: "Bleach", CreatorID: alice.ID}).Error)
	require.NoError(t, db.Create(&entities.Anime{Title: "Naruto", CreatorID: alice.ID}).Error)
	require.NoError(t, db.Create(&entities.Anime{Title: "Naruto", CreatorID: bob.ID}).Error)

	removed, err := repo.DeleteUserWithAnimes(ctx, alice.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.GetUserByID(ctx, alice.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	var remaining []entities.Anime
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, bob.ID, remaining[0].CreatorID)
}

func TestRepository_DeleteUserWithAnimes_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.DeleteUserWithAnimes(context.Background(), "missing")

	assert.ErrorIs(t, err, database.ErrNotFound)
}

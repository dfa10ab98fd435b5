package animes

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "animes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db.DB
}

func createUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newAnime(title, creatorID string) *entities.Anime {
	return &entities.Anime{
		Title:     title,
		Images:    entities.Images{JPG: entities.ImageSet{ImageURL: "http://x/" + title + ".jpg"}},
		CreatorID: creatorID,
	}
}

func TestRepository_AddAnime(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice12")

	anime := newAnime("Bleach", alice.ID)
	require.NoError(t, repo.AddAnime(ctx, anime))
	assert.NotEmpty(t, anime.ID)

	loaded, err := repo.GetAnimeByID(ctx, anime.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bleach", loaded.Title)
	assert.Equal(t, alice.ID, loaded.CreatorID)
}

func TestRepository_AddAnime_MissingCreator(t *testing.T) {
	repo, db := setupTestDB(t)

	err := repo.AddAnime(context.Background(), newAnime("Bleach", "missing"))

	assert.ErrorIs(t, err, database.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&entities.Anime{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_AddAnime_Duplicate(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice12")
	bob := createUser(t, db, "bobby1")

	require.NoError(t, repo.AddAnime(ctx, newAnime("Naruto", alice.ID)))

	err := repo.AddAnime(ctx, newAnime("Naruto", alice.ID))
	assert.ErrorIs(t, err, database.ErrDuplicate)

	assert.NoError(t, repo.AddAnime(ctx, newAnime("Naruto", bob.ID)))
}

func TestRepository_GetAnimesByCreator(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice12")
	bob := createUser(t, db, "bobby1")

	t.Run("empty library is an empty slice", func(t *testing.T) {
		animes, err := repo.GetAnimesByCreator(ctx, alice.ID)
		require.NoError(t, err)
		assert.NotNil(t, animes)
		assert.Empty(t, animes)
	})

	for _, title := range []string{"Bleach", "Naruto", "One Piece"} {
		require.NoError(t, repo.AddAnime(ctx, newAnime(title, alice.ID)))
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, repo.AddAnime(ctx, newAnime("Monster", bob.ID)))

	t.Run("returns only the creator's animes in insertion order", func(t *testing.T) {
		animes, err := repo.GetAnimesByCreator(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, animes, 3)
		assert.Equal(t, "Bleach", animes[0].Title)
		assert.Equal(t, "Naruto", animes[1].Title)
		assert.Equal(t, "One Piece", animes[2].Title)
	})

	t.Run("same timestamp falls back to id order", func(t *testing.T) {
		carol := createUser(t, db, "carol1")
		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		for _, id := range []string{"ccc", "aaa", "bbb"} {
			anime := newAnime("Title "+id, carol.ID)
			anime.ID = id
			anime.CreatedAt = at
			require.NoError(t, repo.AddAnime(ctx, anime))
		}

		animes, err := repo.GetAnimesByCreator(ctx, carol.ID)
		require.NoError(t, err)
		require.Len(t, animes, 3)
		assert.Equal(t, "aaa", animes[0].ID)
		assert.Equal(t, "bbb", animes[1].ID)
		assert.Equal(t, "ccc", animes[2].ID)
	})
}

func TestRepository_SearchAnimesByTitle(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice12")
	bob := createUser(t, db, "bobby1")

	for _, title := range []string{"Naruto", "Naruto Shippuden", "Bleach", "100% Orange", "Ōkami Über", "Ébène"} {
		require.NoError(t, repo.AddAnime(ctx, newAnime(title, alice.ID)))
	}
	require.NoError(t, repo.AddAnime(ctx, newAnime("Boruto: Naruto Next Generations", bob.ID)))

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"case insensitive substring", "naRUTO", []string{"Naruto", "Naruto Shippuden"}},
		{"suffix", "each", []string{"Bleach"}},
		{"no match", "monster", []string{}},
		{"percent is literal", "100%", []string{"100% Orange"}},
		{"underscore is literal", "_", []string{}},
		{"accented exact case", "Ōkami", []string{"Ōkami Über"}},
		{"accented upper case", "ÉBÈNE", []string{"Ébène"}},
		{"accented lower case", "über", []string{"Ōkami Über"}},
		{"macron lower case", "ōKAMI", []string{"Ōkami Über"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			animes, err := repo.SearchAnimesByTitle(ctx, alice.ID, tt.pattern)
			require.NoError(t, err)

			titles := make([]string, 0, len(animes))
			for _, a := range animes {
				titles = append(titles, a.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestRepository_GetAnimeByTitle(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice12")

	require.NoError(t, repo.AddAnime(ctx, newAnime("Bleach", alice.ID)))

	found, err := repo.GetAnimeByTitle(ctx, alice.ID, "Bleach")
	require.NoError(t, err)
	assert.Equal(t, "Bleach", found.Title)

	_, err = repo.GetAnimeByTitle(ctx, alice.ID, "Naruto")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_DeleteAnime(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice12")
	bob := createUser(t, db, "bobby1")

	anime := newAnime("Bleach", alice.ID)
	require.NoError(t, repo.AddAnime(ctx, anime))

	t.Run("other creator cannot delete", func(t *testing.T) {
		err := repo.DeleteAnime(ctx, anime.ID, bob.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)

		_, err = repo.GetAnimeByID(ctx, anime.ID)
		assert.NoError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, repo.DeleteAnime(ctx, anime.ID, alice.ID))

		_, err := repo.GetAnimeByID(ctx, anime.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		err := repo.DeleteAnime(ctx, anime.ID, alice.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Shōgun", "SHŌGUN"))
	assert.True(t, containsFold("ΟΔΥΣΣΕΥΣ", "ευς"))
	assert.True(t, containsFold("Kino no Tabi", "kINO"))
	assert.True(t, containsFold("anything", ""))
	assert.False(t, containsFold("Okami", "Ōkami"))
	assert.False(t, containsFold("Bleach", "Bleach!"))
}

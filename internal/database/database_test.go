package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/animeshelf/library/internal/config"
	"github.com/animeshelf/library/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewSQLiteDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"users", "animes", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.DB.Migrator().HasIndex(&entities.Anime{}, "idx_animes_creator_title"))
	assert.NoError(t, db.Ping(context.Background()))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "mongo", URL: "mongodb://localhost"})
	assert.ErrorContains(t, err, "unsupported SQL driver")
}

func TestDatabase_UniqueTitlePerCreator(t *testing.T) {
	db := setupTestDB(t)

	alice := &entities.User{Username: "alice12", PasswordHash: "hash"}
	bob := &entities.User{Username: "bobby1", PasswordHash: "hash"}
	require.NoError(t, db.DB.Create(alice).Error)
	require.NoError(t, db.DB.Create(bob).Error)

	first := &entities.Anime{Title: "Naruto", CreatorID: alice.ID}
	require.NoError(t, db.DB.Create(first).Error)
	assert.NotEmpty(t, first.ID)

	err := db.DB.Create(&entities.Anime{Title: "Naruto", CreatorID: alice.ID}).Error
	assert.ErrorIs(t, TranslateError(err), ErrDuplicate)

	// Same title for a different creator is fine
	assert.NoError(t, db.DB.Create(&entities.Anime{Title: "Naruto", CreatorID: bob.ID}).Error)
}

func TestDatabase_ForeignKeyEnforced(t *testing.T) {
	db := setupTestDB(t)

	err := db.DB.Create(&entities.Anime{Title: "Orphan", CreatorID: "does-not-exist"}).Error
	assert.Error(t, err)
}

func TestDatabase_TagsRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	user := &entities.User{Username: "tagger", PasswordHash: "hash"}
	require.NoError(t, db.DB.Create(user).Error)

	score := 8.7
	anime := &entities.Anime{
		Title:     "Bleach",
		Images:    entities.Images{JPG: entities.ImageSet{ImageURL: "http://x/y.jpg"}},
		Rating:    "PG-13",
		Score:     &score,
		Genres:    []entities.NamedTag{{Name: "Action"}, {Name: "Adventure"}},
		CreatorID: user.ID,
	}
	require.NoError(t, db.DB.Create(anime).Error)

	var loaded entities.Anime
	require.NoError(t, db.DB.First(&loaded, "id = ?", anime.ID).Error)
	assert.Equal(t, "http://x/y.jpg", loaded.Images.JPG.ImageURL)
	assert.Equal(t, []entities.NamedTag{{Name: "Action"}, {Name: "Adventure"}}, loaded.Genres)
	assert.Equal(t, []entities.NamedTag{}, loaded.Themes)
	require.NotNil(t, loaded.Score)
	assert.InDelta(t, 8.7, *loaded.Score, 0.0001)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, TranslateError(gorm.ErrDuplicatedKey), ErrDuplicate)
	assert.ErrorIs(t, TranslateError(fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound)), ErrNotFound)

	other := errors.New("disk full")
	assert.Equal(t, other, TranslateError(other))
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"./app.db", "./app.db?_foreign_keys=1&_busy_timeout=5000"},
		{"./app.db?cache=shared", "./app.db?cache=shared&_foreign_keys=1&_busy_timeout=5000"},
		{"./app.db?_foreign_keys=0", "./app.db?_foreign_keys=0&_busy_timeout=5000"},
		{"file::memory:?_busy_timeout=100", "file::memory:?_busy_timeout=100&_foreign_keys=1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in))
	}
}

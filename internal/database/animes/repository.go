// Package animes provides database operations for library entries.
//
// Every anime belongs to exactly one user (creator_id). A user's library is
// the set of rows carrying its id, in insertion order.
package animes

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

// Repository handles all anime database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new animes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAnimesByCreator returns every anime owned by the user, oldest first.
func (r *Repository) GetAnimesByCreator(ctx context.Context, creatorID string) ([]entities.Anime, error) {
	animes := []entities.Anime{}
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&animes).Error
	return animes, err
}

// SearchAnimesByTitle returns the user's animes whose title contains pattern,
// ignoring case. The pattern is matched literally. Folding happens in Go:
// SQLite's LOWER and LIKE only fold ASCII, which misses titles like "Ōkami".
func (r *Repository) SearchAnimesByTitle(ctx context.Context, creatorID, pattern string) ([]entities.Anime, error) {
	library, err := r.GetAnimesByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	matches := []entities.Anime{}
	for _, anime := range library {
		if containsFold(anime.Title, pattern) {
			matches = append(matches, anime)
		}
	}
	return matches, nil
}

// GetAnimeByID retrieves an anime by ID.
func (r *Repository) GetAnimeByID(ctx context.Context, id string) (*entities.Anime, error) {
	var anime entities.Anime
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&anime).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &anime, nil
}

// GetAnimeByTitle retrieves the creator's anime with exactly this title.
func (r *Repository) GetAnimeByTitle(ctx context.Context, creatorID, title string) (*entities.Anime, error) {
	var anime entities.Anime
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND title = ?", creatorID, title).
		First(&anime).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &anime, nil
}

// AddAnime inserts the anime after confirming, inside the same transaction,
// that its creator still exists. Returns database.ErrNotFound for a missing
// creator and database.ErrDuplicate when the creator already has the title.
func (r *Repository) AddAnime(ctx context.Context, anime *entities.Anime) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&entities.User{}).Where("id = ?", anime.CreatorID).Count(&owners).Error; err != nil {
			return fmt.Errorf("check creator: %w", err)
		}
		if owners == 0 {
			return fmt.Errorf("creator %s: %w", anime.CreatorID, database.ErrNotFound)
		}

		if err := tx.Create(anime).Error; err != nil {
			return fmt.Errorf("create anime %q: %w", anime.Title, database.TranslateError(err))
		}
		return nil
	})
}

// DeleteAnime removes the anime if it belongs to creatorID. Returns
// database.ErrNotFound when no such row exists for that creator.
func (r *Repository) DeleteAnime(ctx context.Context, id, creatorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND creator_id = ?", id, creatorID).Delete(&entities.Anime{})
		if result.Error != nil {
			return fmt.Errorf("delete anime: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}

// containsFold reports whether substr is within s under Unicode case folding.
func containsFold(s, substr string) bool {
	return strings.Contains(foldCase(s), foldCase(substr))
}

// foldCase maps every rune to the smallest rune of its case-folding orbit,
// so 'Σ', 'σ' and 'ς' compare equal the way strings.EqualFold sees them.
func foldCase(s string) string {
	return strings.Map(func(r rune) rune {
		least := r
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f < least {
				least = f
			}
		}
		return least
	}, s)
}

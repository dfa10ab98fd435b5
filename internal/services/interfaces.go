package services

import (
	"context"

	"github.com/animeshelf/library/internal/entities"
)

// UserReader looks up library owners.
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
}

// AnimeStore reads and writes library entries. Implementations return
// database.ErrNotFound and database.ErrDuplicate (possibly wrapped).
type AnimeStore interface {
	GetAnimesByCreator(ctx context.Context, creatorID string) ([]entities.Anime, error)
	SearchAnimesByTitle(ctx context.Context, creatorID, pattern string) ([]entities.Anime, error)
	GetAnimeByID(ctx context.Context, id string) (*entities.Anime, error)
	GetAnimeByTitle(ctx context.Context, creatorID, title string) (*entities.Anime, error)
	AddAnime(ctx context.Context, anime *entities.Anime) error
	DeleteAnime(ctx context.Context, id, creatorID string) error
}

// LibraryAuditor records library changes. Implementations must not block.
type LibraryAuditor interface {
	LogLibrary(userID, action, animeID, title string, err error)
}

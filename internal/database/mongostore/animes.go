package mongostore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

var insertionOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// GetAnimesByCreator returns every anime owned by the user, oldest first.
func (s *Store) GetAnimesByCreator(ctx context.Context, creatorID string) ([]entities.Anime, error) {
	return s.findAnimes(ctx, bson.M{"creator": creatorID})
}

// SearchAnimesByTitle returns the user's animes whose title contains pattern,
// ignoring case. The pattern is matched literally.
func (s *Store) SearchAnimesByTitle(ctx context.Context, creatorID, pattern string) ([]entities.Anime, error) {
	return s.findAnimes(ctx, bson.M{
		"creator": creatorID,
		"title":   primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"},
	})
}

func (s *Store) findAnimes(ctx context.Context, filter bson.M) ([]entities.Anime, error) {
	cursor, err := s.animes().Find(ctx, filter, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, err
	}
	animes := []entities.Anime{}
	if err := cursor.All(ctx, &animes); err != nil {
		return nil, err
	}
	return animes, nil
}

func (s *Store) GetAnimeByID(ctx context.Context, id string) (*entities.Anime, error) {
	return s.findAnime(ctx, bson.M{"_id": id})
}

// GetAnimeByTitle retrieves the creator's anime with exactly this title.
func (s *Store) GetAnimeByTitle(ctx context.Context, creatorID, title string) (*entities.Anime, error) {
	return s.findAnime(ctx, bson.M{"creator": creatorID, "title": title})
}

func (s *Store) findAnime(ctx context.Context, filter bson.M) (*entities.Anime, error) {
	var anime entities.Anime
	if err := s.animes().FindOne(ctx, filter).Decode(&anime); err != nil {
		return nil, translateError(err)
	}
	return &anime, nil
}

// AddAnime inserts the anime after confirming its creator exists.
func (s *Store) AddAnime(ctx context.Context, anime *entities.Anime) error {
	anime.Prepare()
	now := time.Now().UTC()
	anime.CreatedAt, anime.UpdatedAt = now, now

	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		owners, err := s.users().CountDocuments(sc, bson.M{"_id": anime.CreatorID})
		if err != nil {
			return fmt.Errorf("check creator: %w", err)
		}
		if owners == 0 {
			return fmt.Errorf("creator %s: %w", anime.CreatorID, database.ErrNotFound)
		}

		if _, err := s.animes().InsertOne(sc, anime); err != nil {
			return fmt.Errorf("create anime %q: %w", anime.Title, translateError(err))
		}
		return nil
	})
}

// DeleteAnime removes the anime if it belongs to creatorID.
func (s *Store) DeleteAnime(ctx context.Context, id, creatorID string) error {
	res, err := s.animes().DeleteOne(ctx, bson.M{"_id": id, "creator": creatorID})
	if err != nil {
		return fmt.Errorf("delete anime: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

// CreateUser inserts a user. A taken username yields database.ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := s.users().InsertOne(ctx, user); err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, translateError(err))
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*entities.User, error) {
	var user entities.User
	if err := s.users().FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// DeleteUserWithAnimes removes the user and all of its animes in one
// transaction. Returns the number of animes removed.
func (s *Store) DeleteUserWithAnimes(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.animes().DeleteMany(sc, bson.M{"creator": id})
		if err != nil {
			return fmt.Errorf("delete animes: %w", err)
		}
		removed = res.DeletedCount

		res, err = s.users().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if res.DeletedCount == 0 {
			return database.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

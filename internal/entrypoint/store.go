package entrypoint

import (
	"context"

	"github.com/animeshelf/library/internal/audit"
	"github.com/animeshelf/library/internal/auth"
	"github.com/animeshelf/library/internal/config"
	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/database/animes"
	auditrepo "github.com/animeshelf/library/internal/database/audit"
	"github.com/animeshelf/library/internal/database/mongostore"
	"github.com/animeshelf/library/internal/database/users"
	http_controllers "github.com/animeshelf/library/internal/http"
	"github.com/animeshelf/library/internal/services"
)

// store is everything the services need from persistence. The SQL
// repositories and the mongo store both provide it.
type store interface {
	auth.UserStore
	services.UserReader
	services.AnimeStore
	audit.EventStore
	http_controllers.Pinger
	Close() error
}

// Aliases give each embedded repository its own field name.
type (
	userRepository  = users.Repository
	animeRepository = animes.Repository
	auditRepository = auditrepo.Repository
)

// sqlStore groups the gorm repositories over one connection.
type sqlStore struct {
	*database.Database
	*userRepository
	*animeRepository
	*auditRepository
}

func newSQLStore(db *database.Database) *sqlStore {
	return &sqlStore{
		Database:        db,
		userRepository:  users.NewRepository(db.DB),
		animeRepository: animes.NewRepository(db.DB),
		auditRepository: auditrepo.NewRepository(db.DB),
	}
}

func openStore(ctx context.Context, cfg config.Database) (store, error) {
	if cfg.Driver == config.DriverMongo {
		st, err := mongostore.Connect(ctx, cfg.URL, cfg.Name)
		if err != nil {
			return nil, err
		}
		return st, nil
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return newSQLStore(db), nil
}

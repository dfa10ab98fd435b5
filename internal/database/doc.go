// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite/postgres) and migrations
//	├── errors.go        # ErrNotFound / ErrDuplicate shared by all backends
//	├── users/           # User CRUD and cascading unsubscribe
//	├── animes/          # Library entries scoped to their creator
//	├── audit/           # Audit event persistence and retention
//	└── mongostore/      # The same repositories backed by MongoDB
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	usersRepo := users.NewRepository(db.DB)
//	animesRepo := animes.NewRepository(db.DB)
//
//	animes, err := animesRepo.GetAnimesByCreator(ctx, userID)
//
// Repositories return ErrNotFound and ErrDuplicate (possibly wrapped); the
// service layer turns them into apperr kinds.
//
// # Transactions
//
// Writes that touch more than one row (adding an anime after checking its
// owner, deleting a user together with its animes) run inside
// gorm.DB.Transaction so they commit or roll back as a unit. The unique index
// on (creator_id, title) is the final guard against duplicate entries.
package database

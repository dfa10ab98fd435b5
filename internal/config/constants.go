package config

const (
	// DefaultDatabasePath is the default SQLite file for the main application database
	DefaultDatabasePath = "./anime-library.db"

	// DefaultTasksDatabasePath is the default SQLite file backing the task queue
	DefaultTasksDatabasePath = "./anime-library-tasks.db"

	// DefaultMongoDatabase is used when DATABASE_DRIVER=mongo and DATABASE_NAME is unset
	DefaultMongoDatabase = "anime_library"
)

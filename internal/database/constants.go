package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// DefaultMaxConnections applies when the configured maximum is not positive
	DefaultMaxConnections = 10
)

// MigrationsDir is the embedded directory holding goose SQL files
const MigrationsDir = "migrations"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgMigrationSetup          = "failed to prepare migrations"
	ErrMsgMigrationFailed         = "failed to apply migrations"
	ErrMsgMigrationStatus         = "failed to read migration status"
	ErrMsgRollbackFailed          = "failed to roll back migration"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgSchemaUpToDate                  = "Database schema up to date"
	LogMsgMigrationRolledBack             = "Rolled back migration"
)

package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewTestDB creates an in-memory SQLite store for testing
func NewTestDB() (*Storage, func(), error) {
	// Create in-memory database
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open test database: %w", err)
	}
	// Every new connection would get its own empty in-memory database
	database.SetMaxOpenConns(1)

	// Run migrations
	if err := migrate(database); err != nil {
		database.Close()
		return nil, nil, err
	}

	// Cleanup function
	cleanup := func() {
		database.Close()
	}

	return NewFromDB(database), cleanup, nil
}

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the moderation database. Every store package ensures
// its own tables on construction.
func Open(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY churn
	// under concurrent case recording.
	db.SetMaxOpenConns(1)
	return db, nil
}

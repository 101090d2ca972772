package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

// Prints migration status and a summary of stored sessions for the SQLite
// store at DB_PATH.
func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/dashboard.db"
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Check goose version table
	fmt.Println("=== Goose Migration Status ===")
	rows, err := db.Query("SELECT version_id, is_applied, tstamp FROM goose_db_version ORDER BY id")
	if err != nil {
		fmt.Printf("Error querying goose_db_version: %v\n", err)
		fmt.Println("Table might not exist yet")
	} else {
		defer rows.Close()
		for rows.Next() {
			var versionID int64
			var isApplied bool
			var tstamp string
			if err := rows.Scan(&versionID, &isApplied, &tstamp); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Version: %d, Applied: %v, Timestamp: %s\n", versionID, isApplied, tstamp)
		}
	}

	fmt.Println("\n=== Stored Sessions ===")
	var count int64
	var oldest, newest sql.NullString
	err = db.QueryRow("SELECT COUNT(*), MIN(updated_at), MAX(updated_at) FROM kv_entries WHERE key = 'token'").
		Scan(&count, &oldest, &newest)
	if err != nil {
		fmt.Printf("Error querying kv_entries: %v\n", err)
		return
	}
	fmt.Printf("Sessions with a token: %d\n", count)
	if count > 0 {
		fmt.Printf("Oldest write: %s\n", oldest.String)
		fmt.Printf("Newest write: %s\n", newest.String)
	}
}

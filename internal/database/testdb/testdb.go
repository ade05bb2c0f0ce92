// Package testdb provides an in-memory SQLite database with the same
// logical schema as the production MySQL one, for repository and handler
// tests. The repository layer only uses portable SQL (? placeholders, no
// vendor date math), so the same queries run against both backends.
package testdb

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		role TEXT NOT NULL DEFAULT 'User',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		avatar_url TEXT,
		is_kids BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE content (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		type TEXT NOT NULL,
		genre TEXT NOT NULL DEFAULT '',
		release_year INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		duration INTEGER NOT NULL DEFAULT 0,
		thumbnail_url TEXT,
		trailer_url TEXT,
		video_url TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE seasons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id INTEGER NOT NULL,
		season_number INTEGER NOT NULL,
		title TEXT NOT NULL
	)`,
	`CREATE TABLE episodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		season_id INTEGER NOT NULL,
		episode_number INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		duration INTEGER NOT NULL DEFAULT 0,
		video_url TEXT,
		thumbnail_url TEXT
	)`,
	`CREATE TABLE watch_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id INTEGER NOT NULL,
		content_id INTEGER NOT NULL,
		episode_id INTEGER NOT NULL DEFAULT 0,
		progress INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT 0,
		watched_at DATETIME NOT NULL,
		UNIQUE (profile_id, content_id, episode_id)
	)`,
	`CREATE TABLE watchlist (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id INTEGER NOT NULL,
		content_id INTEGER NOT NULL,
		added_at DATETIME NOT NULL,
		UNIQUE (profile_id, content_id)
	)`,
	`CREATE TABLE ratings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id INTEGER NOT NULL,
		content_id INTEGER NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE (profile_id, content_id)
	)`,
	`CREATE TABLE subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		plan_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		cancelled_at DATETIME,
		stripe_subscription_id TEXT,
		stripe_customer_id TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		subscription_id INTEGER NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL,
		transaction_id TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
}

// New opens a fresh in-memory database with the full schema applied.
// The connection is closed automatically when the test finishes.
func New(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single in-memory connection; a second one would see an empty database.
	db.SetMaxOpenConns(1)

	for i, s := range schema {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("schema stmt %d: %v", i, err)
		}
	}

	t.Cleanup(func() { db.Close() })
	return db
}

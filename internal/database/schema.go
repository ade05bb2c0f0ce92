package database

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables the server needs if they do not exist yet.
// watch_history stores episode_id = 0 for movies so the uniqueness key
// (profile, content, episode) never involves NULL semantics.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(100),
			last_name VARCHAR(100),
			role VARCHAR(20) NOT NULL DEFAULT 'User',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			name VARCHAR(100) NOT NULL,
			avatar_url VARCHAR(512),
			is_kids BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL,
			INDEX idx_profiles_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS content (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			type VARCHAR(20) NOT NULL,
			genre VARCHAR(100) NOT NULL DEFAULT '',
			release_year INT NOT NULL DEFAULT 0,
			rating DECIMAL(3,1) NOT NULL DEFAULT 0,
			duration INT NOT NULL DEFAULT 0,
			thumbnail_url VARCHAR(512),
			trailer_url VARCHAR(512),
			video_url VARCHAR(512),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			INDEX idx_content_genre (genre),
			INDEX idx_content_type (type)
		)`,
		`CREATE TABLE IF NOT EXISTS seasons (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			content_id BIGINT NOT NULL,
			season_number INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			INDEX idx_seasons_content (content_id)
		)`,
		`CREATE TABLE IF NOT EXISTS episodes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			season_id BIGINT NOT NULL,
			episode_number INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			duration INT NOT NULL DEFAULT 0,
			video_url VARCHAR(512),
			thumbnail_url VARCHAR(512),
			INDEX idx_episodes_season (season_id)
		)`,
		`CREATE TABLE IF NOT EXISTS watch_history (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			profile_id BIGINT NOT NULL,
			content_id BIGINT NOT NULL,
			episode_id BIGINT NOT NULL DEFAULT 0,
			progress INT NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			watched_at DATETIME NOT NULL,
			UNIQUE KEY uq_history_key (profile_id, content_id, episode_id),
			INDEX idx_history_watched (watched_at)
		)`,
		`CREATE TABLE IF NOT EXISTS watchlist (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			profile_id BIGINT NOT NULL,
			content_id BIGINT NOT NULL,
			added_at DATETIME NOT NULL,
			UNIQUE KEY uq_watchlist_pair (profile_id, content_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			profile_id BIGINT NOT NULL,
			content_id BIGINT NOT NULL,
			score INT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE KEY uq_ratings_pair (profile_id, content_id)
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			plan_type VARCHAR(50) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Active',
			start_date DATETIME NOT NULL,
			end_date DATETIME,
			cancelled_at DATETIME,
			stripe_subscription_id VARCHAR(100),
			stripe_customer_id VARCHAR(100),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			INDEX idx_subscriptions_user (user_id, status)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			subscription_id BIGINT NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			currency VARCHAR(10) NOT NULL,
			method VARCHAR(50) NOT NULL,
			status VARCHAR(20) NOT NULL,
			transaction_id VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL,
			INDEX idx_payments_user (user_id)
		)`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("schema stmt %d: %w", i, err)
		}
	}
	return nil
}

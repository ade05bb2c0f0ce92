package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

type seedTitle struct {
	Title       string
	Description string
	Type        string
	Genre       string
	ReleaseYear int
	Rating      float64
	Duration    int
}

var seedCatalog = []seedTitle{
	{"Nebula Rising", "A rogue pilot leads a daring mission to shut down a runaway terraforming array before it consumes an entire solar system.", models.ContentTypeMovie, "Sci-Fi", 2024, 8.7, 128},
	{"Silent Harbor", "A coastal town hides a supernatural secret, and only a returning detective can uncover the truth.", models.ContentTypeMovie, "Mystery", 2023, 7.9, 112},
	{"Carbon Pulse", "Near-future hackers discover an energy algorithm that can power the world, or end it.", models.ContentTypeMovie, "Thriller", 2022, 8.2, 101},
	{"Paper Suns", "Two siblings travel across Asia to reconcile with their estranged father before a rare celestial event.", models.ContentTypeMovie, "Drama", 2021, 8.0, 119},
	{"First Signal", "Scientists detect a repeating message hidden in cosmic background radiation and race to decode it.", models.ContentTypeMovie, "Sci-Fi", 2020, 7.5, 108},
	{"Crimson Alley", "An undercover officer infiltrates a street-racing syndicate that launders more than money.", models.ContentTypeMovie, "Action", 2024, 7.8, 115},
	{"Midnight Comet", "A once-in-a-lifetime comet flyby strands a survey crew on the far side of the moon.", models.ContentTypeMovie, "Adventure", 2025, 8.4, 131},
	{"Harbor of Stars", "A lighthouse keeper's daughter maps the night sky to bring her missing father home.", models.ContentTypeMovie, "Drama", 2022, 7.8, 104},
}

type seedEpisode struct {
	Number   int
	Title    string
	Duration int
}

type seedSeason struct {
	Number   int
	Title    string
	Episodes []seedEpisode
}

var seedSeries = struct {
	seedTitle
	Seasons []seedSeason
}{
	seedTitle{"Driftwood Station", "The crew of a decommissioned orbital relay takes on one last contract that keeps getting longer.", models.ContentTypeSeries, "Sci-Fi", 2023, 8.5, 0},
	[]seedSeason{
		{1, "Signal Lost", []seedEpisode{
			{1, "Cold Start", 47},
			{2, "Ballast", 44},
			{3, "The Long Relay", 51},
		}},
		{2, "Drift", []seedEpisode{
			{1, "Re-entry", 49},
			{2, "Parallax", 46},
		}},
	},
}

// SeedCatalog inserts the demo catalog when the content table is empty.
// It is safe to call on every startup.
func SeedCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM content").Scan(&count); err != nil {
		return fmt.Errorf("count content: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	insertContent := `
		INSERT INTO content (title, description, type, genre, release_year, rating, duration, thumbnail_url, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`

	for _, m := range seedCatalog {
		thumb := "https://placehold.co/600x400?text=" + m.Title
		if _, err := tx.Exec(insertContent, m.Title, m.Description, m.Type, m.Genre, m.ReleaseYear, m.Rating, m.Duration, thumb, now); err != nil {
			return fmt.Errorf("seed %q: %w", m.Title, err)
		}
	}

	s := seedSeries
	thumb := "https://placehold.co/600x400?text=" + s.Title
	res, err := tx.Exec(insertContent, s.Title, s.Description, s.Type, s.Genre, s.ReleaseYear, s.Rating, s.Duration, thumb, now)
	if err != nil {
		return fmt.Errorf("seed %q: %w", s.Title, err)
	}
	seriesID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, season := range s.Seasons {
		res, err := tx.Exec("INSERT INTO seasons (content_id, season_number, title) VALUES (?, ?, ?)", seriesID, season.Number, season.Title)
		if err != nil {
			return fmt.Errorf("seed season %d: %w", season.Number, err)
		}
		seasonID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, ep := range season.Episodes {
			if _, err := tx.Exec(
				"INSERT INTO episodes (season_id, episode_number, title, duration) VALUES (?, ?, ?, ?)",
				seasonID, ep.Number, ep.Title, ep.Duration); err != nil {
				return fmt.Errorf("seed episode s%de%d: %w", season.Number, ep.Number, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	log.Printf("Seeded catalog with %d titles", len(seedCatalog)+1)
	return nil
}

// EnsureAdmin creates a bootstrap admin account when none exists and the
// ADMIN_EMAIL / ADMIN_PASSWORD pair is supplied.
func EnsureAdmin(db *sql.DB, email, plaintext string) error {
	if email == "" || plaintext == "" {
		return nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE role = ?", models.RoleAdmin).Scan(&count); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	var password models.Password
	if err := password.Set(plaintext); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO users (email, password_hash, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)`,
		email, password.Hash, models.RoleAdmin, now, now)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	adminID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	_, err = db.Exec("INSERT INTO profiles (user_id, name, is_kids, created_at) VALUES (?, ?, 0, ?)", adminID, "Admin", now)
	if err != nil {
		return fmt.Errorf("insert admin profile: %w", err)
	}

	log.Printf("Created bootstrap admin account %s", email)
	return nil
}

// Package activity records per-profile watch progress, watchlist
// membership and ratings. Every write checks that the target profile
// belongs to the acting user; a foreign profile is reported as not found
// so the API never confirms the existence of other users' records.
package activity

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

var (
	// ErrNotFound covers absent rows and ownership mismatches alike.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a unique-key conflict (watchlist pair already present).
	ErrDuplicate = errors.New("record already exists")
)

// isDuplicate matches the unique-violation message of both the MySQL and
// the SQLite driver; neither exposes a portable sentinel for it.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// profileOwned reports whether the profile belongs to the user.
func profileOwned(db *sql.DB, profileID, userID int64) (bool, error) {
	var id int64
	err := db.QueryRow("SELECT id FROM profiles WHERE id = ? AND user_id = ?", profileID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check profile %d: %w", profileID, err)
	}
	return true, nil
}

// contentWatchable reports whether the content exists and is active.
func contentWatchable(db *sql.DB, contentID int64) (bool, error) {
	var id int64
	err := db.QueryRow("SELECT id FROM content WHERE id = ? AND is_active = 1", contentID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check content %d: %w", contentID, err)
	}
	return true, nil
}

// ProgressInput is one progress report from a player.
type ProgressInput struct {
	ProfileID int64
	ContentID int64
	EpisodeID *int64
	Progress  int
	Completed bool
}

// RecordProgress upserts the (profile, content, episode) history row.
// Movies are stored with episode_id = 0, which keeps the uniqueness key
// free of NULL semantics. Racing upserts resolve to last-write-wins.
func RecordProgress(db *sql.DB, userID int64, in ProgressInput) error {
	owned, err := profileOwned(db, in.ProfileID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}

	watchable, err := contentWatchable(db, in.ContentID)
	if err != nil {
		return err
	}
	if !watchable {
		return ErrNotFound
	}

	episodeID := int64(0)
	if in.EpisodeID != nil {
		episodeID = *in.EpisodeID
	}

	now := time.Now()
	update := `
		UPDATE watch_history SET progress = ?, completed = ?, watched_at = ?
		WHERE profile_id = ? AND content_id = ? AND episode_id = ?`

	res, err := db.Exec(update, in.Progress, in.Completed, now, in.ProfileID, in.ContentID, episodeID)
	if err != nil {
		return fmt.Errorf("update history: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = db.Exec(`
		INSERT INTO watch_history (profile_id, content_id, episode_id, progress, completed, watched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ProfileID, in.ContentID, episodeID, in.Progress, in.Completed, now)
	if isDuplicate(err) {
		// Lost the insert race; the unique key guarantees a row exists now.
		_, err = db.Exec(update, in.Progress, in.Completed, now, in.ProfileID, in.ContentID, episodeID)
	}
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// HistoryEntry is a history row joined with its content, episode and
// profile names, as the frontend renders it.
type HistoryEntry struct {
	ID               int64     `json:"id"`
	ProfileID        int64     `json:"profileId"`
	ProfileName      string    `json:"profileName"`
	ContentID        int64     `json:"contentId"`
	ContentTitle     string    `json:"contentTitle"`
	ContentThumbnail *string   `json:"contentThumbnail,omitempty"`
	ContentType      string    `json:"contentType"`
	EpisodeID        *int64    `json:"episodeId,omitempty"`
	EpisodeTitle     *string   `json:"episodeTitle,omitempty"`
	Progress         int       `json:"progress"`
	Completed        bool      `json:"completed"`
	WatchedAt        time.Time `json:"watchedAt"`
}

const historySelect = `
	SELECT wh.id, wh.profile_id, p.name, wh.content_id, c.title, c.thumbnail_url, c.type,
	       wh.episode_id, e.title, wh.progress, wh.completed, wh.watched_at
	FROM watch_history wh
	JOIN profiles p ON wh.profile_id = p.id
	JOIN content c ON wh.content_id = c.id
	LEFT JOIN episodes e ON wh.episode_id = e.id
	WHERE p.user_id = ? AND c.is_active = 1`

// ListHistory returns the caller's history, newest first, optionally
// narrowed to one profile.
func ListHistory(db *sql.DB, userID int64, profileID *int64) ([]HistoryEntry, error) {
	query := historySelect
	args := []interface{}{userID}
	if profileID != nil {
		query += " AND wh.profile_id = ?"
		args = append(args, *profileID)
	}
	query += " ORDER BY wh.watched_at DESC, wh.id DESC"

	return queryHistory(db, query, args...)
}

// ContinueWatching returns unfinished history rows, newest first.
func ContinueWatching(db *sql.DB, userID int64, profileID *int64, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := historySelect + " AND wh.completed = 0"
	args := []interface{}{userID}
	if profileID != nil {
		query += " AND wh.profile_id = ?"
		args = append(args, *profileID)
	}
	query += " ORDER BY wh.watched_at DESC, wh.id DESC LIMIT ?"
	args = append(args, limit)

	return queryHistory(db, query, args...)
}

func queryHistory(db *sql.DB, query string, args ...interface{}) ([]HistoryEntry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		var episodeID int64
		if err := rows.Scan(
			&e.ID, &e.ProfileID, &e.ProfileName, &e.ContentID, &e.ContentTitle,
			&e.ContentThumbnail, &e.ContentType, &episodeID, &e.EpisodeTitle,
			&e.Progress, &e.Completed, &e.WatchedAt,
		); err != nil {
			return nil, err
		}
		if episodeID != 0 {
			e.EpisodeID = &episodeID
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteHistory hard-deletes one history row owned by the caller.
func DeleteHistory(db *sql.DB, userID, id int64) error {
	res, err := db.Exec(`
		DELETE FROM watch_history
		WHERE id = ? AND profile_id IN (SELECT id FROM profiles WHERE user_id = ?)`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete history %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddToWatchlist inserts the (profile, content) pair. Duplicates are
// rejected by the unique index, not by a check-then-insert.
func AddToWatchlist(db *sql.DB, userID, profileID, contentID int64) (*models.Watchlist, error) {
	owned, err := profileOwned(db, profileID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}

	watchable, err := contentWatchable(db, contentID)
	if err != nil {
		return nil, err
	}
	if !watchable {
		return nil, ErrNotFound
	}

	now := time.Now()
	res, err := db.Exec(
		"INSERT INTO watchlist (profile_id, content_id, added_at) VALUES (?, ?, ?)",
		profileID, contentID, now)
	if isDuplicate(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("insert watchlist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Watchlist{ID: id, ProfileID: profileID, ContentID: contentID, AddedAt: now}, nil
}

// WatchlistEntry is a watchlist row joined with its content summary.
type WatchlistEntry struct {
	ID        int64                 `json:"id"`
	ProfileID int64                 `json:"profileId"`
	AddedAt   time.Time             `json:"addedAt"`
	Content   models.ContentSummary `json:"content"`
}

// ListWatchlist returns the caller's watchlist, most recently added first.
func ListWatchlist(db *sql.DB, userID int64, profileID *int64) ([]WatchlistEntry, error) {
	query := `
		SELECT w.id, w.profile_id, w.added_at,
		       c.id, c.title, c.type, c.genre, c.release_year, c.rating, c.duration, c.thumbnail_url
		FROM watchlist w
		JOIN profiles p ON w.profile_id = p.id
		JOIN content c ON w.content_id = c.id
		WHERE p.user_id = ? AND c.is_active = 1`
	args := []interface{}{userID}
	if profileID != nil {
		query += " AND w.profile_id = ?"
		args = append(args, *profileID)
	}
	query += " ORDER BY w.added_at DESC, w.id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	entries := []WatchlistEntry{}
	for rows.Next() {
		var e WatchlistEntry
		if err := rows.Scan(
			&e.ID, &e.ProfileID, &e.AddedAt,
			&e.Content.ID, &e.Content.Title, &e.Content.Type, &e.Content.Genre,
			&e.Content.ReleaseYear, &e.Content.Rating, &e.Content.Duration, &e.Content.ThumbnailURL,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RemoveFromWatchlist deletes one watchlist row owned by the caller.
func RemoveFromWatchlist(db *sql.DB, userID, id int64) error {
	res, err := db.Exec(`
		DELETE FROM watchlist
		WHERE id = ? AND profile_id IN (SELECT id FROM profiles WHERE user_id = ?)`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete watchlist %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveContentFromWatchlist drops the content from every profile of the
// caller and returns how many rows went away.
func RemoveContentFromWatchlist(db *sql.DB, userID, contentID int64) (int64, error) {
	res, err := db.Exec(`
		DELETE FROM watchlist
		WHERE content_id = ? AND profile_id IN (SELECT id FROM profiles WHERE user_id = ?)`,
		contentID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete watchlist content %d: %w", contentID, err)
	}
	return res.RowsAffected()
}

// InWatchlist reports whether the content sits on the given profile's
// watchlist, or on any of the caller's profiles when profileID is nil.
func InWatchlist(db *sql.DB, userID int64, profileID *int64, contentID int64) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM watchlist w
		JOIN profiles p ON w.profile_id = p.id
		WHERE p.user_id = ? AND w.content_id = ?`
	args := []interface{}{userID, contentID}
	if profileID != nil {
		query += " AND w.profile_id = ?"
		args = append(args, *profileID)
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return count > 0, nil
}

// RateContent upserts the profile's 1-5 score for the content.
func RateContent(db *sql.DB, userID, profileID, contentID int64, score int) error {
	owned, err := profileOwned(db, profileID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}

	watchable, err := contentWatchable(db, contentID)
	if err != nil {
		return err
	}
	if !watchable {
		return ErrNotFound
	}

	now := time.Now()
	res, err := db.Exec(
		"UPDATE ratings SET score = ?, created_at = ? WHERE profile_id = ? AND content_id = ?",
		score, now, profileID, contentID)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = db.Exec(
		"INSERT INTO ratings (profile_id, content_id, score, created_at) VALUES (?, ?, ?, ?)",
		profileID, contentID, score, now)
	if isDuplicate(err) {
		_, err = db.Exec(
			"UPDATE ratings SET score = ?, created_at = ? WHERE profile_id = ? AND content_id = ?",
			score, now, profileID, contentID)
	}
	if err != nil {
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

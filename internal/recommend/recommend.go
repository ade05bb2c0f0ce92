// Package recommend derives ranked content lists from watch activity and
// the catalog. The derivation is deterministic and stateless per call:
// no model is persisted, and every tie-break is fixed (alphabetical for
// genres, ascending id for content) so the same inputs always produce the
// same output.
package recommend

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

// ErrNotFound is returned by Similar when the reference content is absent
// or soft-deleted.
var ErrNotFound = errors.New("content not found")

// maxPreferredGenres caps how many of the caller's top genres seed the pool.
const maxPreferredGenres = 3

// trendingWindow is how far back Trending counts watch activity.
const trendingWindow = 30 * 24 * time.Hour

const summaryColumns = "id, title, type, genre, release_year, rating, duration, thumbnail_url"

// ForUser builds a personal recommendation list:
// top genres from the caller's history seed a rating-ordered pool of
// unwatched active content, backfilled with any-genre titles when the
// pool runs short. With no history at all the result is a plain
// best-rated list of unwatched content.
func ForUser(db *sql.DB, userID int64, profileID *int64, limit int) ([]models.ContentSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	watched, err := watchedGenres(db, userID, profileID)
	if err != nil {
		return nil, err
	}

	watchedIDs := make([]int64, 0, len(watched))
	genreCounts := make(map[string]int)
	for id, genre := range watched {
		watchedIDs = append(watchedIDs, id)
		if genre != "" {
			genreCounts[genre]++
		}
	}

	preferred := preferredGenres(genreCounts)

	results := []models.ContentSummary{}
	if len(preferred) > 0 {
		pool, err := candidatePool(db, preferred, watchedIDs, nil, limit)
		if err != nil {
			return nil, err
		}
		results = pool
	}

	if len(results) < limit {
		chosen := make([]int64, 0, len(results))
		for _, r := range results {
			chosen = append(chosen, r.ID)
		}
		backfill, err := candidatePool(db, nil, watchedIDs, chosen, limit-len(results))
		if err != nil {
			return nil, err
		}
		results = append(results, backfill...)
	}

	return results, nil
}

// watchedGenres maps each distinct content id in the caller's history to
// its genre. Inactive content still counts: it was watched, so it must
// never be recommended again and its genre still carries signal.
func watchedGenres(db *sql.DB, userID int64, profileID *int64) (map[int64]string, error) {
	query := `
		SELECT DISTINCT wh.content_id, c.genre
		FROM watch_history wh
		JOIN profiles p ON wh.profile_id = p.id
		JOIN content c ON wh.content_id = c.id
		WHERE p.user_id = ?`
	args := []interface{}{userID}
	if profileID != nil {
		query += " AND wh.profile_id = ?"
		args = append(args, *profileID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query watched: %w", err)
	}
	defer rows.Close()

	watched := make(map[int64]string)
	for rows.Next() {
		var id int64
		var genre string
		if err := rows.Scan(&id, &genre); err != nil {
			return nil, err
		}
		watched[id] = genre
	}
	return watched, rows.Err()
}

// preferredGenres ranks genres by watch count descending and keeps the
// top three. Equal counts are broken alphabetically; map iteration order
// must never leak into the result.
func preferredGenres(counts map[string]int) []string {
	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > maxPreferredGenres {
		genres = genres[:maxPreferredGenres]
	}
	return genres
}

// candidatePool selects active content ordered by rating then release
// year (ids ascending on full ties), excluding watched and already-chosen
// ids, optionally restricted to the preferred genres.
func candidatePool(db *sql.DB, genres []string, watchedIDs, chosenIDs []int64, limit int) ([]models.ContentSummary, error) {
	var qb strings.Builder
	var args []interface{}

	qb.WriteString("SELECT " + summaryColumns + " FROM content WHERE is_active = 1")
	if len(genres) > 0 {
		qb.WriteString(" AND genre IN (" + placeholders(len(genres)) + ")")
		for _, g := range genres {
			args = append(args, g)
		}
	}
	exclude := append(append([]int64{}, watchedIDs...), chosenIDs...)
	if len(exclude) > 0 {
		qb.WriteString(" AND id NOT IN (" + placeholders(len(exclude)) + ")")
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	qb.WriteString(" ORDER BY rating DESC, release_year DESC, id ASC LIMIT ?")
	args = append(args, limit)

	rows, err := db.Query(qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// TrendingItem is a content summary with its recent watch count.
type TrendingItem struct {
	models.ContentSummary
	WatchCount int `json:"watchCount"`
}

// Trending counts history rows from the last 30 days per active content,
// most watched first. It does not depend on the caller.
func Trending(db *sql.DB, limit int) ([]TrendingItem, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	cutoff := time.Now().Add(-trendingWindow)
	rows, err := db.Query(`
		SELECT c.id, c.title, c.type, c.genre, c.release_year, c.rating, c.duration, c.thumbnail_url,
		       COUNT(wh.id) AS watch_count
		FROM watch_history wh
		JOIN content c ON wh.content_id = c.id
		WHERE wh.watched_at >= ? AND c.is_active = 1
		GROUP BY c.id, c.title, c.type, c.genre, c.release_year, c.rating, c.duration, c.thumbnail_url
		ORDER BY watch_count DESC, c.id ASC
		LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	defer rows.Close()

	items := []TrendingItem{}
	for rows.Next() {
		var it TrendingItem
		if err := rows.Scan(
			&it.ID, &it.Title, &it.Type, &it.Genre, &it.ReleaseYear,
			&it.Rating, &it.Duration, &it.ThumbnailURL, &it.WatchCount,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Similar returns active content sharing the reference's genre or type,
// excluding the reference itself, best rated first.
func Similar(db *sql.DB, contentID int64, limit int) ([]models.ContentSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	var genre, typ string
	err := db.QueryRow("SELECT genre, type FROM content WHERE id = ? AND is_active = 1", contentID).Scan(&genre, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reference %d: %w", contentID, err)
	}

	rows, err := db.Query(`
		SELECT `+summaryColumns+` FROM content
		WHERE is_active = 1 AND id <> ? AND (genre = ? OR type = ?)
		ORDER BY rating DESC, release_year DESC, id ASC
		LIMIT ?`, contentID, genre, typ, limit)
	if err != nil {
		return nil, fmt.Errorf("query similar: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func scanSummaries(rows *sql.Rows) ([]models.ContentSummary, error) {
	items := []models.ContentSummary{}
	for rows.Next() {
		var s models.ContentSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Type, &s.Genre, &s.ReleaseYear, &s.Rating, &s.Duration, &s.ThumbnailURL); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

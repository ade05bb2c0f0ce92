// Package catalog is the read side of the content store. Every query in
// this package carries the active-only predicate, so soft-deleted content
// can never leak into a viewer-facing response. Admin paths that need to
// see inactive rows query the tables directly and bypass this package.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

// ErrNotFound is returned when content is absent or soft-deleted.
var ErrNotFound = errors.New("content not found")

// activeFilter is appended to every WHERE clause built in this package.
const activeFilter = "is_active = 1"

const summaryColumns = "id, title, type, genre, release_year, rating, duration, thumbnail_url"

// Filter narrows List by content type and/or genre.
type Filter struct {
	Type  string
	Genre string
}

// List returns active content summaries, newest first.
func List(db *sql.DB, f Filter) ([]models.ContentSummary, error) {
	var qb strings.Builder
	var args []interface{}

	qb.WriteString("SELECT " + summaryColumns + " FROM content WHERE " + activeFilter)
	if f.Type != "" {
		qb.WriteString(" AND type = ?")
		args = append(args, f.Type)
	}
	if f.Genre != "" {
		qb.WriteString(" AND genre = ?")
		args = append(args, f.Genre)
	}
	qb.WriteString(" ORDER BY created_at DESC, id DESC")

	rows, err := db.Query(qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Detail is the full content shape served by GET /content/:id.
type Detail struct {
	models.Content
	Seasons       []models.Season `json:"seasons"`
	AverageRating *float64        `json:"averageRating"`
}

// Get loads one active content row with its seasons, episodes and the
// average user rating. Inactive content is reported as not found.
func Get(db *sql.DB, id int64) (*Detail, error) {
	var d Detail
	err := db.QueryRow(`
		SELECT id, title, description, type, genre, release_year, rating, duration,
		       thumbnail_url, trailer_url, video_url, is_active, created_at
		FROM content
		WHERE id = ? AND `+activeFilter, id).Scan(
		&d.ID, &d.Title, &d.Description, &d.Type, &d.Genre, &d.ReleaseYear,
		&d.Rating, &d.Duration, &d.ThumbnailURL, &d.TrailerURL, &d.VideoURL,
		&d.IsActive, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}

	// Average of user scores, separate from the editorial rating column.
	var avg sql.NullFloat64
	if err := db.QueryRow("SELECT AVG(score) FROM ratings WHERE content_id = ?", id).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average rating for %d: %w", id, err)
	}
	if avg.Valid {
		d.AverageRating = &avg.Float64
	}

	seasons, err := seasonsFor(db, id)
	if err != nil {
		return nil, err
	}
	d.Seasons = seasons

	return &d, nil
}

func seasonsFor(db *sql.DB, contentID int64) ([]models.Season, error) {
	rows, err := db.Query(`
		SELECT id, content_id, season_number, title
		FROM seasons WHERE content_id = ?
		ORDER BY season_number ASC`, contentID)
	if err != nil {
		return nil, fmt.Errorf("seasons for %d: %w", contentID, err)
	}
	defer rows.Close()

	seasons := []models.Season{}
	for rows.Next() {
		var s models.Season
		if err := rows.Scan(&s.ID, &s.ContentID, &s.SeasonNumber, &s.Title); err != nil {
			return nil, err
		}
		s.Episodes = []models.Episode{}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range seasons {
		eps, err := episodesFor(db, seasons[i].ID)
		if err != nil {
			return nil, err
		}
		seasons[i].Episodes = eps
	}
	return seasons, nil
}

func episodesFor(db *sql.DB, seasonID int64) ([]models.Episode, error) {
	rows, err := db.Query(`
		SELECT id, season_id, episode_number, title, description, duration, video_url, thumbnail_url
		FROM episodes WHERE season_id = ?
		ORDER BY episode_number ASC`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("episodes for season %d: %w", seasonID, err)
	}
	defer rows.Close()

	episodes := []models.Episode{}
	for rows.Next() {
		var e models.Episode
		if err := rows.Scan(&e.ID, &e.SeasonID, &e.EpisodeNumber, &e.Title, &e.Description, &e.Duration, &e.VideoURL, &e.ThumbnailURL); err != nil {
			return nil, err
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

// SearchFilter holds the query parameters of GET /search.
type SearchFilter struct {
	Query     string
	Type      string
	Genre     string
	Year      int
	MinRating float64
	Page      int
	PageSize  int
}

// SearchResult is a single page of matches plus the unpaginated total.
type SearchResult struct {
	Results  []models.ContentSummary `json:"results"`
	Total    int                     `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
}

// Search runs a filtered, paginated catalog search over active content.
func Search(db *sql.DB, f SearchFilter) (*SearchResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}

	var where strings.Builder
	var args []interface{}

	where.WriteString(" WHERE " + activeFilter)
	if f.Query != "" {
		where.WriteString(" AND (title LIKE ? OR description LIKE ?)")
		term := "%" + f.Query + "%"
		args = append(args, term, term)
	}
	if f.Type != "" {
		where.WriteString(" AND type = ?")
		args = append(args, f.Type)
	}
	if f.Genre != "" {
		where.WriteString(" AND genre = ?")
		args = append(args, f.Genre)
	}
	if f.Year > 0 {
		where.WriteString(" AND release_year = ?")
		args = append(args, f.Year)
	}
	if f.MinRating > 0 {
		where.WriteString(" AND rating >= ?")
		args = append(args, f.MinRating)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM content"+where.String(), args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count search: %w", err)
	}

	query := "SELECT " + summaryColumns + " FROM content" + where.String() +
		" ORDER BY rating DESC, release_year DESC, id ASC LIMIT ? OFFSET ?"
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search content: %w", err)
	}
	defer rows.Close()

	results, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}

	return &SearchResult{Results: results, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// Genres returns the distinct genres of active content, alphabetical.
func Genres(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT DISTINCT genre FROM content WHERE " + activeFilter + " AND genre <> '' ORDER BY genre ASC")
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// Years returns the distinct release years of active content, newest first.
func Years(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT DISTINCT release_year FROM content WHERE " + activeFilter + " AND release_year > 0 ORDER BY release_year DESC")
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
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

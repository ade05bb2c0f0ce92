package models

import "time"

// Content type values stored in content.type.
const (
	ContentTypeMovie  = "Movie"
	ContentTypeSeries = "Series"
)

// Content defines the model for the 'content' table.
// Deleting content only flips IsActive; the row stays for admin reporting.
type Content struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	Description  *string `json:"description,omitempty" db:"description"`
	Type         string  `json:"type" db:"type"`
	Genre        string  `json:"genre" db:"genre"`
	ReleaseYear  int     `json:"releaseYear" db:"release_year"`
	Rating       float64 `json:"rating" db:"rating"`
	Duration     int     `json:"duration" db:"duration"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	TrailerURL   *string `json:"trailerUrl,omitempty" db:"trailer_url"`
	VideoURL     *string `json:"videoUrl,omitempty" db:"video_url"`
	IsActive     bool    `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContentSummary is the trimmed shape used by catalog listings, search
// results and recommendations.
type ContentSummary struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	Type         string  `json:"type" db:"type"`
	Genre        string  `json:"genre" db:"genre"`
	ReleaseYear  int     `json:"releaseYear" db:"release_year"`
	Rating       float64 `json:"rating" db:"rating"`
	Duration     int     `json:"duration" db:"duration"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
}

// Season defines the model for the 'seasons' table
type Season struct {
	ID           int64  `json:"id" db:"id"`
	ContentID    int64  `json:"contentId" db:"content_id"`
	SeasonNumber int    `json:"seasonNumber" db:"season_number"`
	Title        string `json:"title" db:"title"`

	// Populated by the catalog detail query, not stored on the row.
	Episodes []Episode `json:"episodes" db:"-"`
}

// Episode defines the model for the 'episodes' table
type Episode struct {
	ID            int64   `json:"id" db:"id"`
	SeasonID      int64   `json:"seasonId" db:"season_id"`
	EpisodeNumber int     `json:"episodeNumber" db:"episode_number"`
	Title         string  `json:"title" db:"title"`
	Description   *string `json:"description,omitempty" db:"description"`
	Duration      int     `json:"duration" db:"duration"`
	VideoURL      *string `json:"videoUrl,omitempty" db:"video_url"`
	ThumbnailURL  *string `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
}

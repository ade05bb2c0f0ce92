package models

import "time"

// WatchHistory defines the model for the 'watch_history' table.
// episode_id is stored as 0 for movies so the (profile, content, episode)
// uniqueness key works the same on every backend; the JSON shape still
// exposes it as an optional field.
type WatchHistory struct {
	ID        int64     `json:"id" db:"id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	ContentID int64     `json:"contentId" db:"content_id"`
	EpisodeID *int64    `json:"episodeId,omitempty" db:"episode_id"`
	Progress  int       `json:"progress" db:"progress"`
	Completed bool      `json:"completed" db:"completed"`
	WatchedAt time.Time `json:"watchedAt" db:"watched_at"`
}

// Watchlist defines the model for the 'watchlist' table.
// (profile_id, content_id) carries a unique index; duplicate adds are a
// conflict, never a second row.
type Watchlist struct {
	ID        int64     `json:"id" db:"id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	ContentID int64     `json:"contentId" db:"content_id"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// Rating defines the model for the 'ratings' table (one score per
// profile/content pair, 1 to 5).
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	ContentID int64     `json:"contentId" db:"content_id"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

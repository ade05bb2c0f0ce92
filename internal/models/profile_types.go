package models

import "time"

// Profile defines the model for the 'profiles' table.
// Every user owns at least one profile; all watch activity hangs off a profile.
type Profile struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsKids    bool      `json:"isKidsProfile" db:"is_kids"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

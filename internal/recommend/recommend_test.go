package recommend

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/streamhaven/streamhaven-golang/internal/database/testdb"
)

func seedViewer(t *testing.T, db *sql.DB) (userID, profileID int64) {
	t.Helper()
	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO users (email, password_hash, role, is_active, created_at, updated_at)
		VALUES ('viewer@example.com', 'x', 'User', 1, ?, ?)`, now, now)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	userID, _ = res.LastInsertId()

	res, err = db.Exec(
		"INSERT INTO profiles (user_id, name, is_kids, created_at) VALUES (?, 'Main', 0, ?)",
		userID, now)
	if err != nil {
		t.Fatalf("insert profile: %v", err)
	}
	profileID, _ = res.LastInsertId()
	return userID, profileID
}

func seedTitle(t *testing.T, db *sql.DB, title, ctype, genre string, year int, rating float64, active bool) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO content (title, type, genre, release_year, rating, duration, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, 100, ?, ?)`,
		title, ctype, genre, year, rating, active, time.Now())
	if err != nil {
		t.Fatalf("insert content: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func watch(t *testing.T, db *sql.DB, profileID, contentID int64, at time.Time) {
	t.Helper()
	if _, err := db.Exec(`
		INSERT INTO watch_history (profile_id, content_id, episode_id, progress, completed, watched_at)
		VALUES (?, ?, 0, 50, 0, ?)`, profileID, contentID, at); err != nil {
		t.Fatalf("insert history: %v", err)
	}
}

func TestPreferredGenresOrderedByCount(t *testing.T) {
	counts := map[string]int{"Sci-Fi": 5, "Drama": 2}
	got := preferredGenres(counts)
	if len(got) != 2 || got[0] != "Sci-Fi" || got[1] != "Drama" {
		t.Errorf("got %v, want [Sci-Fi Drama]", got)
	}
}

func TestPreferredGenresTieBreaksAlphabetically(t *testing.T) {
	counts := map[string]int{"Horror": 2, "Action": 2, "Drama": 2, "Comedy": 1}
	got := preferredGenres(counts)
	if len(got) != 3 {
		t.Fatalf("got %d genres, want at most 3", len(got))
	}
	if got[0] != "Action" || got[1] != "Drama" || got[2] != "Horror" {
		t.Errorf("got %v, want [Action Drama Horror]", got)
	}
}

func TestForUserExcludesWatchedAndInactive(t *testing.T) {
	db := testdb.New(t)
	userID, profileID := seedViewer(t, db)

	watched := seedTitle(t, db, "Seen", "Movie", "Sci-Fi", 2020, 8.0, true)
	fresh := seedTitle(t, db, "Fresh", "Movie", "Sci-Fi", 2021, 7.0, true)
	seedTitle(t, db, "Hidden", "Movie", "Sci-Fi", 2022, 9.0, false)
	watch(t, db, profileID, watched, time.Now())

	items, err := ForUser(db, userID, nil, 10)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].ID != fresh {
		t.Errorf("got id %d, want %d (Fresh)", items[0].ID, fresh)
	}
}

func TestForUserPrefersHigherRatedInGenre(t *testing.T) {
	db := testdb.New(t)
	userID, profileID := seedViewer(t, db)

	seen := seedTitle(t, db, "Seen Action", "Movie", "Action", 2019, 6.0, true)
	a := seedTitle(t, db, "A", "Movie", "Action", 2024, 9.0, true)
	seedTitle(t, db, "B", "Movie", "Action", 2020, 7.0, true)
	watch(t, db, profileID, seen, time.Now())

	items, err := ForUser(db, userID, nil, 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(items) != 1 || items[0].ID != a {
		t.Fatalf("got %+v, want only A", items)
	}
}

func TestForUserBackfillsOutsidePreferredGenres(t *testing.T) {
	db := testdb.New(t)
	userID, profileID := seedViewer(t, db)

	seen := seedTitle(t, db, "Seen", "Movie", "Sci-Fi", 2020, 8.0, true)
	inGenre := seedTitle(t, db, "More Sci-Fi", "Movie", "Sci-Fi", 2021, 7.0, true)
	outside := seedTitle(t, db, "A Western", "Movie", "Western", 2022, 9.0, true)
	watch(t, db, profileID, seen, time.Now())

	items, err := ForUser(db, userID, nil, 2)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// Preferred genre comes first, then the backfill.
	if items[0].ID != inGenre || items[1].ID != outside {
		t.Errorf("got ids %d,%d, want %d,%d", items[0].ID, items[1].ID, inGenre, outside)
	}
}

func TestForUserWithEmptyHistoryFallsBackToCatalog(t *testing.T) {
	db := testdb.New(t)
	userID, _ := seedViewer(t, db)

	best := seedTitle(t, db, "Best", "Movie", "Drama", 2020, 9.0, true)
	seedTitle(t, db, "Okay", "Movie", "Comedy", 2020, 6.0, true)

	items, err := ForUser(db, userID, nil, 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(items) != 1 || items[0].ID != best {
		t.Fatalf("got %+v, want the highest rated title", items)
	}
}

func TestTrendingCountsRecentWindowOnly(t *testing.T) {
	db := testdb.New(t)
	_, profileID := seedViewer(t, db)

	hot := seedTitle(t, db, "Hot", "Movie", "Action", 2024, 7.0, true)
	stale := seedTitle(t, db, "Stale", "Movie", "Action", 2020, 7.0, true)

	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO profiles (user_id, name, is_kids, created_at)
		SELECT user_id, 'Other', 0, created_at FROM profiles WHERE id = ?`, profileID)
	if err != nil {
		t.Fatalf("insert second profile: %v", err)
	}
	otherProfile, _ := res.LastInsertId()

	watch(t, db, profileID, hot, now)
	watch(t, db, otherProfile, hot, now.Add(-time.Hour))
	watch(t, db, profileID, stale, now.AddDate(0, 0, -45))

	items, err := Trending(db, 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].ID != hot || items[0].WatchCount != 2 {
		t.Errorf("got id=%d count=%d, want id=%d count=2", items[0].ID, items[0].WatchCount, hot)
	}
}

func TestTrendingExcludesInactive(t *testing.T) {
	db := testdb.New(t)
	_, profileID := seedViewer(t, db)

	gone := seedTitle(t, db, "Gone", "Movie", "Action", 2024, 7.0, false)
	watch(t, db, profileID, gone, time.Now())

	items, err := Trending(db, 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want none", len(items))
	}
}

func TestSimilarExcludesSelf(t *testing.T) {
	db := testdb.New(t)

	ref := seedTitle(t, db, "Ref", "Movie", "Action", 2020, 7.0, true)
	same := seedTitle(t, db, "Same Genre", "Series", "Action", 2021, 8.0, true)
	seedTitle(t, db, "Unrelated", "Series", "Romance", 2021, 8.0, true)

	items, err := Similar(db, ref, 10)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	for _, item := range items {
		if item.ID == ref {
			t.Fatal("similar results include the reference title")
		}
	}
	if len(items) != 1 || items[0].ID != same {
		t.Fatalf("got %+v, want only the shared-genre title", items)
	}
}

func TestSimilarUnknownReference(t *testing.T) {
	db := testdb.New(t)

	if _, err := Similar(db, 999, 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

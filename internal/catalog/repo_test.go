package catalog

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/streamhaven/streamhaven-golang/internal/database/testdb"
)

func insertContent(t *testing.T, db *sql.DB, title, ctype, genre string, year int, rating float64, active bool) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO content (title, description, type, genre, release_year, rating, duration, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title, "desc", ctype, genre, year, rating, 100, active, time.Now())
	if err != nil {
		t.Fatalf("insert content: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestListExcludesInactive(t *testing.T) {
	db := testdb.New(t)
	insertContent(t, db, "Visible", "Movie", "Drama", 2020, 7.0, true)
	insertContent(t, db, "Hidden", "Movie", "Drama", 2021, 8.0, false)

	items, err := List(db, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Title != "Visible" {
		t.Errorf("got title %q, want Visible", items[0].Title)
	}
}

func TestListFiltersByTypeAndGenre(t *testing.T) {
	db := testdb.New(t)
	insertContent(t, db, "A", "Movie", "Drama", 2020, 7.0, true)
	insertContent(t, db, "B", "Series", "Drama", 2020, 7.0, true)
	insertContent(t, db, "C", "Movie", "Comedy", 2020, 7.0, true)

	items, err := List(db, Filter{Type: "Movie", Genre: "Drama"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Title != "A" {
		t.Fatalf("got %+v, want only A", items)
	}
}

func TestGetReturnsDetailWithAverageRating(t *testing.T) {
	db := testdb.New(t)
	id := insertContent(t, db, "Rated", "Movie", "Drama", 2020, 7.0, true)

	for i, score := range []int{4, 5} {
		if _, err := db.Exec(
			"INSERT INTO ratings (profile_id, content_id, score, created_at) VALUES (?, ?, ?, ?)",
			int64(i+1), id, score, time.Now()); err != nil {
			t.Fatalf("insert rating: %v", err)
		}
	}

	detail, err := Get(db, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.AverageRating == nil {
		t.Fatal("expected an average rating")
	}
	if got := *detail.AverageRating; got != 4.5 {
		t.Errorf("got average %v, want 4.5", got)
	}
}

func TestGetOrdersSeasonsAndEpisodes(t *testing.T) {
	db := testdb.New(t)
	id := insertContent(t, db, "Show", "Series", "Drama", 2020, 7.0, true)

	res, err := db.Exec("INSERT INTO seasons (content_id, season_number, title) VALUES (?, ?, ?)", id, 2, "Season 2")
	if err != nil {
		t.Fatalf("insert season: %v", err)
	}
	s2, _ := res.LastInsertId()
	res, err = db.Exec("INSERT INTO seasons (content_id, season_number, title) VALUES (?, ?, ?)", id, 1, "Season 1")
	if err != nil {
		t.Fatalf("insert season: %v", err)
	}
	s1, _ := res.LastInsertId()

	for _, row := range []struct {
		season int64
		number int
		title  string
	}{
		{s1, 2, "S1E2"},
		{s1, 1, "S1E1"},
		{s2, 1, "S2E1"},
	} {
		if _, err := db.Exec(
			"INSERT INTO episodes (season_id, episode_number, title, duration) VALUES (?, ?, ?, ?)",
			row.season, row.number, row.title, 45); err != nil {
			t.Fatalf("insert episode: %v", err)
		}
	}

	detail, err := Get(db, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Seasons) != 2 {
		t.Fatalf("got %d seasons, want 2", len(detail.Seasons))
	}
	if detail.Seasons[0].SeasonNumber != 1 || detail.Seasons[1].SeasonNumber != 2 {
		t.Errorf("seasons out of order: %d then %d", detail.Seasons[0].SeasonNumber, detail.Seasons[1].SeasonNumber)
	}
	eps := detail.Seasons[0].Episodes
	if len(eps) != 2 {
		t.Fatalf("got %d episodes in season 1, want 2", len(eps))
	}
	if eps[0].Title != "S1E1" || eps[1].Title != "S1E2" {
		t.Errorf("episodes out of order: %q then %q", eps[0].Title, eps[1].Title)
	}
}

func TestGetInactiveIsNotFound(t *testing.T) {
	db := testdb.New(t)
	id := insertContent(t, db, "Gone", "Movie", "Drama", 2020, 7.0, false)

	if _, err := Get(db, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSearchFiltersAndPaginates(t *testing.T) {
	db := testdb.New(t)
	insertContent(t, db, "Deep Space One", "Movie", "Sci-Fi", 2020, 8.0, true)
	insertContent(t, db, "Deep Space Two", "Movie", "Sci-Fi", 2021, 9.0, true)
	insertContent(t, db, "Deep Space Three", "Movie", "Sci-Fi", 2022, 7.0, true)
	insertContent(t, db, "Shallow Waters", "Movie", "Drama", 2020, 6.0, true)
	insertContent(t, db, "Deep Space Hidden", "Movie", "Sci-Fi", 2020, 9.5, false)

	page, err := Search(db, SearchFilter{Query: "Deep Space", Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("got total %d, want 3", page.Total)
	}
	if len(page.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(page.Results))
	}
	// Highest rating first.
	if page.Results[0].Title != "Deep Space Two" {
		t.Errorf("got first result %q, want Deep Space Two", page.Results[0].Title)
	}

	page2, err := Search(db, SearchFilter{Query: "Deep Space", Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("Search page 2: %v", err)
	}
	if len(page2.Results) != 1 {
		t.Fatalf("got %d results on page 2, want 1", len(page2.Results))
	}
	if page2.Results[0].Title != "Deep Space Three" {
		t.Errorf("got %q on page 2, want Deep Space Three", page2.Results[0].Title)
	}
}

func TestSearchByYearAndMinRating(t *testing.T) {
	db := testdb.New(t)
	insertContent(t, db, "Old Low", "Movie", "Drama", 2010, 5.0, true)
	insertContent(t, db, "Old High", "Movie", "Drama", 2010, 8.0, true)
	insertContent(t, db, "New High", "Movie", "Drama", 2020, 8.0, true)

	page, err := Search(db, SearchFilter{Year: 2010, MinRating: 7.0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "Old High" {
		t.Fatalf("got %+v, want only Old High", page.Results)
	}
}

func TestGenresAndYears(t *testing.T) {
	db := testdb.New(t)
	insertContent(t, db, "A", "Movie", "Drama", 2020, 7.0, true)
	insertContent(t, db, "B", "Movie", "Comedy", 2018, 7.0, true)
	insertContent(t, db, "C", "Movie", "Drama", 2022, 7.0, true)
	insertContent(t, db, "D", "Movie", "Horror", 2019, 7.0, false)

	genres, err := Genres(db)
	if err != nil {
		t.Fatalf("Genres: %v", err)
	}
	if len(genres) != 2 || genres[0] != "Comedy" || genres[1] != "Drama" {
		t.Errorf("got genres %v, want [Comedy Drama]", genres)
	}

	years, err := Years(db)
	if err != nil {
		t.Fatalf("Years: %v", err)
	}
	if len(years) != 3 || years[0] != 2022 || years[2] != 2018 {
		t.Errorf("got years %v, want [2022 2020 2018]", years)
	}
}

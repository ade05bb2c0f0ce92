package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/config"
	"github.com/streamhaven/streamhaven-golang/internal/database/testdb"
	"github.com/streamhaven/streamhaven-golang/internal/handlers"
	"github.com/streamhaven/streamhaven-golang/internal/routes"
)

func newTestApp(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	cfg := &config.Config{
		JWTSecret:   []byte("test-secret"),
		TokenTTL:    time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
		Plans:       config.DefaultPlans(),
	}

	app := &handlers.Handlers{DB: db, Config: cfg}
	return routes.SetupRouter(app), db
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func register(t *testing.T, router *gin.Engine, email string) {
	t.Helper()
	w := do(t, router, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":     email,
		"password":  "password123",
		"firstName": "Test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: got %d: %s", email, w.Code, w.Body.String())
	}
}

func login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := do(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: got %d: %s", email, w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login response carries no token")
	}
	return token
}

func seedContentRow(t *testing.T, db *sql.DB, title string, active bool) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO content (title, type, genre, release_year, rating, duration, is_active, created_at)
		VALUES (?, 'Movie', 'Drama', 2020, 7.0, 100, ?, ?)`, title, active, time.Now())
	if err != nil {
		t.Fatalf("insert content: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func profileID(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
		SELECT p.id FROM profiles p
		JOIN users u ON p.user_id = u.id
		WHERE u.email = ?`, email).Scan(&id)
	if err != nil {
		t.Fatalf("load profile id: %v", err)
	}
	return id
}

func TestRegisterCreatesSingleDefaultProfile(t *testing.T) {
	router, db := newTestApp(t)

	register(t, router, "new@example.com")

	var profiles int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM profiles p
		JOIN users u ON p.user_id = u.id
		WHERE u.email = ?`, "new@example.com").Scan(&profiles)
	if err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profiles != 1 {
		t.Errorf("got %d profiles, want exactly 1", profiles)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestApp(t)

	register(t, router, "dup@example.com")
	w := do(t, router, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":    "dup@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newTestApp(t)

	w := do(t, router, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":    "not-an-email",
		"password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestApp(t)
	register(t, router, "user@example.com")

	w := do(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", w.Code)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "locked@example.com")

	if _, err := db.Exec("UPDATE users SET is_active = 0 WHERE email = ?", "locked@example.com"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	w := do(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "locked@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", w.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router, _ := newTestApp(t)

	w := do(t, router, http.MethodGet, "/v1/profiles", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", w.Code)
	}
}

func TestWatchlistDuplicateConflict(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "viewer@example.com")
	token := login(t, router, "viewer@example.com")

	contentID := seedContentRow(t, db, "Film", true)
	pid := profileID(t, db, "viewer@example.com")

	body := gin.H{"profileId": pid, "contentId": contentID}
	w := do(t, router, http.MethodPost, "/v1/watchlist", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first add: got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPost, "/v1/watchlist", token, body)
	if w.Code != http.StatusConflict {
		t.Errorf("second add: got %d, want 409", w.Code)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM watchlist").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("got %d watchlist rows, want 1", rows)
	}
}

func TestWatchHistoryFlow(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "viewer@example.com")
	token := login(t, router, "viewer@example.com")

	contentID := seedContentRow(t, db, "Film", true)
	pid := profileID(t, db, "viewer@example.com")

	w := do(t, router, http.MethodPost, "/v1/watchhistory", token, gin.H{
		"profileId": pid,
		"contentId": contentID,
		"progress":  40,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("record progress: got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/v1/watchhistory/continue-watching", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("continue watching: got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Film")) {
		t.Errorf("continue watching missing the title: %s", w.Body.String())
	}
}

func TestAdminGateRejectsRegularUser(t *testing.T) {
	router, _ := newTestApp(t)
	register(t, router, "user@example.com")
	token := login(t, router, "user@example.com")

	w := do(t, router, http.MethodGet, "/v1/admin/dashboard", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("got %d, want 403", w.Code)
	}
}

func TestAdminDashboardCountsSoftDeletedContent(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "admin@example.com")
	if _, err := db.Exec("UPDATE users SET role = 'Admin' WHERE email = ?", "admin@example.com"); err != nil {
		t.Fatalf("promote: %v", err)
	}
	token := login(t, router, "admin@example.com")

	seedContentRow(t, db, "Live", true)
	seedContentRow(t, db, "Retired", false)

	w := do(t, router, http.MethodGet, "/v1/admin/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if got := body["totalContent"].(float64); got != 2 {
		t.Errorf("got totalContent %v, want 2 (soft-deleted included)", got)
	}
	if got := body["activeContent"].(float64); got != 1 {
		t.Errorf("got activeContent %v, want 1", got)
	}
}

func TestSoftDeletedContentHiddenFromCatalog(t *testing.T) {
	router, db := newTestApp(t)

	liveID := seedContentRow(t, db, "Live", true)
	goneID := seedContentRow(t, db, "Retired", false)

	w := do(t, router, http.MethodGet, "/v1/content", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("content list: got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Live")) {
		t.Errorf("active content missing from the list: %s", w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("Retired")) {
		t.Errorf("soft-deleted content leaked into the list: %s", w.Body.String())
	}

	if w := do(t, router, http.MethodGet, "/v1/content/"+itoa(goneID), "", nil); w.Code != http.StatusNotFound {
		t.Errorf("soft-deleted detail: got %d, want 404", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/v1/content/"+itoa(liveID), "", nil); w.Code != http.StatusOK {
		t.Errorf("active detail: got %d, want 200", w.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func promoteToAdmin(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	if _, err := db.Exec("UPDATE users SET role = 'Admin' WHERE email = ?", email); err != nil {
		t.Fatalf("promote: %v", err)
	}
	var id int64
	if err := db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&id); err != nil {
		t.Fatalf("load user id: %v", err)
	}
	return id
}

func TestAdminCannotDeactivateOwnAccount(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "admin@example.com")
	adminID := promoteToAdmin(t, db, "admin@example.com")
	token := login(t, router, "admin@example.com")

	w := do(t, router, http.MethodPut, "/v1/admin/users/"+itoa(adminID)+"/status", token, gin.H{
		"isActive": false,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("self deactivation: got %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodPut, "/v1/admin/users/"+itoa(adminID)+"/role", token, gin.H{
		"role": "User",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("self demotion: got %d, want 400", w.Code)
	}
}

func TestAdminUpdateUnknownUser(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "admin@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	token := login(t, router, "admin@example.com")

	w := do(t, router, http.MethodPut, "/v1/admin/users/9999/status", token, gin.H{
		"isActive": false,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", w.Code)
	}
}

func TestAdminAnalyticsRejectsBadDates(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "admin@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	token := login(t, router, "admin@example.com")

	w := do(t, router, http.MethodGet, "/v1/admin/analytics?startDate=yesterday", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad startDate: got %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodGet, "/v1/admin/analytics?startDate=2026-02-01&endDate=2026-01-01", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("inverted range: got %d, want 400", w.Code)
	}
}

func TestAdminAnalyticsBucketsRegistrationsByDay(t *testing.T) {
	router, db := newTestApp(t)
	register(t, router, "admin@example.com")
	register(t, router, "other@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	token := login(t, router, "admin@example.com")

	w := do(t, router, http.MethodGet, "/v1/admin/analytics", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics: got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	series, ok := body["registrations"].([]interface{})
	if !ok {
		t.Fatalf("registrations missing: %s", w.Body.String())
	}
	// Both accounts registered just now, so they land in one bucket.
	if len(series) != 1 {
		t.Fatalf("got %d buckets, want 1", len(series))
	}
	bucket := series[0].(map[string]interface{})
	if count := bucket["count"].(float64); count != 2 {
		t.Errorf("got count %v, want 2", count)
	}
}

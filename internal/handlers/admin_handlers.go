package handlers

import (
	"database/sql"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

//
// --- Admin Dashboard ---
//

// AdminUser is the user row shape for admin listings.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    *string   `json:"firstName,omitempty"`
	LastName     *string   `json:"lastName,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	ProfileCount int       `json:"profileCount"`
}

// TopWatchedItem pairs a content title with its all-time history row count.
type TopWatchedItem struct {
	ContentID  int64  `json:"contentId"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	WatchCount int    `json:"watchCount"`
}

// DashboardStats is the KPI payload for the admin dashboard.
// Content totals deliberately include soft-deleted rows.
type DashboardStats struct {
	TotalUsers          int              `json:"totalUsers"`
	ActiveUsers         int              `json:"activeUsers"`
	TotalContent        int              `json:"totalContent"`
	ActiveContent       int              `json:"activeContent"`
	ActiveSubscriptions int              `json:"activeSubscriptions"`
	TotalRevenue        float64          `json:"totalRevenue"`
	RecentUsers         []AdminUser      `json:"recentUsers"`
	TopWatched          []TopWatchedItem `json:"topWatched"`
}

// GetDashboard is the handler for GET /v1/admin/dashboard.
func (h *Handlers) GetDashboard(c *gin.Context) {
	stats := DashboardStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM users", &stats.TotalUsers},
		{"SELECT COUNT(*) FROM users WHERE is_active = 1", &stats.ActiveUsers},
		{"SELECT COUNT(*) FROM content", &stats.TotalContent},
		{"SELECT COUNT(*) FROM content WHERE is_active = 1", &stats.ActiveContent},
		{"SELECT COUNT(*) FROM subscriptions WHERE status = 'Active'", &stats.ActiveSubscriptions},
	}
	for _, q := range counts {
		if err := h.DB.QueryRow(q.query).Scan(q.dest); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard counts"})
			return
		}
	}

	var revenue sql.NullFloat64
	err := h.DB.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = ?", models.PaymentCompleted).Scan(&revenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
		return
	}
	stats.TotalRevenue = revenue.Float64

	recent, err := h.queryAdminUsers("ORDER BY u.created_at DESC, u.id DESC LIMIT 10")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recent users"})
		return
	}
	stats.RecentUsers = recent

	rows, err := h.DB.Query(`
		SELECT c.id, c.title, c.type, COUNT(wh.id) AS watch_count
		FROM watch_history wh
		JOIN content c ON wh.content_id = c.id
		GROUP BY c.id, c.title, c.type
		ORDER BY watch_count DESC, c.id ASC
		LIMIT 10`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load top watched content"})
		return
	}
	defer rows.Close()

	stats.TopWatched = []TopWatchedItem{}
	for rows.Next() {
		var item TopWatchedItem
		if err := rows.Scan(&item.ContentID, &item.Title, &item.Type, &item.WatchCount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan top watched row"})
			return
		}
		stats.TopWatched = append(stats.TopWatched, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating top watched rows"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) queryAdminUsers(tail string, args ...interface{}) ([]AdminUser, error) {
	rows, err := h.DB.Query(`
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at,
		       (SELECT COUNT(*) FROM profiles p WHERE p.user_id = u.id) AS profile_count
		FROM users u `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []AdminUser{}
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt, &u.ProfileCount); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

//
// --- Admin User Management ---
//

// GetUsers is the handler for GET /v1/admin/users.
func (h *Handlers) GetUsers(c *gin.Context) {
	page := 1
	pageSize := 20
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
			return
		}
		page = p
	}
	if raw := c.Query("pageSize"); raw != "" {
		ps, err := strconv.Atoi(raw)
		if err != nil || ps < 1 || ps > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pageSize parameter"})
			return
		}
		pageSize = ps
	}

	var total int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	users, err := h.queryAdminUsers(
		"ORDER BY u.created_at DESC, u.id DESC LIMIT ? OFFSET ?",
		pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// UpdateUserStatusInput uses a pointer so that 'false' survives binding.
type UpdateUserStatusInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateUserStatus is the handler for PUT /v1/admin/users/:id/status.
func (h *Handlers) UpdateUserStatus(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input UpdateUserStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An admin locking themselves out is always a mistake.
	if targetID == h.currentUserID(c) && !*input.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot deactivate your own account"})
		return
	}

	res, err := h.DB.Exec("UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?",
		*input.IsActive, time.Now(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully"})
}

// UpdateUserRoleInput defines the JSON for changing a user's role.
type UpdateUserRoleInput struct {
	Role string `json:"role" binding:"required,oneof=User Admin"`
}

// UpdateUserRole is the handler for PUT /v1/admin/users/:id/role.
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input UpdateUserRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if targetID == h.currentUserID(c) && input.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot demote your own account"})
		return
	}

	res, err := h.DB.Exec("UPDATE users SET role = ?, updated_at = ? WHERE id = ?",
		input.Role, time.Now(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully"})
}

//
// --- Admin Analytics ---
//

// DailyCount is one day bucket of a count series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyAmount is one day bucket of a revenue series.
type DailyAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// GenreCount is the content tally of one genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Analytics is the payload for GET /v1/admin/analytics.
type Analytics struct {
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	Registrations  []DailyCount  `json:"registrations"`
	Revenue        []DailyAmount `json:"revenue"`
	WatchActivity  []DailyCount  `json:"watchActivity"`
	ContentByGenre []GenreCount  `json:"contentByGenre"`
}

const dateLayout = "2006-01-02"

// GetAnalytics is the handler for GET /v1/admin/analytics.
// Day bucketing happens in Go so the queries stay free of vendor date
// functions.
func (h *Handlers) GetAnalytics(c *gin.Context) {
	end := time.Now()
	start := end.AddDate(0, -1, 0)

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate (want YYYY-MM-DD)"})
			return
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate (want YYYY-MM-DD)"})
			return
		}
		end = parsed
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not precede startDate"})
		return
	}
	// The end day is inclusive.
	rangeEnd := end.AddDate(0, 0, 1)

	registrations, err := h.dailyCounts("SELECT created_at FROM users WHERE created_at >= ? AND created_at < ?", start, rangeEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load registrations"})
		return
	}

	watchActivity, err := h.dailyCounts("SELECT watched_at FROM watch_history WHERE watched_at >= ? AND watched_at < ?", start, rangeEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load watch activity"})
		return
	}

	revenue, err := h.dailyRevenue(start, rangeEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load revenue"})
		return
	}

	byGenre, err := h.genreCounts(start, rangeEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content by genre"})
		return
	}

	c.JSON(http.StatusOK, Analytics{
		StartDate:      start.Format(dateLayout),
		EndDate:        end.Format(dateLayout),
		Registrations:  registrations,
		Revenue:        revenue,
		WatchActivity:  watchActivity,
		ContentByGenre: byGenre,
	})
}

func (h *Handlers) dailyCounts(query string, start, end time.Time) ([]DailyCount, error) {
	rows, err := h.DB.Query(query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := map[string]int{}
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		buckets[ts.Format(dateLayout)]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	series := make([]DailyCount, 0, len(buckets))
	for date, count := range buckets {
		series = append(series, DailyCount{Date: date, Count: count})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

func (h *Handlers) dailyRevenue(start, end time.Time) ([]DailyAmount, error) {
	rows, err := h.DB.Query(`
		SELECT created_at, amount FROM payments
		WHERE status = ? AND created_at >= ? AND created_at < ?`,
		models.PaymentCompleted, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := map[string]float64{}
	for rows.Next() {
		var ts time.Time
		var amount float64
		if err := rows.Scan(&ts, &amount); err != nil {
			return nil, err
		}
		buckets[ts.Format(dateLayout)] += amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	series := make([]DailyAmount, 0, len(buckets))
	for date, amount := range buckets {
		series = append(series, DailyAmount{Date: date, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

func (h *Handlers) genreCounts(start, end time.Time) ([]GenreCount, error) {
	rows, err := h.DB.Query(`
		SELECT genre, COUNT(*) FROM content
		WHERE created_at >= ? AND created_at < ?
		GROUP BY genre
		ORDER BY COUNT(*) DESC, genre ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []GenreCount{}
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}

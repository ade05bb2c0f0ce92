// Package billing tracks subscriptions and payments per user. No gateway
// is called: checkout writes a paired Subscription and Payment record
// with synthetic reference ids, which is all the platform needs to gate
// playback and drive the admin revenue reports.
package billing

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/streamhaven/streamhaven-golang/internal/config"
	"github.com/streamhaven/streamhaven-golang/internal/models"
)

var (
	// ErrUnknownPlan means the planId is not in the configured price table.
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrNoActiveSubscription means the user has nothing to cancel or show.
	ErrNoActiveSubscription = errors.New("no active subscription")
)

// Checkout is the result of a stubbed checkout session.
type Checkout struct {
	Subscription models.Subscription `json:"subscription"`
	Payment      models.Payment      `json:"payment"`
}

// CreateCheckout validates the plan, supersedes any currently active
// subscription and writes the new subscription plus its completed payment
// in one transaction.
func CreateCheckout(db *sql.DB, plans []config.Plan, userID int64, planID, method string) (*Checkout, error) {
	var plan config.Plan
	found := false
	for _, p := range plans {
		if p.ID == planID || p.Name == planID {
			plan = p
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownPlan
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	// A user holds at most one Active subscription; switching plans
	// cancels the previous one rather than stacking a second.
	_, err = tx.Exec(`
		UPDATE subscriptions SET status = ?, cancelled_at = ?, updated_at = ?
		WHERE user_id = ? AND status = ?`,
		models.SubscriptionCancelled, now, now, userID, models.SubscriptionActive)
	if err != nil {
		return nil, fmt.Errorf("supersede subscriptions: %w", err)
	}

	endDate := now.AddDate(0, 1, 0)
	stripeSubID := "sub_" + uuid.NewString()
	stripeCusID := "cus_" + uuid.NewString()

	res, err := tx.Exec(`
		INSERT INTO subscriptions
			(user_id, plan_type, status, start_date, end_date, stripe_subscription_id, stripe_customer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, plan.Name, models.SubscriptionActive, now, endDate, stripeSubID, stripeCusID, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	subID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	txnID := "txn_" + uuid.NewString()
	res, err = tx.Exec(`
		INSERT INTO payments (user_id, subscription_id, amount, currency, method, status, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, subID, plan.Price, plan.Currency, method, models.PaymentCompleted, txnID, now)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	paymentID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	return &Checkout{
		Subscription: models.Subscription{
			ID: subID, UserID: userID, PlanType: plan.Name,
			Status: models.SubscriptionActive, StartDate: now, EndDate: &endDate,
			StripeSubscriptionID: &stripeSubID, StripeCustomerID: &stripeCusID,
			CreatedAt: now, UpdatedAt: now,
		},
		Payment: models.Payment{
			ID: paymentID, UserID: userID, SubscriptionID: subID,
			Amount: plan.Price, Currency: plan.Currency, Method: method,
			Status: models.PaymentCompleted, TransactionID: txnID, CreatedAt: now,
		},
	}, nil
}

const subscriptionSelect = `
	SELECT id, user_id, plan_type, status, start_date, end_date, cancelled_at,
	       stripe_subscription_id, stripe_customer_id, created_at, updated_at
	FROM subscriptions`

func scanSubscription(row *sql.Row) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanType, &s.Status, &s.StartDate, &s.EndDate,
		&s.CancelledAt, &s.StripeSubscriptionID, &s.StripeCustomerID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveSubscription
	}
	if err != nil {
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &s, nil
}

// Current returns the user's active subscription: the most recent one by
// start date if several Active rows ever raced into existence.
func Current(db *sql.DB, userID int64) (*models.Subscription, error) {
	row := db.QueryRow(subscriptionSelect+`
		WHERE user_id = ? AND status = ?
		ORDER BY start_date DESC, id DESC
		LIMIT 1`, userID, models.SubscriptionActive)
	return scanSubscription(row)
}

// Cancel marks the current active subscription as cancelled.
func Cancel(db *sql.DB, userID int64) (*models.Subscription, error) {
	sub, err := Current(db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = db.Exec(`
		UPDATE subscriptions SET status = ?, cancelled_at = ?, updated_at = ?
		WHERE id = ?`,
		models.SubscriptionCancelled, now, now, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("cancel subscription %d: %w", sub.ID, err)
	}

	sub.Status = models.SubscriptionCancelled
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	return sub, nil
}

// Payments lists the user's payment history, newest first.
func Payments(db *sql.DB, userID int64) ([]models.Payment, error) {
	rows, err := db.Query(`
		SELECT id, user_id, subscription_id, amount, currency, method, status, transaction_id, created_at
		FROM payments
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.SubscriptionID, &p.Amount, &p.Currency,
			&p.Method, &p.Status, &p.TransactionID, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

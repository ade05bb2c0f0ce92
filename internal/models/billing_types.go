package models

import "time"

// Subscription status values.
const (
	SubscriptionActive    = "Active"
	SubscriptionCancelled = "Cancelled"
	SubscriptionExpired   = "Expired"
)

// Payment status values.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
	PaymentRefunded  = "Refunded"
)

// Subscription defines the model for the 'subscriptions' table.
// The external reference ids are synthetic; no real gateway is involved.
type Subscription struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	PlanType    string     `json:"planType" db:"plan_type"`
	Status      string     `json:"status" db:"status"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" db:"cancelled_at"`

	StripeSubscriptionID *string `json:"stripeSubscriptionId,omitempty" db:"stripe_subscription_id"`
	StripeCustomerID     *string `json:"stripeCustomerId,omitempty" db:"stripe_customer_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Payment defines the model for the 'payments' table
type Payment struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	SubscriptionID int64     `json:"subscriptionId" db:"subscription_id"`
	Amount         float64   `json:"amount" db:"amount"`
	Currency       string    `json:"currency" db:"currency"`
	Method         string    `json:"method" db:"method"`
	Status         string    `json:"status" db:"status"`
	TransactionID  string    `json:"transactionId" db:"transaction_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

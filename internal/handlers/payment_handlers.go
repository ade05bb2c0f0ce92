package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/billing"
)

//
// --- Payment & Subscription Handlers ---
//

// GetPlans is the handler for GET /v1/payment/plans.
func (h *Handlers) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.Config.Plans})
}

// CheckoutInput defines the JSON for creating a checkout session.
type CheckoutInput struct {
	PlanID        string `json:"planId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// CreateCheckoutSession is the handler for POST /v1/payment/create-checkout-session.
// No gateway is involved; the subscription and its completed payment are
// written directly.
func (h *Handlers) CreateCheckoutSession(c *gin.Context) {
	userID := h.currentUserID(c)

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkout, err := billing.CreateCheckout(h.DB, h.Config.Plans, userID, input.PlanID, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, billing.ErrUnknownPlan) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscription created successfully",
		"subscription": checkout.Subscription,
		"payment":      checkout.Payment,
	})
}

// GetSubscription is the handler for GET /v1/payment/subscription.
func (h *Handlers) GetSubscription(c *gin.Context) {
	userID := h.currentUserID(c)

	sub, err := billing.Current(h.DB, userID)
	if err != nil {
		if errors.Is(err, billing.ErrNoActiveSubscription) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

// CancelSubscription is the handler for POST /v1/payment/cancel-subscription.
func (h *Handlers) CancelSubscription(c *gin.Context) {
	userID := h.currentUserID(c)

	sub, err := billing.Cancel(h.DB, userID)
	if err != nil {
		if errors.Is(err, billing.ErrNoActiveSubscription) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscription cancelled successfully",
		"subscription": sub,
	})
}

// GetPaymentHistory is the handler for GET /v1/payment/payment-history.
func (h *Handlers) GetPaymentHistory(c *gin.Context) {
	userID := h.currentUserID(c)

	payments, err := billing.Payments(h.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	"pay-router.backend/internal/interfaces/http/response"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, sub *entities.Subscription) error
	GetSubscription(ctx context.Context, id string) (*entities.Subscription, error)
	GetPrecalculatedRoute(ctx context.Context, subscriptionID string) (*entities.PrecalculatedRoute, error)
}

// SubscriptionHandler handles subscription endpoints
type SubscriptionHandler struct {
	subscriptionUsecase SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionUsecase SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

type createSubscriptionInput struct {
	CustomerID    uuid.UUID       `json:"customerId" binding:"required"`
	MerchantID    uuid.UUID       `json:"merchantId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required"`
	NextRenewalAt time.Time       `json:"nextRenewalAt" binding:"required"`
}

// CreateSubscription creates a new subscription
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var input createSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	sub := &entities.Subscription{
		CustomerID:    input.CustomerID,
		MerchantID:    input.MerchantID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		NextRenewalAt: input.NextRenewalAt,
	}

	if err := h.subscriptionUsecase.CreateSubscription(c.Request.Context(), sub); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"subscription": sub})
}

// GetSubscription gets a subscription by ID
// GET /api/v1/subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.subscriptionUsecase.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subscription": sub})
}

// GetPrecalculatedRoute returns the cached renewal route for a subscription
// GET /api/v1/subscriptions/:id/route
func (h *SubscriptionHandler) GetPrecalculatedRoute(c *gin.Context) {
	route, err := h.subscriptionUsecase.GetPrecalculatedRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"route": route})
}

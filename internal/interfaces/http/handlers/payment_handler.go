package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	"pay-router.backend/internal/interfaces/http/response"
	"pay-router.backend/pkg/utils"
)

type ChargeService interface {
	CreateCharge(ctx context.Context, req *entities.ChargeRequest) (*entities.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	ListPayments(ctx context.Context, merchantID *uuid.UUID, pagination utils.PaginationParams) ([]*entities.Payment, int64, error)
}

// PaymentHandler handles charge and payment endpoints
type PaymentHandler struct {
	chargeUsecase ChargeService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(chargeUsecase ChargeService) *PaymentHandler {
	return &PaymentHandler{chargeUsecase: chargeUsecase}
}

// CreateCharge routes and executes a charge
// POST /api/v1/charges
func (h *PaymentHandler) CreateCharge(c *gin.Context) {
	var req entities.ChargeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.chargeUsecase.CreateCharge(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// GetPayment gets a payment by ID
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	payment, err := h.chargeUsecase.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// ListPayments lists payments, optionally filtered by merchant
// GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var merchantID *uuid.UUID
	if m := c.Query("merchantId"); m != "" {
		id, err := uuid.Parse(m)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
			return
		}
		merchantID = &id
	}

	payments, total, err := h.chargeUsecase.ListPayments(c.Request.Context(), merchantID,
		utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(total, page, limit),
	})
}

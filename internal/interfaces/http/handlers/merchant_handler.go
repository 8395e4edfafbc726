package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	"pay-router.backend/internal/interfaces/http/response"
)

type MerchantService interface {
	CreateMerchant(ctx context.Context, merchant *entities.Merchant) error
	GetMerchant(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	CreateCustomer(ctx context.Context, customer *entities.Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
}

// MerchantHandler handles merchant and customer onboarding endpoints
type MerchantHandler struct {
	merchantUsecase MerchantService
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantUsecase MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantUsecase: merchantUsecase}
}

type createMerchantInput struct {
	BusinessName string `json:"businessName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	TaxID        string `json:"taxId"`
}

// CreateMerchant creates a new merchant
// POST /api/v1/merchants
func (h *MerchantHandler) CreateMerchant(c *gin.Context) {
	var input createMerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchant := &entities.Merchant{
		BusinessName: input.BusinessName,
		Email:        input.Email,
	}
	if input.TaxID != "" {
		merchant.TaxID = null.StringFrom(input.TaxID)
	}

	if err := h.merchantUsecase.CreateMerchant(c.Request.Context(), merchant); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"merchant": merchant})
}

// GetMerchant gets a merchant by ID
// GET /api/v1/merchants/:id
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	merchant, err := h.merchantUsecase.GetMerchant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

type createCustomerInput struct {
	MerchantID         uuid.UUID `json:"merchantId" binding:"required"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PaymentMethodToken string    `json:"paymentMethodToken" binding:"required"`
}

// CreateCustomer creates a new customer under a merchant
// POST /api/v1/customers
func (h *MerchantHandler) CreateCustomer(c *gin.Context) {
	var input createCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer := &entities.Customer{
		MerchantID:         input.MerchantID,
		Name:               input.Name,
		Email:              input.Email,
		PaymentMethodToken: input.PaymentMethodToken,
	}

	if err := h.merchantUsecase.CreateCustomer(c.Request.Context(), customer); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"customer": customer})
}

// GetCustomer gets a customer by ID
// GET /api/v1/customers/:id
func (h *MerchantHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid customer ID"))
		return
	}

	customer, err := h.merchantUsecase.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

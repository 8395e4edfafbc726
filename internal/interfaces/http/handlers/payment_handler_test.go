package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	"pay-router.backend/pkg/utils"
)

type chargeServiceStub struct {
	createFn func(ctx context.Context, req *entities.ChargeRequest) (*entities.Payment, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	listFn   func(ctx context.Context, merchantID *uuid.UUID, pagination utils.PaginationParams) ([]*entities.Payment, int64, error)
}

func (s chargeServiceStub) CreateCharge(ctx context.Context, req *entities.ChargeRequest) (*entities.Payment, error) {
	return s.createFn(ctx, req)
}
func (s chargeServiceStub) GetPayment(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	return s.getFn(ctx, id)
}
func (s chargeServiceStub) ListPayments(ctx context.Context, merchantID *uuid.UUID, pagination utils.PaginationParams) ([]*entities.Payment, int64, error) {
	return s.listFn(ctx, merchantID, pagination)
}

func chargeRouter(service ChargeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(service)
	r := gin.New()
	r.POST("/charges", h.CreateCharge)
	r.GET("/payments/:id", h.GetPayment)
	r.GET("/payments", h.ListPayments)
	return r
}

func TestPaymentHandler_CreateCharge(t *testing.T) {
	paymentID := uuid.New()
	merchantID := uuid.New()
	customerID := uuid.New()

	service := chargeServiceStub{
		createFn: func(_ context.Context, req *entities.ChargeRequest) (*entities.Payment, error) {
			if req.MerchantID != merchantID {
				return nil, domainerrors.ErrNotFound
			}
			return &entities.Payment{
				ID:       paymentID,
				Provider: entities.ProviderStripe,
				Status:   entities.PaymentStatusCompleted,
			}, nil
		},
	}
	r := chargeRouter(service)

	body, _ := json.Marshal(gin.H{
		"merchantId": merchantID,
		"customerId": customerID,
		"amount":     "25.00",
		"currency":   "USD",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/charges", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), paymentID.String())
}

func TestPaymentHandler_CreateCharge_BadBody(t *testing.T) {
	r := chargeRouter(chargeServiceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/charges", bytes.NewBufferString(`{"amount":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_CreateCharge_MerchantNotActive(t *testing.T) {
	service := chargeServiceStub{
		createFn: func(_ context.Context, _ *entities.ChargeRequest) (*entities.Payment, error) {
			return nil, domainerrors.ErrMerchantNotActive
		},
	}
	r := chargeRouter(service)

	body, _ := json.Marshal(gin.H{
		"merchantId": uuid.New(),
		"customerId": uuid.New(),
		"amount":     "10",
		"currency":   "USD",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/charges", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	paymentID := uuid.New()
	service := chargeServiceStub{
		getFn: func(_ context.Context, id uuid.UUID) (*entities.Payment, error) {
			if id == paymentID {
				return &entities.Payment{ID: id, Amount: decimal.NewFromInt(5)}, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	r := chargeRouter(service)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/"+paymentID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/"+uuid.New().String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	merchantID := uuid.New()
	var gotMerchant *uuid.UUID
	service := chargeServiceStub{
		listFn: func(_ context.Context, m *uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
			gotMerchant = m
			if p.Page == 9 {
				return nil, 0, errors.New("list boom")
			}
			return []*entities.Payment{{ID: uuid.New()}}, 1, nil
		},
	}
	r := chargeRouter(service)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?merchantId="+merchantID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotMerchant)
	assert.Equal(t, merchantID, *gotMerchant)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?merchantId=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?page=9", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

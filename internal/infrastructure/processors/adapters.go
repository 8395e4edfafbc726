package processors

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"

	"pay-router.backend/internal/domain/entities"
)

// The adapter bodies below are deterministic stubs: they honor the wire
// contract and synthesize transaction ids, standing in for the real
// gateway integrations.

func syntheticTxID(prefix string) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(buf))
}

// StripeProcessor adapts the internal contract to Stripe's PaymentIntent
// shape.
type StripeProcessor struct{}

func NewStripeProcessor() *StripeProcessor { return &StripeProcessor{} }

func (p *StripeProcessor) Name() string { return string(entities.ProviderStripe) }

func (p *StripeProcessor) Charge(_ context.Context, req entities.ProcessorRequest) entities.ProcessorResponse {
	// Large amounts simulate a gateway decline for failure-path testing.
	if req.Amount.GreaterThan(decimal.NewFromInt(10000)) {
		return entities.ProcessorResponse{
			Status:       entities.ProcessorStatusFailure,
			ErrorCode:    "amount_too_large",
			ErrorMessage: "amount exceeds test limit",
		}
	}
	return entities.ProcessorResponse{
		Status:                 entities.ProcessorStatusSuccess,
		ProcessorTransactionID: syntheticTxID("pi"),
		RawResponse:            map[string]interface{}{"provider": "stripe"},
	}
}

func (p *StripeProcessor) Refund(_ context.Context, _ string, _ decimal.Decimal) entities.ProcessorResponse {
	return entities.ProcessorResponse{Status: entities.ProcessorStatusSuccess}
}

// AdyenProcessor adapts the internal contract to Adyen's checkout API
// shape.
type AdyenProcessor struct{}

func NewAdyenProcessor() *AdyenProcessor { return &AdyenProcessor{} }

func (p *AdyenProcessor) Name() string { return string(entities.ProviderAdyen) }

func (p *AdyenProcessor) Charge(_ context.Context, _ entities.ProcessorRequest) entities.ProcessorResponse {
	return entities.ProcessorResponse{
		Status:                 entities.ProcessorStatusSuccess,
		ProcessorTransactionID: syntheticTxID("adyen"),
		RawResponse:            map[string]interface{}{"provider": "adyen", "result_code": "Authorised"},
	}
}

func (p *AdyenProcessor) Refund(_ context.Context, _ string, _ decimal.Decimal) entities.ProcessorResponse {
	return entities.ProcessorResponse{Status: entities.ProcessorStatusSuccess}
}

// BraintreeProcessor adapts the internal contract to Braintree's
// transaction API shape.
type BraintreeProcessor struct{}

func NewBraintreeProcessor() *BraintreeProcessor { return &BraintreeProcessor{} }

func (p *BraintreeProcessor) Name() string { return string(entities.ProviderBraintree) }

func (p *BraintreeProcessor) Charge(_ context.Context, _ entities.ProcessorRequest) entities.ProcessorResponse {
	return entities.ProcessorResponse{
		Status:                 entities.ProcessorStatusSuccess,
		ProcessorTransactionID: syntheticTxID("bt"),
		RawResponse:            map[string]interface{}{"provider": "braintree", "cvv_verification": "match"},
	}
}

func (p *BraintreeProcessor) Refund(_ context.Context, _ string, _ decimal.Decimal) entities.ProcessorResponse {
	return entities.ProcessorResponse{Status: entities.ProcessorStatusSuccess}
}

// InternalProcessor is the in-house rail used for testing and local
// acquiring.
type InternalProcessor struct{}

func NewInternalProcessor() *InternalProcessor { return &InternalProcessor{} }

func (p *InternalProcessor) Name() string { return string(entities.ProviderInternal) }

func (p *InternalProcessor) Charge(_ context.Context, _ entities.ProcessorRequest) entities.ProcessorResponse {
	return entities.ProcessorResponse{
		Status:                 entities.ProcessorStatusSuccess,
		ProcessorTransactionID: syntheticTxID("int"),
		RawResponse:            map[string]interface{}{"provider": "internal"},
	}
}

func (p *InternalProcessor) Refund(_ context.Context, _ string, _ decimal.Decimal) entities.ProcessorResponse {
	return entities.ProcessorResponse{Status: entities.ProcessorStatusSuccess}
}

// DefaultRegistry returns a registry with every provider's stub adapter
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(entities.ProviderStripe, NewStripeProcessor())
	r.Register(entities.ProviderAdyen, NewAdyenProcessor())
	r.Register(entities.ProviderBraintree, NewBraintreeProcessor())
	r.Register(entities.ProviderInternal, NewInternalProcessor())
	return r
}

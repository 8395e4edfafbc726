package processors

import (
	"context"

	"github.com/shopspring/decimal"

	"pay-router.backend/internal/domain/entities"
)

// Processor is the uniform adapter contract for external payment
// gateways. Implementations never return transport errors from Charge;
// failures map to a StatusFailure response with an error code.
type Processor interface {
	Charge(ctx context.Context, req entities.ProcessorRequest) entities.ProcessorResponse
	Refund(ctx context.Context, processorTransactionID string, amount decimal.Decimal) entities.ProcessorResponse
	Name() string
}

// Registry maps providers to their adapters. It is populated once at
// startup and read-only afterwards, so lookups take no lock.
type Registry struct {
	processors map[entities.Provider]Processor
}

func NewRegistry() *Registry {
	return &Registry{processors: make(map[entities.Provider]Processor)}
}

// Register binds an adapter to a provider. Later registrations for the
// same provider replace earlier ones.
func (r *Registry) Register(provider entities.Provider, processor Processor) {
	r.processors[provider] = processor
}

// Get returns the adapter for a provider. A miss is a configuration
// error, not a routing outcome.
func (r *Registry) Get(provider entities.Provider) (Processor, bool) {
	p, ok := r.processors[provider]
	return p, ok
}

// Providers lists the registered provider names.
func (r *Registry) Providers() []string {
	out := make([]string, 0, len(r.processors))
	for provider := range r.processors {
		out = append(out, string(provider))
	}
	return out
}

package usecases

import (
	"github.com/shopspring/decimal"

	"pay-router.backend/internal/domain/entities"
)

// FeeService serves the static provider fee table. The table is fixed at
// construction; a database-backed schedule would slot in behind the same
// accessor.
type FeeService struct {
	fees []entities.FeeStructure
}

func NewFeeService() *FeeService {
	return &FeeService{fees: []entities.FeeStructure{
		{
			Provider:           entities.ProviderStripe,
			CardNetwork:        entities.FeeMatchAny,
			CardType:           entities.FeeMatchAny,
			Region:             "domestic",
			FixedFee:           decimal.RequireFromString("0.30"),
			VariableFeePercent: decimal.RequireFromString("2.9"),
		},
		{
			Provider:           entities.ProviderStripe,
			CardNetwork:        entities.FeeMatchAny,
			CardType:           entities.FeeMatchAny,
			Region:             "international",
			FixedFee:           decimal.RequireFromString("0.30"),
			VariableFeePercent: decimal.RequireFromString("3.9"),
		},
		{
			Provider:           entities.ProviderAdyen,
			CardNetwork:        entities.FeeMatchAny,
			CardType:           entities.FeeMatchAny,
			Region:             entities.FeeMatchAny,
			FixedFee:           decimal.RequireFromString("0.12"),
			VariableFeePercent: decimal.RequireFromString("3.0"),
		},
		{
			Provider:           entities.ProviderBraintree,
			CardNetwork:        entities.FeeMatchAny,
			CardType:           entities.FeeMatchAny,
			Region:             entities.FeeMatchAny,
			FixedFee:           decimal.RequireFromString("0.49"),
			VariableFeePercent: decimal.RequireFromString("2.59"),
		},
		{
			Provider:           entities.ProviderInternal,
			CardNetwork:        entities.FeeMatchAny,
			CardType:           "debit",
			Region:             "domestic",
			FixedFee:           decimal.RequireFromString("0.25"),
			VariableFeePercent: decimal.RequireFromString("1.0"),
		},
		{
			Provider:           entities.ProviderInternal,
			CardNetwork:        entities.FeeMatchAny,
			CardType:           entities.FeeMatchAny,
			Region:             entities.FeeMatchAny,
			FixedFee:           decimal.RequireFromString("0.50"),
			VariableFeePercent: decimal.RequireFromString("2.5"),
		},
	}}
}

// AllFees returns every fee rule.
func (s *FeeService) AllFees() []entities.FeeStructure {
	out := make([]entities.FeeStructure, len(s.fees))
	copy(out, s.fees)
	return out
}

// BestMatch returns the most specific fee rule for the provider that
// applies to the dimension.
func (s *FeeService) BestMatch(provider entities.Provider, dim entities.RoutingDimension) (entities.FeeStructure, bool) {
	var best entities.FeeStructure
	found := false
	for _, fee := range s.fees {
		if fee.Provider != provider || !fee.Matches(dim) {
			continue
		}
		if !found || fee.Specificity() > best.Specificity() {
			best = fee
			found = true
		}
	}
	return best, found
}

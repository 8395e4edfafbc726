package entities

import "github.com/shopspring/decimal"

// FeeMatchAny is the wildcard value in a fee rule.
const FeeMatchAny = "default"

// FeeStructure is a static fee rule for a provider. CardNetwork, CardType
// and Region default to the wildcard; the most specific matching rule wins.
type FeeStructure struct {
	Provider           Provider        `json:"provider"`
	CardNetwork        string          `json:"card_network"`
	CardType           string          `json:"card_type"`
	Region             string          `json:"region"`
	FixedFee           decimal.Decimal `json:"fixed_fee"`
	VariableFeePercent decimal.Decimal `json:"variable_fee_percent"`
}

// Matches reports whether the rule applies to the given dimension.
func (f FeeStructure) Matches(dim RoutingDimension) bool {
	if f.CardNetwork != FeeMatchAny && f.CardNetwork != dim.Network {
		return false
	}
	if f.CardType != FeeMatchAny && f.CardType != dim.CardType {
		return false
	}
	if f.Region != FeeMatchAny && f.Region != dim.Region {
		return false
	}
	return true
}

// Specificity counts non-wildcard fields; higher wins when several rules
// match the same dimension.
func (f FeeStructure) Specificity() int {
	n := 0
	if f.CardNetwork != FeeMatchAny {
		n++
	}
	if f.CardType != FeeMatchAny {
		n++
	}
	if f.Region != FeeMatchAny {
		n++
	}
	return n
}

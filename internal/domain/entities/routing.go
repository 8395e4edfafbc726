package entities

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RoutingDimension is the slice of traffic context used to look up
// performance data. Extras carries dynamic fields promoted from ingestion
// (e.g. merchant_category); equality includes them.
type RoutingDimension struct {
	PaymentMethodType string            `json:"payment_method_type"`
	PaymentForm       string            `json:"payment_form"`
	Network           string            `json:"network"`
	CardType          string            `json:"card_type"`
	Region            string            `json:"region"`
	Currency          string            `json:"currency"`
	NetworkTokenized  bool              `json:"is_network_tokenized"`
	Extras            map[string]string `json:"extras,omitempty"`
}

// DefaultDimension returns a dimension with the baseline values used when
// no card context is available.
func DefaultDimension() RoutingDimension {
	return RoutingDimension{
		PaymentMethodType: "credit_card",
		PaymentForm:       "card_on_file",
		Network:           "unknown",
		CardType:          "unknown",
		Region:            "domestic",
		Currency:          "USD",
	}
}

// CanonicalKey serializes the dimension into a stable storage key.
// Struct fields keep declaration order and map keys are sorted by
// encoding/json, so logically equal dimensions collide.
func (d RoutingDimension) CanonicalKey() string {
	b, _ := json.Marshal(d)
	return string(b)
}

// Equal reports structural equality of all fields including extras.
func (d RoutingDimension) Equal(other RoutingDimension) bool {
	return d.CanonicalKey() == other.CanonicalKey()
}

// CostStructure holds the fee components of a provider. All values are
// non-negative.
type CostStructure struct {
	VariableFeePercent decimal.Decimal `json:"variable_fee_percent"`
	FixedFee           decimal.Decimal `json:"fixed_fee"`
	InterchangePlusBps decimal.Decimal `json:"interchange_plus_basis_points"`
}

// PerformanceMetrics holds observed provider performance for a dimension.
type PerformanceMetrics struct {
	AuthRate     float64       `json:"auth_rate"`
	FraudRate    float64       `json:"fraud_rate"`
	AvgLatencyMS int           `json:"avg_latency_ms"`
	Cost         CostStructure `json:"cost_structure"`
}

// ProviderPerformance associates metrics with a (provider, dimension) pair.
// The intelligence repository holds at most one record per pair.
type ProviderPerformance struct {
	Provider   Provider           `json:"provider"`
	Dimension  RoutingDimension   `json:"dimension"`
	Metrics    PerformanceMetrics `json:"metrics"`
	DataWindow string             `json:"data_window"`
}

// ResolvedProvider is the per-decision materialized view of a candidate:
// reconciled cost plus observed metrics. Produced fresh for every routing
// call and never persisted.
type ResolvedProvider struct {
	Provider           Provider        `json:"provider"`
	FixedFee           decimal.Decimal `json:"fixed_fee"`
	VariableFeePercent decimal.Decimal `json:"variable_fee_percent"`
	AuthRate           float64         `json:"auth_rate"`
	AvgLatencyMS       int             `json:"avg_latency_ms"`
}

// TotalCost computes the expected fee for charging amount through the
// provider: fixed_fee + amount * variable_fee_percent / 100.
func (r ResolvedProvider) TotalCost(amount decimal.Decimal) decimal.Decimal {
	return r.FixedFee.Add(amount.Mul(r.VariableFeePercent).Div(decimal.NewFromInt(100)))
}

// RouteDecision is the outcome of a routing call, carrying the
// human-readable audit trail recorded on the payment.
type RouteDecision struct {
	Provider Provider `json:"provider"`
	Reason   string   `json:"reason"`
	Strategy string   `json:"strategy,omitempty"`
}

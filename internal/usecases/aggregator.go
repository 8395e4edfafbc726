package usecases

import (
	"sort"

	"github.com/shopspring/decimal"

	"pay-router.backend/internal/domain/entities"
)

// IntelligenceStrategy turns a batch of raw transaction records into
// provider performance rows. Implementations must be deterministic and
// order-insensitive on their input.
type IntelligenceStrategy interface {
	Analyze(records []entities.RawTransactionRecord) []entities.ProviderPerformance
}

// StaticAggregator groups records by (provider, derived dimension) and
// computes average metrics per group. Fraud rate and cost structure are
// fixed placeholders until richer sources are wired in. When configured
// with dynamic dimension names, matching extra fields from each record are
// promoted into the dimension, producing finer-grained buckets.
type StaticAggregator struct {
	dynamicDimensions []string
	defaultCost       entities.CostStructure
}

const aggregatorFraudRate = 0.01

func NewStaticAggregator(dynamicDimensions ...string) *StaticAggregator {
	return &StaticAggregator{
		dynamicDimensions: dynamicDimensions,
		defaultCost: entities.CostStructure{
			VariableFeePercent: decimal.RequireFromString("2.9"),
			FixedFee:           decimal.RequireFromString("0.30"),
		},
	}
}

type aggregationGroup struct {
	provider   entities.Provider
	dimension  entities.RoutingDimension
	total      int
	succeeded  int
	latencySum int
}

func (a *StaticAggregator) Analyze(records []entities.RawTransactionRecord) []entities.ProviderPerformance {
	groups := make(map[string]*aggregationGroup)

	for _, record := range records {
		dim := a.dimensionFor(record)
		key := string(record.Provider) + "|" + dim.CanonicalKey()

		group, ok := groups[key]
		if !ok {
			group = &aggregationGroup{provider: record.Provider, dimension: dim}
			groups[key] = group
		}
		group.total++
		if record.Succeeded() {
			group.succeeded++
		}
		group.latencySum += record.LatencyMS
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]entities.ProviderPerformance, 0, len(groups))
	for _, key := range keys {
		group := groups[key]
		results = append(results, entities.ProviderPerformance{
			Provider:  group.provider,
			Dimension: group.dimension,
			Metrics: entities.PerformanceMetrics{
				AuthRate:     float64(group.succeeded) / float64(group.total),
				FraudRate:    aggregatorFraudRate,
				AvgLatencyMS: group.latencySum / group.total,
				Cost:         a.defaultCost,
			},
			DataWindow: "batch",
		})
	}
	return results
}

func (a *StaticAggregator) dimensionFor(record entities.RawTransactionRecord) entities.RoutingDimension {
	dim := entities.RoutingDimension{
		PaymentMethodType: "credit_card",
		PaymentForm:       record.PaymentForm,
		Network:           record.Network,
		CardType:          record.CardType,
		Region:            record.Region,
		Currency:          record.Currency,
	}
	for _, name := range a.dynamicDimensions {
		if value, ok := record.ExtraFields[name]; ok {
			if dim.Extras == nil {
				dim.Extras = make(map[string]string)
			}
			dim.Extras[name] = value
		}
	}
	return dim
}

package usecases

import (
	"strings"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/pkg/redis"
)

// Default metrics for providers that have a fee rule but no observed
// performance yet.
const (
	synthesizedAuthRate  = 0.95
	synthesizedLatencyMS = 300
)

// ReconcileProviders merges the static fee table, dimensioned performance
// records and the health snapshot into the per-decision candidate list.
// A performance row for (dim, provider) contributes its observed cost and
// metrics; fee-table providers without one are synthesized from the static
// fee and default metrics. Providers reported "down" are excluded. The
// result follows the stable provider ordering, so ties downstream break
// deterministically.
func ReconcileProviders(
	dim entities.RoutingDimension,
	fees *FeeService,
	performance []entities.ProviderPerformance,
	health map[string]string,
) []entities.ResolvedProvider {
	perfByProvider := make(map[entities.Provider]entities.ProviderPerformance, len(performance))
	for _, p := range performance {
		perfByProvider[p.Provider] = p
	}

	var resolved []entities.ResolvedProvider
	for _, provider := range entities.AllProviders() {
		if health[strings.ToLower(string(provider))] == redis.HealthDown {
			continue
		}

		if perf, ok := perfByProvider[provider]; ok {
			resolved = append(resolved, entities.ResolvedProvider{
				Provider:           provider,
				FixedFee:           perf.Metrics.Cost.FixedFee,
				VariableFeePercent: perf.Metrics.Cost.VariableFeePercent,
				AuthRate:           perf.Metrics.AuthRate,
				AvgLatencyMS:       perf.Metrics.AvgLatencyMS,
			})
			continue
		}

		if fee, ok := fees.BestMatch(provider, dim); ok {
			resolved = append(resolved, entities.ResolvedProvider{
				Provider:           provider,
				FixedFee:           fee.FixedFee,
				VariableFeePercent: fee.VariableFeePercent,
				AuthRate:           synthesizedAuthRate,
				AvgLatencyMS:       synthesizedLatencyMS,
			})
		}
	}
	return resolved
}

package ingestion

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/pkg/utils"
)

// providerProfile shapes the synthetic traffic of one provider.
type providerProfile struct {
	SuccessRate   float64
	AvgLatencyMS  float64
	LatencyStddev float64
}

var defaultProfiles = map[entities.Provider]providerProfile{
	entities.ProviderStripe:    {SuccessRate: 0.95, AvgLatencyMS: 250, LatencyStddev: 50},
	entities.ProviderAdyen:     {SuccessRate: 0.93, AvgLatencyMS: 300, LatencyStddev: 70},
	entities.ProviderBraintree: {SuccessRate: 0.90, AvgLatencyMS: 400, LatencyStddev: 100},
	entities.ProviderInternal:  {SuccessRate: 0.85, AvgLatencyMS: 150, LatencyStddev: 30},
}

var (
	syntheticNetworks     = []string{"visa", "mastercard", "amex", "discover"}
	syntheticRegions      = []string{"domestic", "international"}
	syntheticCurrencies   = []string{"USD", "EUR", "GBP"}
	syntheticPaymentForms = []string{"card_on_file", "apple_pay", "google_pay"}
)

// SyntheticGenerator is a batch source of realistic dummy transaction
// records, spread across every provider over a trailing window. It backs
// seeding and offline analysis when no settlement reports are at hand.
type SyntheticGenerator struct {
	count    int
	window   time.Duration
	profiles map[entities.Provider]providerProfile
	rng      *rand.Rand
}

func NewSyntheticGenerator(count int) *SyntheticGenerator {
	return NewSyntheticGeneratorWithSeed(count, time.Now().UnixNano())
}

// NewSyntheticGeneratorWithSeed fixes the random source, making batches
// reproducible.
func NewSyntheticGeneratorWithSeed(count int, seed int64) *SyntheticGenerator {
	return &SyntheticGenerator{
		count:    count,
		window:   30 * 24 * time.Hour,
		profiles: defaultProfiles,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// FetchData generates the configured number of records, sorted by
// timestamp ascending.
func (g *SyntheticGenerator) FetchData(_ context.Context) ([]entities.RawTransactionRecord, error) {
	records := make([]entities.RawTransactionRecord, 0, g.count)
	now := utils.NowUTC()
	for i := 0; i < g.count; i++ {
		offset := time.Duration(g.rng.Int63n(int64(g.window)))
		records = append(records, g.generate(now.Add(-offset)))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (g *SyntheticGenerator) generate(timestamp time.Time) entities.RawTransactionRecord {
	providers := entities.AllProviders()
	provider := providers[g.rng.Intn(len(providers))]
	profile := g.profiles[provider]

	status := entities.RecordStatusSucceeded
	errorCode := ""
	if g.rng.Float64() >= profile.SuccessRate {
		status = entities.RecordStatusFailed
		errorCode = "card_declined"
	}

	latency := int(g.rng.NormFloat64()*profile.LatencyStddev + profile.AvgLatencyMS)
	if latency < 50 {
		latency = 50
	}

	processingType := "signature"
	if g.rng.Float64() > 0.5 {
		processingType = "network_token"
	}
	cardType := "credit"
	if g.rng.Float64() <= 0.2 {
		cardType = "debit"
	}

	amount := decimal.NewFromFloat(5 + g.rng.Float64()*495).Round(2)

	return entities.RawTransactionRecord{
		Provider:       provider,
		PaymentForm:    syntheticPaymentForms[g.rng.Intn(len(syntheticPaymentForms))],
		ProcessingType: processingType,
		Amount:         amount,
		Currency:       syntheticCurrencies[g.rng.Intn(len(syntheticCurrencies))],
		Status:         status,
		ErrorCode:      errorCode,
		LatencyMS:      latency,
		BIN:            fmt.Sprintf("%06d", g.rng.Intn(1000000)),
		CardType:       cardType,
		Network:        syntheticNetworks[g.rng.Intn(len(syntheticNetworks))],
		Region:         syntheticRegions[g.rng.Intn(len(syntheticRegions))],
		Timestamp:      timestamp,
	}
}

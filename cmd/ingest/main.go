package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"pay-router.backend/internal/config"
	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/internal/infrastructure/datastores"
	"pay-router.backend/internal/infrastructure/ingestion"
	"pay-router.backend/internal/infrastructure/repositories"
	"pay-router.backend/internal/usecases"
	"pay-router.backend/pkg/logger"
	"pay-router.backend/pkg/redis"
)

// Loads transaction data into the intelligence repository the running
// server reads from: a provider settlement report, or a synthetic batch
// for seeding.
//
//	go run ./cmd/ingest -provider stripe -file report.csv
//	go run ./cmd/ingest -provider synthetic -count 500
func main() {
	provider := flag.String("provider", "", "data source: stripe, adyen or synthetic")
	file := flag.String("file", "", "path to the CSV report (stripe, adyen)")
	count := flag.Int("count", 500, "records to generate (synthetic)")
	flag.Parse()

	if *provider == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	if err := redis.Init(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		log.Fatalf("failed to initialize redis: %v", err)
	}

	perfRepo := repositories.NewPerformanceRepository(
		datastores.NewRedisKeyValueStore[[]entities.ProviderPerformance](redis.GetClient(), "perf"))
	ingestor := ingestion.NewDataIngestor(perfRepo, usecases.NewStaticAggregator())
	ctx := context.Background()

	if *provider == "synthetic" {
		n, err := ingestor.IngestFromProvider(ctx, ingestion.NewSyntheticGenerator(*count))
		if err != nil {
			log.Fatalf("ingestion failed: %v", err)
		}
		fmt.Printf("✅ Ingested %d synthetic records\n", n)
		return
	}

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	var parser ingestion.TransactionParser
	switch entities.Provider(*provider) {
	case entities.ProviderStripe:
		parser = ingestion.NewStripeCSVParser()
	case entities.ProviderAdyen:
		parser = ingestion.NewAdyenCSVParser()
	default:
		log.Fatalf("no report parser for provider %q", *provider)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open report: %v", err)
	}
	defer f.Close()

	n, err := ingestor.IngestReport(ctx, f, parser)
	if err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}

	fmt.Printf("✅ Ingested %d records from %s\n", n, *file)
}

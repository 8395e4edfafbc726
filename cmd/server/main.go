package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pay-router.backend/internal/config"
	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/internal/infrastructure/datastores"
	"pay-router.backend/internal/infrastructure/ingestion"
	"pay-router.backend/internal/infrastructure/jobs"
	"pay-router.backend/internal/infrastructure/llm"
	"pay-router.backend/internal/infrastructure/models"
	"pay-router.backend/internal/infrastructure/processors"
	"pay-router.backend/internal/infrastructure/repositories"
	"pay-router.backend/internal/interfaces/http/handlers"
	"pay-router.backend/internal/interfaces/http/middleware"
	"pay-router.backend/internal/usecases"
	"pay-router.backend/pkg/logger"
	"pay-router.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(
			&models.Merchant{},
			&models.Customer{},
			&models.Payment{},
			&models.Subscription{},
		); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories. Relational entities live in Postgres;
	// intelligence buckets and pre-calculated routes live in Redis so
	// every instance shares the same view.
	merchantRepo := repositories.NewMerchantRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	perfRepo := repositories.NewPerformanceRepository(
		datastores.NewRedisKeyValueStore[[]entities.ProviderPerformance](redis.GetClient(), "perf"))
	precalcRepo := repositories.NewPrecalculatedRouteRepository(
		datastores.NewRedisKeyValueStore[entities.PrecalculatedRoute](redis.GetClient(), "precalc"))
	binRepo := repositories.NewCardBINRepository(
		datastores.NewMemoryRelationalStore[entities.CardBIN]())
	interchangeRepo := repositories.NewInterchangeFeeRepository(
		datastores.NewMemoryRelationalStore[entities.InterchangeFee]())
	feedbackStore := repositories.NewFeedbackStore()

	// Routing engine
	feeService := usecases.NewFeeService()
	healthStore := redis.NewHealthStore(cfg.Routing.HealthTimeout)
	strategy, err := buildStrategy(cfg, feeService)
	if err != nil {
		return err
	}
	engine := usecases.NewRoutingEngine(perfRepo, feeService, strategy,
		healthStore, entities.Provider(cfg.Routing.DefaultProvider))
	logger.Info(context.Background(), "Routing engine initialized",
		zap.String("strategy", strategy.Name()),
		zap.String("default_provider", cfg.Routing.DefaultProvider))

	// Intelligence pipeline
	aggregator := usecases.NewStaticAggregator()
	ingestor := ingestion.NewDataIngestor(perfRepo, aggregator)
	collector := usecases.NewFeedbackCollector(feedbackStore)

	// Initialize usecases
	chargeUsecase := usecases.NewChargeUsecase(
		paymentRepo, merchantRepo, customerRepo, precalcRepo, interchangeRepo, binRepo,
		engine, processors.DefaultRegistry(), collector,
		entities.Provider(cfg.Routing.DefaultProvider))
	merchantUsecase := usecases.NewMerchantUsecase(merchantRepo, customerRepo)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(subscriptionRepo, precalcRepo)

	// Initialize handlers
	paymentHandler := handlers.NewPaymentHandler(chargeUsecase)
	merchantHandler := handlers.NewMerchantHandler(merchantUsecase)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionUsecase)
	routingHandler := handlers.NewRoutingHandler(engine)
	intelligenceHandler := handlers.NewIntelligenceHandler(ingestor, perfRepo)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renewalJob := jobs.NewRenewalPrecalcJob(subscriptionRepo, precalcRepo, engine,
		cfg.Renewal.CheckInterval, time.Duration(cfg.Renewal.LookaheadDays)*24*time.Hour)
	go renewalJob.Start(ctx)

	drainJob := jobs.NewFeedbackDrainJob(feedbackStore, ingestor, cfg.Feedback.DrainInterval)
	go drainJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		paymentHandler:      paymentHandler,
		merchantHandler:     merchantHandler,
		subscriptionHandler: subscriptionHandler,
		routingHandler:      routingHandler,
		intelligenceHandler: intelligenceHandler,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		renewalJob.Stop()
		drainJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Pay-Router Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildStrategy maps the configured strategy name onto a concrete
// decision strategy. LLM-backed strategies share one chat client.
func buildStrategy(cfg *config.Config, fees *usecases.FeeService) (usecases.DecisionStrategy, error) {
	switch cfg.Routing.Strategy {
	case "LEAST_COST":
		return usecases.NewDeterministicLeastCostStrategy(), nil
	case "FIXED":
		provider, err := entities.ParseProvider(cfg.Routing.FixedProvider)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed provider: %w", err)
		}
		return usecases.NewFixedStrategy(provider), nil
	case "LLM":
		client := llm.NewHTTPClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Timeout)
		return usecases.NewLLMStrategy(client, cfg.LLM.Model, cfg.Routing.Objective), nil
	case "PLANNER":
		client := llm.NewHTTPClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Timeout)
		return usecases.NewPlannerStrategy(client, cfg.LLM.Model, cfg.Routing.Objective, fees), nil
	default:
		return nil, fmt.Errorf("unknown routing strategy %q", cfg.Routing.Strategy)
	}
}

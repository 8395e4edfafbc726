package jobs

import (
	"context"
	"log"
	"time"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/usecases"
	"pay-router.backend/pkg/utils"
)

const precalcValidityAfterRenewal = 24 * time.Hour

// RenewalPrecalcJob scans upcoming subscription renewals and pre-computes
// routing decisions so at-renewal charges bypass live decisioning.
type RenewalPrecalcJob struct {
	subscriptionRepo domainrepos.SubscriptionRepository
	precalcRepo      domainrepos.PrecalculatedRouteRepository
	engine           *usecases.RoutingEngine
	interval         time.Duration
	lookahead        time.Duration
	stop             chan struct{}
}

func NewRenewalPrecalcJob(
	subscriptionRepo domainrepos.SubscriptionRepository,
	precalcRepo domainrepos.PrecalculatedRouteRepository,
	engine *usecases.RoutingEngine,
	interval time.Duration,
	lookahead time.Duration,
) *RenewalPrecalcJob {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if lookahead <= 0 {
		lookahead = 7 * 24 * time.Hour
	}
	return &RenewalPrecalcJob{
		subscriptionRepo: subscriptionRepo,
		precalcRepo:      precalcRepo,
		engine:           engine,
		interval:         interval,
		lookahead:        lookahead,
		stop:             make(chan struct{}),
	}
}

func (j *RenewalPrecalcJob) Start(ctx context.Context) {
	log.Printf("🕐 Starting renewal pre-calculation job (every %s, lookahead %s)...", j.interval, j.lookahead)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Renewal pre-calculation job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Renewal pre-calculation job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

func (j *RenewalPrecalcJob) Stop() {
	close(j.stop)
}

// RunOnce executes a single pre-calculation cycle. A failure on one
// subscription never aborts the rest of the sweep.
func (j *RenewalPrecalcJob) RunOnce(ctx context.Context) {
	now := utils.NowUTC()

	if removed, err := j.precalcRepo.DeleteExpired(ctx, now); err != nil {
		log.Printf("❌ Error trimming expired pre-calculated routes: %v", err)
	} else if removed > 0 {
		log.Printf("🧹 Trimmed %d expired pre-calculated routes", removed)
	}

	subs, err := j.subscriptionRepo.FindUpcomingRenewals(ctx, now, now.Add(j.lookahead))
	if err != nil {
		log.Printf("❌ Error fetching upcoming renewals: %v", err)
		return
	}
	if len(subs) == 0 {
		return
	}

	log.Printf("🔄 Pre-calculating routes for %d upcoming renewals...", len(subs))
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return
		case <-j.stop:
			return
		default:
		}
		if err := j.precalculate(ctx, sub); err != nil {
			log.Printf("❌ Error pre-calculating route for %s: %v", sub.ID, err)
		}
	}
}

func (j *RenewalPrecalcJob) precalculate(ctx context.Context, sub *entities.Subscription) error {
	req := &entities.ChargeRequest{
		MerchantID:     sub.MerchantID,
		CustomerID:     sub.CustomerID,
		Amount:         sub.Amount,
		Currency:       sub.Currency,
		Description:    "Pre-calculation for renewal of sub " + sub.ID,
		SubscriptionID: sub.ID,
	}

	decision, err := j.engine.FindBestRoute(ctx, req)
	if err != nil {
		return err
	}

	return j.precalcRepo.Save(ctx, &entities.PrecalculatedRoute{
		SubscriptionID:  sub.ID,
		Provider:        decision.Provider,
		RoutingDecision: decision.Reason,
		ExpiresAt:       sub.NextRenewalAt.Add(precalcValidityAfterRenewal),
	})
}

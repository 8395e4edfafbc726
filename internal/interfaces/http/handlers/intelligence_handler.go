package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/ingestion"
	"pay-router.backend/internal/interfaces/http/response"
)

type ReportIngestor interface {
	IngestReport(ctx context.Context, r io.Reader, parser ingestion.TransactionParser) (int, error)
}

// IntelligenceHandler exposes report ingestion and the aggregated
// performance view
type IntelligenceHandler struct {
	ingestor ReportIngestor
	perfRepo domainrepos.PerformanceRepository
}

// NewIntelligenceHandler creates a new intelligence handler
func NewIntelligenceHandler(ingestor ReportIngestor, perfRepo domainrepos.PerformanceRepository) *IntelligenceHandler {
	return &IntelligenceHandler{ingestor: ingestor, perfRepo: perfRepo}
}

// IngestReport ingests a settlement report CSV for a provider
// POST /api/v1/intelligence/reports/:provider
func (h *IntelligenceHandler) IngestReport(c *gin.Context) {
	parser, err := parserFor(c.Param("provider"))
	if err != nil {
		response.Error(c, err)
		return
	}

	body := io.Reader(c.Request.Body)
	if file, _, err := c.Request.FormFile("report"); err == nil {
		defer file.Close()
		body = file
	}

	count, err := h.ingestor.IngestReport(c.Request.Context(), body, parser)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recordsIngested": count})
}

// ListPerformance dumps every aggregated performance row
// GET /api/v1/intelligence/performance
func (h *IntelligenceHandler) ListPerformance(c *gin.Context) {
	rows, err := h.perfRepo.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"performance": rows})
}

func parserFor(provider string) (ingestion.TransactionParser, error) {
	switch entities.Provider(provider) {
	case entities.ProviderStripe:
		return ingestion.NewStripeCSVParser(), nil
	case entities.ProviderAdyen:
		return ingestion.NewAdyenCSVParser(), nil
	default:
		return nil, domainerrors.BadRequest("No report parser for provider " + provider)
	}
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	"pay-router.backend/internal/interfaces/http/response"
)

type RoutingService interface {
	FindBestRoute(ctx context.Context, req *entities.ChargeRequest) (entities.RouteDecision, error)
}

// RoutingHandler exposes the routing engine for dry runs. Nothing is
// charged or persisted.
type RoutingHandler struct {
	engine RoutingService
}

// NewRoutingHandler creates a new routing handler
func NewRoutingHandler(engine RoutingService) *RoutingHandler {
	return &RoutingHandler{engine: engine}
}

// PreviewRoute runs the routing engine against a hypothetical charge
// POST /api/v1/routing/preview
func (h *RoutingHandler) PreviewRoute(c *gin.Context) {
	var req entities.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	decision, err := h.engine.FindBestRoute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"decision": decision})
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"pay-router.backend/internal/interfaces/http/handlers"
	"pay-router.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	paymentHandler      *handlers.PaymentHandler
	merchantHandler     *handlers.MerchantHandler
	subscriptionHandler *handlers.SubscriptionHandler
	routingHandler      *handlers.RoutingHandler
	intelligenceHandler *handlers.IntelligenceHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Charges and payments
		v1.POST("/charges", middleware.IdempotencyMiddleware(), d.paymentHandler.CreateCharge)
		payments := v1.Group("/payments")
		{
			payments.GET("/:id", d.paymentHandler.GetPayment)
			payments.GET("", d.paymentHandler.ListPayments)
		}

		// Merchant and customer onboarding
		merchants := v1.Group("/merchants")
		{
			merchants.POST("", d.merchantHandler.CreateMerchant)
			merchants.GET("/:id", d.merchantHandler.GetMerchant)
		}
		customers := v1.Group("/customers")
		{
			customers.POST("", d.merchantHandler.CreateCustomer)
			customers.GET("/:id", d.merchantHandler.GetCustomer)
		}

		// Subscriptions and their pre-calculated routes
		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.POST("", d.subscriptionHandler.CreateSubscription)
			subscriptions.GET("/:id", d.subscriptionHandler.GetSubscription)
			subscriptions.GET("/:id/route", d.subscriptionHandler.GetPrecalculatedRoute)
		}

		// Routing diagnostics
		v1.POST("/routing/preview", d.routingHandler.PreviewRoute)

		// Intelligence: report ingestion and the aggregated view
		intelligence := v1.Group("/intelligence")
		{
			intelligence.POST("/reports/:provider", d.intelligenceHandler.IngestReport)
			intelligence.GET("/performance", d.intelligenceHandler.ListPerformance)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pay-router-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

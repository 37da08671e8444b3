package report_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freightbooks-ledger/internal/report_api/handler"
	"github.com/freightbooks-ledger/internal/report_api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	reportHandler *handler.ReportHandler,
	batchHandler *handler.BatchHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Chart of accounts and general-ledger views
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id/ledger", accountHandler.GetLedger)
		}

		// Journal batch submission and status
		batches := v1.Group("/journal-batches")
		{
			batches.POST("", batchHandler.Create)
			batches.GET("/:id", batchHandler.GetByID)
		}

		// Financial statements and audits
		reports := v1.Group("/reports")
		{
			reports.GET("/trial-balance", reportHandler.TrialBalance)
			reports.GET("/balance-sheet", reportHandler.BalanceSheet)
			reports.GET("/profit-and-loss", reportHandler.ProfitAndLoss)
			reports.GET("/receivable-aging", reportHandler.ReceivableAging)
			reports.GET("/payable-aging", reportHandler.PayableAging)
			reports.GET("/integrity", reportHandler.Integrity)
			reports.GET("/audit-trail", reportHandler.AuditTrail)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

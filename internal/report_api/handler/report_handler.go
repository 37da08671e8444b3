package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freightbooks-ledger/internal/domain/document"
	"github.com/freightbooks-ledger/internal/ledger"
	"github.com/freightbooks-ledger/internal/report_api/service"
)

// ReportHandler handles HTTP requests for financial statements, aging
// reports, and the journal integrity audit
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// TrialBalance returns the trial balance for the from/to period
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		RespondBadRequest(c, "Invalid period: dates must use the "+dateLayout+" format")
		return
	}

	report, err := h.reportService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		h.respondReportError(c, "trial balance", err)
		return
	}

	RespondOK(c, report)
}

// BalanceSheet returns the balance sheet as of the period end
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		RespondBadRequest(c, "Invalid period: dates must use the "+dateLayout+" format")
		return
	}

	report, err := h.reportService.BalanceSheet(c.Request.Context(), from, to)
	if err != nil {
		h.respondReportError(c, "balance sheet", err)
		return
	}

	RespondOK(c, report)
}

// ProfitAndLoss returns the tiered income statement for the from/to period
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		RespondBadRequest(c, "Invalid period: dates must use the "+dateLayout+" format")
		return
	}

	report, err := h.reportService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		h.respondReportError(c, "profit and loss", err)
		return
	}

	RespondOK(c, report)
}

// ReceivableAging returns the receivable aging report. The optional as_of
// query parameter sets the reference date, defaulting to today.
func (h *ReportHandler) ReceivableAging(c *gin.Context) {
	h.aging(c, document.KindReceivable)
}

// PayableAging returns the payable aging report
func (h *ReportHandler) PayableAging(c *gin.Context) {
	h.aging(c, document.KindPayable)
}

func (h *ReportHandler) aging(c *gin.Context, kind document.Kind) {
	referenceDate := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			RespondBadRequest(c, "Invalid as_of date: must use the "+dateLayout+" format")
			return
		}
		referenceDate = parsed
	}

	report, err := h.reportService.Aging(c.Request.Context(), kind, referenceDate)
	if err != nil {
		h.logger.Error("Failed to compute aging report", "kind", string(kind), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, report)
}

// Integrity runs the journal audit and returns its findings
func (h *ReportHandler) Integrity(c *gin.Context) {
	report, err := h.reportService.Integrity(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to run integrity audit", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, report)
}

// AuditTrail returns paginated posting audit records for the from/to window
func (h *ReportHandler) AuditTrail(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		RespondBadRequest(c, "Invalid period: dates must use the "+dateLayout+" format")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	records, err := h.reportService.AuditTrail(c.Request.Context(), from, to, pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to fetch audit trail", "error", err)
		RespondInternalError(c)
		return
	}

	RespondWithPaginatedData(c, 200, records, pagination.Page, pagination.PerPage)
}

func (h *ReportHandler) respondReportError(c *gin.Context, report string, err error) {
	var badRange ledger.ErrInvalidDateRange
	if errors.As(err, &badRange) {
		RespondBadRequest(c, err.Error())
		return
	}
	h.logger.Error("Failed to compose report", "report", report, "error", err)
	RespondInternalError(c)
}

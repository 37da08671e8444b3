package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/report_api/middleware"
	"github.com/freightbooks-ledger/internal/report_api/service"
)

// BatchHandler handles HTTP requests for journal batch operations
type BatchHandler struct {
	postingService service.PostingService
	logger         *slog.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(logger *slog.Logger, postingService service.PostingService) *BatchHandler {
	return &BatchHandler{
		postingService: postingService,
		logger:         logger,
	}
}

// Create submits a journal batch for asynchronous posting. The response is
// 202 Accepted with the batch ID; the caller polls GetByID for the verdict.
// Supplying a batch_id makes resubmission idempotent: the processor refuses
// to post the same batch twice.
func (h *BatchHandler) Create(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	batchID := uuid.New()
	if req.BatchID != "" {
		parsed, err := uuid.Parse(req.BatchID)
		if err != nil {
			RespondBadRequest(c, "Invalid batch ID")
			return
		}
		batchID = parsed
	}

	lines := make([]shared.PostingLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, err := mapLineRequest(lineReq)
		if err != nil {
			h.logger.Error("Invalid batch line", "error", err)
			RespondBadRequest(c, "Invalid batch line: "+err.Error())
			return
		}
		lines = append(lines, line)
	}

	postingRequest := &shared.PostingRequest{
		BatchID:       batchID,
		Lines:         lines,
		CorrelationID: middleware.GetCorrelationID(c),
		Timestamp:     time.Now(),
	}

	if err := h.postingService.SubmitBatch(c.Request.Context(), postingRequest); err != nil {
		if errors.Is(err, shared.ErrEmptyBatch) || errors.Is(err, shared.ErrNegativeAmount) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to submit batch", "batch_id", batchID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondAccepted(c, gin.H{
		"batch_id": batchID.String(),
		"status":   "PENDING",
	})
}

// GetByID resolves a batch's posting outcome, returning 404 while it is
// unknown or still in flight
func (h *BatchHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid batch ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid batch ID")
		return
	}

	status, err := h.postingService.GetBatchStatus(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get batch status", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if status == nil {
		RespondNotFound(c, "Batch not found or still in flight")
		return
	}

	RespondOK(c, mapBatchStatusToResponse(status))
}

// mapLineRequest converts one submitted line into a posting line
func mapLineRequest(req CreateBatchLineRequest) (shared.PostingLine, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return shared.PostingLine{}, err
	}

	entryDate, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		return shared.PostingLine{}, err
	}

	line := shared.PostingLine{
		AccountID:     accountID,
		Debit:         req.Debit,
		Credit:        req.Credit,
		EntryDate:     entryDate,
		ReferenceType: req.ReferenceType,
		Description:   req.Description,
		EntryNumber:   req.EntryNumber,
	}

	if req.ReferenceID != "" {
		referenceID, err := uuid.Parse(req.ReferenceID)
		if err != nil {
			return shared.PostingLine{}, err
		}
		line.ReferenceID = referenceID
	}

	return line, nil
}

// mapBatchStatusToResponse maps a resolved batch status to its DTO
func mapBatchStatusToResponse(status *service.BatchStatus) BatchStatusResponse {
	response := BatchStatusResponse{
		BatchID:      status.BatchID.String(),
		Status:       string(status.Status),
		RejectReason: status.RejectReason,
		LineCount:    len(status.Lines),
	}

	for _, line := range status.Lines {
		lineResponse := BatchLineResponse{
			LineID:      line.ID.String(),
			AccountID:   line.AccountID.String(),
			Debit:       line.Debit,
			Credit:      line.Credit,
			EntryDate:   line.EntryDate.Format(dateLayout),
			Description: line.Description,
			EntryNumber: line.EntryNumber,
		}
		if line.HasReference() {
			lineResponse.ReferenceType = line.ReferenceType
			lineResponse.ReferenceID = line.ReferenceID.String()
		}
		response.Lines = append(response.Lines, lineResponse)
	}

	if status.Record != nil {
		if response.LineCount == 0 {
			response.LineCount = status.Record.LineCount
		}
		response.SubmittedAt = status.Record.SubmittedAt.Format(time.RFC3339)
		if status.Record.RecordedAt != nil {
			response.RecordedAt = status.Record.RecordedAt.Format(time.RFC3339)
		}
	}

	return response
}

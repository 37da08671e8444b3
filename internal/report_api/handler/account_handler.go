package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/ledger"
	"github.com/freightbooks-ledger/internal/report_api/service"
)

// AccountHandler handles HTTP requests for chart-of-accounts operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// List returns the full chart of accounts ordered by code
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list accounts", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		responses = append(responses, mapAccountToResponse(acc))
	}

	RespondOK(c, responses)
}

// GetLedger computes the general-ledger view of one account over the period
// given by the from/to query parameters, returning 404 if the account
// doesn't exist
func (h *AccountHandler) GetLedger(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	from, to, err := parsePeriod(c)
	if err != nil {
		h.logger.Error("Invalid period parameters", "error", err)
		RespondBadRequest(c, "Invalid period: dates must use the "+dateLayout+" format")
		return
	}

	accountLedger, err := h.accountService.GetAccountLedger(c.Request.Context(), id, from, to)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		var badRange ledger.ErrInvalidDateRange
		if errors.As(err, &badRange) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to compute account ledger", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountLedgerToResponse(accountLedger, from, to))
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.ID.String(),
		Code:      acc.Code,
		Name:      acc.Name,
		Type:      string(acc.Type),
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: acc.UpdatedAt.Format(time.RFC3339),
	}
}

// mapAccountLedgerToResponse maps a computed account ledger to its DTO
func mapAccountLedgerToResponse(l *ledger.AccountLedger, from, to time.Time) AccountLedgerResponse {
	response := AccountLedgerResponse{
		Account:      mapAccountToResponse(l.Account),
		From:         from.Format(dateLayout),
		To:           to.Format(dateLayout),
		Opening:      l.Opening,
		PeriodDebit:  l.PeriodDebit,
		PeriodCredit: l.PeriodCredit,
		Closing:      l.Closing,
	}

	for _, m := range l.Movements {
		movement := MovementResponse{
			LineID:      m.Line.ID.String(),
			EntryDate:   m.Line.EntryDate.Format(dateLayout),
			EntryNumber: m.Line.EntryNumber,
			Description: m.Line.Description,
			Debit:       m.Line.Debit,
			Credit:      m.Line.Credit,
			Running:     m.Running,
		}
		if m.Line.HasReference() {
			movement.ReferenceType = m.Line.ReferenceType
			movement.ReferenceID = m.Line.ReferenceID.String()
		}
		response.Movements = append(response.Movements, movement)
	}

	return response
}

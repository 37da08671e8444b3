package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for all date query parameters and fields.
const dateLayout = "2006-01-02"

// CreateBatchLineRequest is one leg of a journal batch submission
type CreateBatchLineRequest struct {
	AccountID     string          `json:"account_id" binding:"required,uuid"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EntryDate     string          `json:"entry_date" binding:"required"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty" binding:"omitempty,uuid"`
	Description   string          `json:"description,omitempty"`
	EntryNumber   string          `json:"entry_number,omitempty"`
}

// CreateBatchRequest represents a request to post a journal batch
type CreateBatchRequest struct {
	BatchID string                   `json:"batch_id,omitempty" binding:"omitempty,uuid"`
	Lines   []CreateBatchLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AccountResponse represents a chart-of-accounts entry in API responses
type AccountResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MovementResponse is one journal line with its running balance
type MovementResponse struct {
	LineID        string          `json:"line_id"`
	EntryDate     string          `json:"entry_date"`
	EntryNumber   string          `json:"entry_number,omitempty"`
	Description   string          `json:"description,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Running       decimal.Decimal `json:"running_balance"`
}

// AccountLedgerResponse is the general-ledger view of one account
type AccountLedgerResponse struct {
	Account      AccountResponse    `json:"account"`
	From         string             `json:"from"`
	To           string             `json:"to"`
	Opening      decimal.Decimal    `json:"opening_balance"`
	Movements    []MovementResponse `json:"movements"`
	PeriodDebit  decimal.Decimal    `json:"period_debit"`
	PeriodCredit decimal.Decimal    `json:"period_credit"`
	Closing      decimal.Decimal    `json:"closing_balance"`
}

// BatchLineResponse is one posted journal line in API responses
type BatchLineResponse struct {
	LineID        string          `json:"line_id"`
	AccountID     string          `json:"account_id"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EntryDate     string          `json:"entry_date"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	EntryNumber   string          `json:"entry_number,omitempty"`
}

// BatchStatusResponse represents a journal batch's posting outcome
type BatchStatusResponse struct {
	BatchID      string              `json:"batch_id"`
	Status       string              `json:"status"`
	RejectReason string              `json:"reject_reason,omitempty"`
	LineCount    int                 `json:"line_count"`
	Lines        []BatchLineResponse `json:"lines,omitempty"`
	SubmittedAt  string              `json:"submitted_at,omitempty"`
	RecordedAt   string              `json:"recorded_at,omitempty"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=50" binding:"min=1,max=200"`
}

// parsePeriod reads the optional from/to query parameters. An absent from
// means the beginning of the journal; an absent to means today. The ordering
// check is left to the engine so the error is the same everywhere.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	to = time.Now().UTC()
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	return from, to, nil
}

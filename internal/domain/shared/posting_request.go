package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyBatch     = errors.New("posting request has no lines")
	ErrUnbalanced     = errors.New("posting request debits do not equal credits")
	ErrNegativeAmount = errors.New("debit and credit amounts must be non-negative")
)

// PostingLine is one leg of a batch as submitted for posting. Line IDs and
// sequence numbers are assigned by the processor, not the submitter.
type PostingLine struct {
	AccountID     uuid.UUID       `json:"account_id"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EntryDate     time.Time       `json:"entry_date"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   uuid.UUID       `json:"reference_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	EntryNumber   string          `json:"entry_number,omitempty"`
}

// PostingRequest defines a Kafka message carrying one journal batch, the
// set of legs for a single economic transaction. The batch must net to
// zero; the processor rejects it otherwise.
type PostingRequest struct {
	BatchID       uuid.UUID     `json:"batch_id"`
	Lines         []PostingLine `json:"lines"`
	CorrelationID string        `json:"correlation_id"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Totals returns the batch's debit and credit sums.
func (r *PostingRequest) Totals() (decimal.Decimal, decimal.Decimal) {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, line := range r.Lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

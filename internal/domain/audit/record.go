package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

// Record is the immutable audit-trail entry written for every batch the
// processor handled, posted or rejected. Amounts are stored as fixed-point
// strings so the trail is exact regardless of the BSON number types.
type Record struct {
	BatchID       uuid.UUID            `json:"batch_id" bson:"batch_id"`
	Status        shared.PostingStatus `json:"status" bson:"status"`
	RejectReason  string               `json:"reject_reason,omitempty" bson:"reject_reason,omitempty"`
	LineCount     int                  `json:"line_count" bson:"line_count"`
	TotalDebit    string               `json:"total_debit" bson:"total_debit"`
	TotalCredit   string               `json:"total_credit" bson:"total_credit"`
	CorrelationID string               `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	SubmittedAt   time.Time            `json:"submitted_at" bson:"submitted_at"`
	RecordedAt    *time.Time           `json:"recorded_at,omitempty" bson:"recorded_at,omitempty"`
}

// NewRecord builds an audit record from a posting request and its outcome.
func NewRecord(request *shared.PostingRequest, status shared.PostingStatus, rejectReason string) *Record {
	debit, credit := request.Totals()
	return &Record{
		BatchID:       request.BatchID,
		Status:        status,
		RejectReason:  rejectReason,
		LineCount:     len(request.Lines),
		TotalDebit:    debit.StringFixed(2),
		TotalCredit:   credit.StringFixed(2),
		CorrelationID: request.CorrelationID,
		SubmittedAt:   request.Timestamp,
	}
}

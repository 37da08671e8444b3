package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

// Message stores a posted batch's audit record for reliable publishing to
// the audit trail after the posting transaction commits.
type Message struct {
	ID            int64               `json:"id"`
	BatchID       uuid.UUID           `json:"batch_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

func NewMessage(record *audit.Record) (*Message, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	return &Message{
		BatchID:   record.BatchID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetAuditRecord extracts the audit record from the payload
func (m *Message) GetAuditRecord() (*audit.Record, error) {
	var record audit.Record
	if err := json.Unmarshal(m.Payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

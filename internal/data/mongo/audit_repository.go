package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freightbooks-ledger/internal/domain/audit"
)

const (
	// AuditCollectionName is the name of the audit trail collection in MongoDB
	AuditCollectionName = "posting_audit"
)

// AuditRepository implements the audit.Repository interface for MongoDB
type AuditRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAuditRepository creates a new MongoDB audit repository
func NewAuditRepository(logger *slog.Logger, db *mongo.Database) audit.Repository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new audit record after checking for duplicates.
// Returns ErrDuplicateRecord if a record for the batch already exists,
// which keeps outbox retries idempotent.
func (r *AuditRepository) Create(ctx context.Context, record *audit.Record) error {
	collection := r.db.Collection(AuditCollectionName)

	existingRecord, err := r.GetByBatchID(ctx, record.BatchID)
	if err != nil && !errors.Is(err, audit.ErrRecordNotFound{}) {
		r.logger.Error("Failed to check for existing audit record",
			"batch_id", record.BatchID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing audit record: %w", err)
	}

	if existingRecord != nil {
		return audit.ErrDuplicateRecord{BatchID: record.BatchID}
	}

	now := time.Now()
	record.RecordedAt = &now

	_, err = collection.InsertOne(ctx, record)
	if err != nil {
		r.logger.Error("Failed to create audit record",
			"batch_id", record.BatchID.String(),
			"error", err)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	return nil
}

// GetByBatchID retrieves an audit record by its batch ID.
// Returns ErrRecordNotFound if no record exists for the given batch.
func (r *AuditRepository) GetByBatchID(ctx context.Context, batchID uuid.UUID) (*audit.Record, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"batch_id": batchID}
	var record audit.Record
	err := collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, audit.ErrRecordNotFound{BatchID: batchID}
		}
		r.logger.Error("Failed to get audit record",
			"batch_id", batchID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get audit record: %w", err)
	}

	return &record, nil
}

// GetByTimeRange retrieves paginated audit records within the specified
// submission window, newest first.
func (r *AuditRepository) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*audit.Record, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{
		"submitted_at": bson.M{
			"$gte": startTime,
			"$lte": endTime,
		},
	}
	opts := options.Find().
		SetSort(bson.M{"submitted_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get audit records by time range",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to get audit records by time range: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*audit.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode audit records",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}

// CountByBatchID counts audit records for a batch. Anything above one means
// the idempotency guard was bypassed and deserves investigation.
func (r *AuditRepository) CountByBatchID(ctx context.Context, batchID uuid.UUID) (int64, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"batch_id": batchID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count audit records",
			"batch_id", batchID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count audit records: %w", err)
	}

	return count, nil
}

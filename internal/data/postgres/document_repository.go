package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/freightbooks-ledger/internal/domain/document"
	"github.com/freightbooks-ledger/internal/platform/persistence"
)

// DocumentRepository implements the document.Repository interface for
// PostgreSQL. It is read-only here: documents are written by the invoicing
// and purchasing flows upstream.
type DocumentRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewDocumentRepository creates a new PostgreSQL document repository
func NewDocumentRepository(logger *slog.Logger, db *persistence.PostgresDB) document.Repository {
	return &DocumentRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// GetOpen returns unsettled documents of the given kind ordered by due date,
// earliest first, documents without a due date last.
func (r *DocumentRepository) GetOpen(ctx context.Context, kind document.Kind) ([]document.Document, error) {
	query := `
		SELECT id, kind, doc_number, party_name, due_date, outstanding, status, currency
		FROM documents
		WHERE kind = $1 AND status IN ($2, $3)
		ORDER BY due_date ASC NULLS LAST, doc_number ASC
	`

	rows, err := r.querier.Query(ctx, query, kind, document.StatusOpen, document.StatusPartiallySettled)
	if err != nil {
		r.logger.Error("Failed to get open documents", "kind", string(kind), "error", err)
		return nil, fmt.Errorf("failed to get open documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var doc document.Document
		err := rows.Scan(
			&doc.ID,
			&doc.Kind,
			&doc.Number,
			&doc.PartyName,
			&doc.DueDate,
			&doc.Outstanding,
			&doc.Status,
			&doc.Currency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over documents: %w", err)
	}

	return docs, nil
}

// Exists resolves a journal line's (reference_type, reference_id) pair.
// Unknown reference types resolve to false rather than an error so the
// integrity audit can flag them as orphaned.
func (r *DocumentRepository) Exists(ctx context.Context, referenceType string, referenceID uuid.UUID) (bool, error) {
	kind, ok := document.KindForReference(referenceType)
	if !ok {
		return false, nil
	}

	query := `
		SELECT EXISTS (SELECT 1 FROM documents WHERE kind = $1 AND id = $2)
	`

	var exists bool
	err := r.querier.QueryRow(ctx, query, kind, referenceID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check document existence",
			"reference_type", referenceType,
			"reference_id", referenceID.String(),
			"error", err,
		)
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}

	return exists, nil
}

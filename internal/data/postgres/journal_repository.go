package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/platform/persistence"
)

const journalLineColumns = `id, seq, account_id, debit, credit, entry_date, batch_id,
		reference_type, reference_id, description, entry_number, created_at`

// JournalRepository implements the journal.Repository interface for
// PostgreSQL. The journal_lines table is append-only; the bigserial seq
// column makes read order reproducible for equal entry dates.
type JournalRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewJournalRepository creates a new PostgreSQL journal repository
func NewJournalRepository(logger *slog.Logger, db *persistence.PostgresDB) journal.Repository {
	return &JournalRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so a batch insert is atomic
// with its outbox message.
func (r *JournalRepository) WithTx(tx pgx.Tx) journal.Repository {
	return &JournalRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// CreateBatch inserts every line of one posting batch.
func (r *JournalRepository) CreateBatch(ctx context.Context, lines []journal.Line) error {
	query := `
		INSERT INTO journal_lines (id, account_id, debit, credit, entry_date, batch_id,
			reference_type, reference_id, description, entry_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for i := range lines {
		line := &lines[i]
		_, err := r.querier.Exec(ctx, query,
			line.ID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.EntryDate,
			line.BatchID,
			nullableString(line.ReferenceType),
			nullableUUID(line.ReferenceID),
			line.Description,
			line.EntryNumber,
			line.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return journal.ErrDuplicateBatch{BatchID: line.BatchID}
			}
			r.logger.Error("Failed to insert journal line",
				"batch_id", line.BatchID.String(),
				"line_id", line.ID.String(),
				"error", err,
			)
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
	}

	return nil
}

// GetByAccountID returns the account's lines dated up to and including the
// given date, ordered by (entry_date, seq).
func (r *JournalRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, until time.Time) ([]journal.Line, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE account_id = $1 AND entry_date <= $2
		ORDER BY entry_date ASC, seq ASC
	`

	rows, err := r.querier.Query(ctx, query, accountID, until)
	if err != nil {
		r.logger.Error("Failed to get journal lines by account", "account_id", accountID.String(), "error", err)
		return nil, fmt.Errorf("failed to get journal lines by account: %w", err)
	}
	defer rows.Close()

	return scanJournalLines(rows)
}

// GetUntil returns every line dated up to and including the given date,
// ordered by (entry_date, seq).
func (r *JournalRepository) GetUntil(ctx context.Context, until time.Time) ([]journal.Line, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_date <= $1
		ORDER BY entry_date ASC, seq ASC
	`

	rows, err := r.querier.Query(ctx, query, until)
	if err != nil {
		r.logger.Error("Failed to get journal lines", "error", err)
		return nil, fmt.Errorf("failed to get journal lines: %w", err)
	}
	defer rows.Close()

	return scanJournalLines(rows)
}

// GetAll returns the complete journal, used by the integrity audit.
func (r *JournalRepository) GetAll(ctx context.Context) ([]journal.Line, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		ORDER BY entry_date ASC, seq ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get all journal lines", "error", err)
		return nil, fmt.Errorf("failed to get all journal lines: %w", err)
	}
	defer rows.Close()

	return scanJournalLines(rows)
}

// GetByBatchID returns the lines of one batch. Returns ErrBatchNotFound
// when the batch has no lines.
func (r *JournalRepository) GetByBatchID(ctx context.Context, batchID uuid.UUID) ([]journal.Line, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE batch_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.querier.Query(ctx, query, batchID)
	if err != nil {
		r.logger.Error("Failed to get journal lines by batch", "batch_id", batchID.String(), "error", err)
		return nil, fmt.Errorf("failed to get journal lines by batch: %w", err)
	}
	defer rows.Close()

	lines, err := scanJournalLines(rows)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, journal.ErrBatchNotFound{BatchID: batchID}
	}

	return lines, nil
}

// BatchExists reports whether any line of the batch is already posted,
// used for idempotent posting.
func (r *JournalRepository) BatchExists(ctx context.Context, batchID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM journal_lines WHERE batch_id = $1)
	`

	var exists bool
	err := r.querier.QueryRow(ctx, query, batchID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check batch existence", "batch_id", batchID.String(), "error", err)
		return false, fmt.Errorf("failed to check batch existence: %w", err)
	}

	return exists, nil
}

func scanJournalLines(rows pgx.Rows) ([]journal.Line, error) {
	var lines []journal.Line
	for rows.Next() {
		var line journal.Line
		var referenceType *string
		var referenceID *uuid.UUID
		err := rows.Scan(
			&line.ID,
			&line.Seq,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.EntryDate,
			&line.BatchID,
			&referenceType,
			&referenceID,
			&line.Description,
			&line.EntryNumber,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		if referenceType != nil {
			line.ReferenceType = *referenceType
		}
		if referenceID != nil {
			line.ReferenceID = *referenceID
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over journal lines: %w", err)
	}

	return lines, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

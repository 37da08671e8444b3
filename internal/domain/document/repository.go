package document

import (
	"context"

	"github.com/google/uuid"
)

// Repository exposes the document queries the engine's collaborators need:
// open documents for aging, and reference resolution for the integrity
// audit. Document creation belongs to the invoicing/purchasing flows and is
// out of scope here.
type Repository interface {
	// GetOpen returns unsettled documents of the given kind
	GetOpen(ctx context.Context, kind Kind) ([]Document, error)

	// Exists resolves a journal line's (reference_type, reference_id) pair
	Exists(ctx context.Context, referenceType string, referenceID uuid.UUID) (bool, error)
}

package pet

import (
	"context"

	"github.com/google/uuid"
)

// PetRepository defines persistence operations for pet records.
type PetRepository interface {
	// FindByID retrieves a record by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)

	// ListAll returns every record in creation order.
	ListAll(ctx context.Context) ([]*Pet, error)

	// CountByStatus returns record counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new record.
	Save(ctx context.Context, pet *Pet) error

	// Update persists a replaced record with optimistic locking against the
	// version preceding pet.Version().
	Update(ctx context.Context, pet *Pet) error

	// Delete removes a record permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}

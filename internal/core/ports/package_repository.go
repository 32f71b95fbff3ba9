package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
)

// PackageRepository defines the persistence contract for package aggregates.
// Provides methods for storing, retrieving, and querying packages with
// their staging state and piece references.
type PackageRepository interface {
	// Add persists a new package aggregate to storage.
	// The package must be valid and not already exist in the repository.
	Add(ctx context.Context, pkg *staging.Package) error

	// Update persists changes to an existing package aggregate.
	// The package must exist in the repository and be valid.
	Update(ctx context.Context, pkg *staging.Package) error

	// Get retrieves a package aggregate by its unique identifier.
	// Returns the complete package including its piece references.
	Get(ctx context.Context, id kernel.UUID) (*staging.Package, error)

	// GetByOrder retrieves the package assembled for the given order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*staging.Package, error)
}

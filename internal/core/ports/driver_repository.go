// Package ports defines the contracts between the dispatch core and its
// adapters: repositories and the pending queue inside a unit of work, the
// read view used by queries, and the notification, clock and snapshot
// collaborators.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository stores driver aggregates.
// Aggregates returned by the repository are copies; changes are kept only
// after Update and a successful commit.
type DriverRepository interface {
	// NextID allocates the next driver identifier. Identifiers grow
	// monotonically and are never reused.
	NextID(ctx context.Context) (kernel.DriverID, error)

	// Add stores a new driver. The id must not be taken.
	Add(ctx context.Context, d *driver.Driver) error

	// Update replaces a stored driver.
	Update(ctx context.Context, d *driver.Driver) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.DriverID) (*driver.Driver, error)

	// GetAll returns every driver ordered by id.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}

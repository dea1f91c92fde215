package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// RouteRepository stores route aggregates with their ordered items.
type RouteRepository interface {
	NextID(ctx context.Context) (kernel.RouteID, error)
	Add(ctx context.Context, r *route.Route) error
	Update(ctx context.Context, r *route.Route) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.RouteID) (*route.Route, error)

	// GetAllPending returns routes in pending status, oldest first.
	GetAllPending(ctx context.Context) ([]*route.Route, error)

	// FindActiveByItem returns the active route carrying the item, or
	// errs.ErrObjectNotFound.
	FindActiveByItem(ctx context.Context, itemID kernel.UUID) (*route.Route, error)
}

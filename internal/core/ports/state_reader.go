package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// StateReader gives queries a consistent read-only view of the scheduling
// state. No command commits while fn runs.
type StateReader interface {
	Read(ctx context.Context, fn func(view StateView) error) error
}

// StateView exposes live aggregates for the duration of a Read call.
// Callers must not mutate them or keep them after fn returns.
type StateView interface {
	// Driver returns errs.ErrObjectNotFound for unknown ids.
	Driver(id kernel.DriverID) (*driver.Driver, error)
	Drivers() []*driver.Driver

	// Route returns errs.ErrObjectNotFound for unknown ids.
	Route(id kernel.RouteID) (*route.Route, error)
	Routes() []*route.Route
	RoutesByDriver(id kernel.DriverID) []*route.Route

	// Pending lists the queue head first.
	Pending() []*item.Item
}

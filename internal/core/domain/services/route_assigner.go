package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// ErrNoEligibleDriver is returned when no open route accepts the item and no
// driver may open a new one. It is advisory: the item stays queued.
var ErrNoEligibleDriver = errors.New("no eligible driver")

// RouteOpener creates an empty pending route for drv. The assigner binds the
// driver and seeds the route.
type RouteOpener func(drv *driver.Driver) (*route.Route, error)

// Placement describes where an item went.
type Placement struct {
	Route  *route.Route
	Driver *driver.Driver
	Opened bool
}

// RouteAssigner places delivery items into routes, first fit.
//
// Business rules:
//   - open routes are tried oldest first; the first that accepts the item wins
//   - a pending route keeps accepting items after its driver is deactivated
//   - otherwise a new route is opened for the eligible driver with the lowest id
//   - a driver is bound to the new route in the same step
//
// Example usage:
//
//	assigner := NewRouteAssigner()
//	p, err := assigner.Assign(it, pendingRoutes, drivers, opener)
//	if errors.Is(err, ErrNoEligibleDriver) {
//	    // item stays queued
//	}
type RouteAssigner struct{}

func NewRouteAssigner() RouteAssigner {
	return RouteAssigner{}
}

// Assign mutates the chosen route (and the driver, when a route is opened).
// pending must hold the routes in pending status; drivers must include the
// drivers of those routes.
func (a RouteAssigner) Assign(
	it *item.Item,
	pending []*route.Route,
	drivers []*driver.Driver,
	open RouteOpener,
) (Placement, error) {
	if err := it.Validate(); err != nil {
		return Placement{}, err
	}

	byID := make(map[kernel.DriverID]*driver.Driver, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return Placement{}, err
		}
		byID[d.ID()] = d
	}

	if p, ok := a.firstFit(it, pending, byID); ok {
		return p, nil
	}

	eligible := EligibleDrivers(it.Size(), drivers)
	if len(eligible) == 0 {
		return Placement{}, fmt.Errorf("%w: size %s", ErrNoEligibleDriver, it.Size())
	}
	drv := eligible[0]

	r, err := open(drv)
	if err != nil {
		return Placement{}, err
	}
	if err = drv.BindRoute(r.ID()); err != nil {
		return Placement{}, err
	}
	if err = r.AddItem(it, drv); err != nil {
		return Placement{}, err
	}
	return Placement{Route: r, Driver: drv, Opened: true}, nil
}

func (a RouteAssigner) firstFit(
	it *item.Item,
	pending []*route.Route,
	byID map[kernel.DriverID]*driver.Driver,
) (Placement, bool) {
	for _, r := range OldestFirst(pending) {
		drv, ok := byID[r.DriverID()]
		if !ok {
			continue
		}
		if r.AddItem(it, drv) == nil {
			return Placement{Route: r, Driver: drv}, true
		}
	}
	return Placement{}, false
}

// EligibleDrivers returns the drivers that may open a new route for an item
// of size, ordered by id.
func EligibleDrivers(size item.Size, drivers []*driver.Driver) []*driver.Driver {
	out := make([]*driver.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.IsEligibleFor(size) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b *driver.Driver) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

// OldestFirst orders routes by creation time, then id.
func OldestFirst(routes []*route.Route) []*route.Route {
	out := slices.Clone(routes)
	slices.SortStableFunc(out, func(a, b *route.Route) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

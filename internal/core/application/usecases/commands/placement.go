// Package commands contains the operations that change the scheduling state.
// Every handler validates its command, runs inside one unit of work, and
// commits only when the whole operation succeeded.
package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

var (
	ErrDriverNotFound      = errors.New("driver not found")
	ErrRouteNotFound       = errors.New("route not found")
	ErrItemAlreadyAssigned = errors.New("item is already on an active route")
)

// Assignment reports an item placed on a route.
type Assignment struct {
	ItemID   kernel.UUID
	RouteID  kernel.RouteID
	DriverID kernel.DriverID
	NewRoute bool
}

// placePending offers every queued item, head first, to the route assigner
// and stages the outcome in uow. Items that fit nowhere stay queued in their
// order.
func placePending(ctx context.Context, uow ports.UnitOfWork, clock ports.Clock) ([]Assignment, error) {
	queue := uow.PendingQueue()
	items, err := queue.List(ctx)
	if err != nil || len(items) == 0 {
		return nil, err
	}

	driverRepo := uow.DriverRepository()
	routeRepo := uow.RouteRepository()

	drivers, err := driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := routeRepo.GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	open := func(drv *driver.Driver) (*route.Route, error) {
		id, err := routeRepo.NextID(ctx)
		if err != nil {
			return nil, err
		}
		now := clock.Now()
		return route.NewRoute(id, drv, route.SlotFor(now), now)
	}

	var (
		assigner       = services.NewRouteAssigner()
		assignments    []Assignment
		opened         = make(map[kernel.RouteID]bool)
		touchedRoutes  = make(map[kernel.RouteID]*route.Route)
		touchedDrivers = make(map[kernel.DriverID]*driver.Driver)
	)
	for _, it := range items {
		p, err := assigner.Assign(it, pending, drivers, open)
		if errors.Is(err, services.ErrNoEligibleDriver) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if p.Opened {
			pending = append(pending, p.Route)
			opened[p.Route.ID()] = true
			touchedDrivers[p.Driver.ID()] = p.Driver
		}
		touchedRoutes[p.Route.ID()] = p.Route

		if err = queue.Remove(ctx, it.ID()); err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{
			ItemID:   it.ID(),
			RouteID:  p.Route.ID(),
			DriverID: p.Driver.ID(),
			NewRoute: p.Opened,
		})
	}

	for id, r := range touchedRoutes {
		if opened[id] {
			err = routeRepo.Add(ctx, r)
		} else {
			err = routeRepo.Update(ctx, r)
		}
		if err != nil {
			return nil, err
		}
	}
	for _, d := range touchedDrivers {
		if err = driverRepo.Update(ctx, d); err != nil {
			return nil, err
		}
	}

	return assignments, nil
}

func findAssignment(assignments []Assignment, itemID kernel.UUID) (Assignment, bool) {
	for _, a := range assignments {
		if a.ItemID.IsEqual(itemID) {
			return a, true
		}
	}
	return Assignment{}, false
}

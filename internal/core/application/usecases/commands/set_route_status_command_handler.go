package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SetRouteStatusResult reports what the transition released.
type SetRouteStatusResult struct {
	Status      route.Status
	Requeued    int
	Assignments []Assignment
}

// SetRouteStatusCommandHandler applies a status transition.
//
// Business rules:
//   - only lifecycle edges are allowed; anything else is route.ErrInvalidTransition
//   - completed and cancelled routes release their driver
//   - a cancelled route hands its items back to the queue tail in route order
//   - a release rescans the queue in the same unit of work
type SetRouteStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewSetRouteStatusCommandHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) SetRouteStatusCommandHandler {
	return SetRouteStatusCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h SetRouteStatusCommandHandler) Handle(ctx context.Context, cmd SetRouteStatusCommand) (SetRouteStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return SetRouteStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SetRouteStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.Get(ctx, cmd.RouteID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return SetRouteStatusResult{}, ErrRouteNotFound
	}
	if err != nil {
		return SetRouteStatusResult{}, err
	}

	if err = r.TransitionTo(cmd.Status(), h.clock.Now()); err != nil {
		return SetRouteStatusResult{}, err
	}

	res := SetRouteStatusResult{Status: r.Status()}
	if r.Status() == route.Cancelled {
		queue := uow.PendingQueue()
		for _, it := range r.DrainItems() {
			if err = queue.Enqueue(ctx, it); err != nil {
				return SetRouteStatusResult{}, err
			}
			res.Requeued++
		}
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return SetRouteStatusResult{}, err
	}

	if r.Status().IsTerminal() {
		driverRepo := uow.DriverRepository()
		d, err := driverRepo.Get(ctx, r.DriverID())
		if err != nil {
			return SetRouteStatusResult{}, err
		}
		if d.ReleaseRoute(r.ID()) {
			if err = driverRepo.Update(ctx, d); err != nil {
				return SetRouteStatusResult{}, err
			}
		}

		res.Assignments, err = placePending(ctx, uow, h.clock)
		if err != nil {
			return SetRouteStatusResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return SetRouteStatusResult{}, err
	}

	return res, nil
}

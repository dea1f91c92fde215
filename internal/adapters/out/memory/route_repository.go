package memory

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

type routeRepository struct {
	uow *UnitOfWork
}

func (r *routeRepository) NextID(_ context.Context) (kernel.RouteID, error) {
	if !r.uow.active {
		return 0, ErrNoActiveUnitOfWork
	}
	r.uow.lastRouteID++
	return r.uow.lastRouteID, nil
}

func (r *routeRepository) Add(_ context.Context, rt *route.Route) error {
	if !r.uow.active {
		return ErrNoActiveUnitOfWork
	}
	if err := rt.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.route(rt.ID()); ok {
		return errs.NewValueIsInvalidErrorWithCause("route", fmt.Errorf("id %s is taken", rt.ID()))
	}
	r.uow.routes[rt.ID()] = rt.Clone()
	return nil
}

func (r *routeRepository) Update(_ context.Context, rt *route.Route) error {
	if !r.uow.active {
		return ErrNoActiveUnitOfWork
	}
	if err := rt.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.route(rt.ID()); !ok {
		return errs.NewObjectNotFoundError("route", rt.ID())
	}
	r.uow.routes[rt.ID()] = rt.Clone()
	return nil
}

func (r *routeRepository) Get(_ context.Context, id kernel.RouteID) (*route.Route, error) {
	if !r.uow.active {
		return nil, ErrNoActiveUnitOfWork
	}
	rt, ok := r.uow.route(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("route", id)
	}
	return rt.Clone(), nil
}

func (r *routeRepository) GetAllPending(_ context.Context) ([]*route.Route, error) {
	if !r.uow.active {
		return nil, ErrNoActiveUnitOfWork
	}
	out := make([]*route.Route, 0)
	keep := func(rt *route.Route) {
		if rt.Status() == route.Pending {
			out = append(out, rt.Clone())
		}
	}
	for id, rt := range r.uow.store.routes {
		if _, staged := r.uow.routes[id]; !staged {
			keep(rt)
		}
	}
	for _, rt := range r.uow.routes {
		keep(rt)
	}
	return services.OldestFirst(out), nil
}

func (r *routeRepository) FindActiveByItem(_ context.Context, itemID kernel.UUID) (*route.Route, error) {
	if !r.uow.active {
		return nil, ErrNoActiveUnitOfWork
	}
	onRoute, err := r.uow.activeItems()
	if err != nil {
		return nil, err
	}
	id, ok := onRoute[itemID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("item", itemID)
	}
	rt, _ := r.uow.route(id)
	return rt.Clone(), nil
}

// Package memory is the authoritative in-memory home of the scheduling
// state: drivers, routes and the pending item queue.
//
// All access goes through one weighted semaphore. A unit of work takes the
// whole weight from Begin until Commit or Rollback, so commands run one at a
// time and every first-fit scan sees a stable set of routes. Queries take a
// weight of one and run alongside each other. Lock acquisition honours the
// caller's context, so no operation waits forever.
//
// Usage:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// repository calls on uow.DriverRepository(), uow.RouteRepository()...
//
//	return uow.Commit(ctx)
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"golang.org/x/sync/semaphore"
)

// writeWeight is the full semaphore weight; holding it excludes everyone.
const writeWeight = 1 << 30

// Store owns the scheduling state for the life of the process.
type Store struct {
	lock *semaphore.Weighted

	drivers map[kernel.DriverID]*driver.Driver
	routes  map[kernel.RouteID]*route.Route
	pending []*item.Item

	lastDriverID kernel.DriverID
	lastRouteID  kernel.RouteID
}

func NewStore() *Store {
	return &Store{
		lock:    semaphore.NewWeighted(writeWeight),
		drivers: make(map[kernel.DriverID]*driver.Driver),
		routes:  make(map[kernel.RouteID]*route.Route),
	}
}

func (s *Store) lockWrite(ctx context.Context) error { return s.lock.Acquire(ctx, writeWeight) }
func (s *Store) unlockWrite()                        { s.lock.Release(writeWeight) }
func (s *Store) lockRead(ctx context.Context) error  { return s.lock.Acquire(ctx, 1) }
func (s *Store) unlockRead()                         { s.lock.Release(1) }

// Read runs fn against a consistent view of the state.
func (s *Store) Read(ctx context.Context, fn func(view ports.StateView) error) error {
	if err := s.lockRead(ctx); err != nil {
		return err
	}
	defer s.unlockRead()

	return fn(stateView{store: s})
}

// stateView reads the committed state. It is only valid under a lock.
type stateView struct {
	store *Store
}

func (v stateView) Driver(id kernel.DriverID) (*driver.Driver, error) {
	d, ok := v.store.drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return d, nil
}

func (v stateView) Drivers() []*driver.Driver {
	return sortedDrivers(slices.Collect(maps.Values(v.store.drivers)))
}

func (v stateView) Route(id kernel.RouteID) (*route.Route, error) {
	r, ok := v.store.routes[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("route", id)
	}
	return r, nil
}

func (v stateView) Routes() []*route.Route {
	return sortedRoutes(slices.Collect(maps.Values(v.store.routes)))
}

func (v stateView) RoutesByDriver(id kernel.DriverID) []*route.Route {
	out := make([]*route.Route, 0)
	for _, r := range v.store.routes {
		if r.DriverID() == id {
			out = append(out, r)
		}
	}
	return sortedRoutes(out)
}

func (v stateView) Pending() []*item.Item {
	return slices.Clone(v.store.pending)
}

func sortedDrivers(ds []*driver.Driver) []*driver.Driver {
	slices.SortFunc(ds, func(a, b *driver.Driver) int { return cmp.Compare(a.ID(), b.ID()) })
	return ds
}

func sortedRoutes(rs []*route.Route) []*route.Route {
	slices.SortFunc(rs, func(a, b *route.Route) int { return cmp.Compare(a.ID(), b.ID()) })
	return rs
}

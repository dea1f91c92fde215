package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

var (
	ErrNoActiveUnitOfWork = errors.New("unit of work is not active")
	ErrInconsistentState  = errors.New("staged changes break scheduling invariants")
)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages copies of the aggregates it touches and applies them to
// the store on Commit. It holds the store's write lock while active.
type UnitOfWork struct {
	store  *Store
	active bool

	drivers map[kernel.DriverID]*driver.Driver
	routes  map[kernel.RouteID]*route.Route

	// pending is nil until the queue is first touched.
	pending []*item.Item
	queued  bool

	lastDriverID kernel.DriverID
	lastRouteID  kernel.RouteID
}

// Begin acquires the write lock. Calling it on an active unit is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := u.store.lockWrite(ctx); err != nil {
		return err
	}

	u.active = true
	u.drivers = make(map[kernel.DriverID]*driver.Driver)
	u.routes = make(map[kernel.RouteID]*route.Route)
	u.pending = nil
	u.queued = false
	u.lastDriverID = u.store.lastDriverID
	u.lastRouteID = u.store.lastRouteID
	return nil
}

// Commit checks the staged state and applies it. On error the unit stays
// active; Rollback releases it.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveUnitOfWork
	}
	if err := u.verify(); err != nil {
		return err
	}

	s := u.store
	for id, d := range u.drivers {
		s.drivers[id] = d
	}
	for id, r := range u.routes {
		s.routes[id] = r
	}
	if u.queued {
		s.pending = u.pending
	}
	s.lastDriverID = u.lastDriverID
	s.lastRouteID = u.lastRouteID

	u.release()
	return nil
}

// Rollback drops everything staged.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveUnitOfWork
	}
	u.release()
	return nil
}

func (u *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &driverRepository{uow: u}
}

func (u *UnitOfWork) RouteRepository() ports.RouteRepository {
	return &routeRepository{uow: u}
}

func (u *UnitOfWork) PendingQueue() ports.PendingQueue {
	return &pendingQueue{uow: u}
}

func (u *UnitOfWork) release() {
	u.active = false
	u.drivers = nil
	u.routes = nil
	u.pending = nil
	u.queued = false
	u.store.unlockWrite()
}

// verify checks every staged route, then that no item sits on two active
// routes or on an active route and in the queue.
func (u *UnitOfWork) verify() error {
	for _, r := range u.routes {
		if err := r.CheckInvariants(); err != nil {
			return fmt.Errorf("%w: %w", ErrInconsistentState, err)
		}
		if _, ok := u.driver(r.DriverID()); !ok {
			return fmt.Errorf("%w: route %s references unknown driver %s",
				ErrInconsistentState, r.ID(), r.DriverID())
		}
	}
	if !u.queued && len(u.routes) == 0 {
		return nil
	}

	onRoute, err := u.activeItems()
	if err != nil {
		return err
	}
	for _, it := range u.queue() {
		if rid, ok := onRoute[it.ID()]; ok {
			return fmt.Errorf("%w: item %s is queued and on route %s",
				ErrInconsistentState, it.ID(), rid)
		}
	}
	return nil
}

// activeItems maps every item on an active route to that route, staged
// routes taking precedence over committed ones.
func (u *UnitOfWork) activeItems() (map[kernel.UUID]kernel.RouteID, error) {
	out := make(map[kernel.UUID]kernel.RouteID)
	add := func(r *route.Route) error {
		if !r.IsActive() {
			return nil
		}
		for _, it := range r.Items() {
			if other, ok := out[it.ID()]; ok {
				return fmt.Errorf("%w: item %s is on routes %s and %s",
					ErrInconsistentState, it.ID(), other, r.ID())
			}
			out[it.ID()] = r.ID()
		}
		return nil
	}

	for id, r := range u.store.routes {
		if _, staged := u.routes[id]; staged {
			continue
		}
		if err := add(r); err != nil {
			return nil, err
		}
	}
	for _, r := range u.routes {
		if err := add(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// driver returns the staged driver, or the committed one.
func (u *UnitOfWork) driver(id kernel.DriverID) (*driver.Driver, bool) {
	if d, ok := u.drivers[id]; ok {
		return d, true
	}
	d, ok := u.store.drivers[id]
	return d, ok
}

func (u *UnitOfWork) route(id kernel.RouteID) (*route.Route, bool) {
	if r, ok := u.routes[id]; ok {
		return r, true
	}
	r, ok := u.store.routes[id]
	return r, ok
}

// queue returns the staged queue, or the committed one when untouched.
func (u *UnitOfWork) queue() []*item.Item {
	if u.queued {
		return u.pending
	}
	return u.store.pending
}

// stageQueue copies the committed queue on first write.
func (u *UnitOfWork) stageQueue() {
	if !u.queued {
		u.pending = slices.Clone(u.store.pending)
		u.queued = true
	}
}

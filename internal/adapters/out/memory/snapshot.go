package memory

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

// Snapshot copies the committed state.
func (s *Store) Snapshot(ctx context.Context, takenAt time.Time) (ports.Snapshot, error) {
	if err := s.lockRead(ctx); err != nil {
		return ports.Snapshot{}, err
	}
	defer s.unlockRead()

	v := stateView{store: s}
	snap := ports.Snapshot{
		TakenAt: takenAt,
		Drivers: make([]*driver.Driver, 0, len(s.drivers)),
		Routes:  make([]*route.Route, 0, len(s.routes)),
		Pending: v.Pending(),
	}
	for _, d := range v.Drivers() {
		snap.Drivers = append(snap.Drivers, d.Clone())
	}
	for _, r := range v.Routes() {
		snap.Routes = append(snap.Routes, r.Clone())
	}
	return snap, nil
}

// Restore replaces the whole state with snap. The snapshot must reference
// only drivers it contains, and must not list an item both on an active
// route and in the queue.
func (s *Store) Restore(ctx context.Context, snap ports.Snapshot) error {
	drivers := make(map[kernel.DriverID]*driver.Driver, len(snap.Drivers))
	routes := make(map[kernel.RouteID]*route.Route, len(snap.Routes))
	var lastDriverID kernel.DriverID
	var lastRouteID kernel.RouteID

	for _, d := range snap.Drivers {
		if err := d.Validate(); err != nil {
			return err
		}
		drivers[d.ID()] = d.Clone()
		lastDriverID = max(lastDriverID, d.ID())
	}

	onRoute := make(map[kernel.UUID]kernel.RouteID)
	for _, r := range snap.Routes {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, ok := drivers[r.DriverID()]; !ok {
			return fmt.Errorf("restore route %s: unknown driver %s", r.ID(), r.DriverID())
		}
		if r.IsActive() {
			for _, it := range r.Items() {
				onRoute[it.ID()] = r.ID()
			}
		}
		routes[r.ID()] = r.Clone()
		lastRouteID = max(lastRouteID, r.ID())
	}

	for _, it := range snap.Pending {
		if rid, ok := onRoute[it.ID()]; ok {
			return fmt.Errorf("restore queue: item %s is also on route %s", it.ID(), rid)
		}
	}

	if err := s.lockWrite(ctx); err != nil {
		return err
	}
	defer s.unlockWrite()

	s.drivers = drivers
	s.routes = routes
	s.pending = append([]*item.Item(nil), snap.Pending...)
	s.lastDriverID = lastDriverID
	s.lastRouteID = lastRouteID
	return nil
}

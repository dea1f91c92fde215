package route

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// MaxItems bounds the number of items on one route.
const MaxItems = 6

var (
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute constructor")
	ErrRouteNotAccepting     = errors.New("route is not pending")
	ErrRouteIsClosed         = errors.New("route is completed or cancelled")
	ErrRouteIsFull           = errors.New("route is full")
	ErrSecondLargeItem       = errors.New("route already carries a large item")
	ErrDriverCannotCarry     = errors.New("route driver cannot carry item")
	ErrWrongDriver           = errors.New("driver does not own route")
	ErrItemAlreadyOnRoute    = errors.New("item is already on route")
	ErrItemNotFound          = errors.New("item not found on route")
	ErrInvariantViolated     = errors.New("route invariant violated")
)

// Route groups up to MaxItems items for one driver in one time slot.
//
// The item slice keeps assignment order, which is the pickup/drop-off
// sequence. totalEarnings is a running sum kept in integer cents.
type Route struct {
	id            kernel.RouteID
	driverID      kernel.DriverID
	slot          Slot
	items         []*item.Item
	status        Status
	totalEarnings kernel.Money
	createdAt     time.Time
	acceptedAt    *time.Time
	completedAt   *time.Time
	cancelledAt   *time.Time
	guard         guard.ConstructorGuard
}

// NewRoute opens an empty pending route for drv.
func NewRoute(id kernel.RouteID, drv *driver.Driver, slot Slot, now time.Time) (*Route, error) {
	var idErr, slotErr error
	if err := id.Validate(); err != nil {
		idErr = err
	}
	if err := slot.Validate(); err != nil {
		slotErr = err
	}
	if err := errors.Join(idErr, drv.Validate(), slotErr); err != nil {
		return nil, err
	}

	return &Route{
		id:        id,
		driverID:  drv.ID(),
		slot:      slot,
		status:    Pending,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Timestamps groups the lifecycle times of a persisted route.
type Timestamps struct {
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// RestoreRoute rebuilds a route from a snapshot. Earnings are recomputed
// from the items and the structural invariants are checked.
func RestoreRoute(
	id kernel.RouteID,
	driverID kernel.DriverID,
	slot Slot,
	items []*item.Item,
	status Status,
	ts Timestamps,
) (*Route, error) {
	if err := errors.Join(id.Validate(), driverID.Validate(), slot.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}

	r := &Route{
		id:            id,
		driverID:      driverID,
		slot:          slot,
		items:         append([]*item.Item(nil), items...),
		status:        status,
		totalEarnings: TotalEarnings(items),
		createdAt:     ts.CreatedAt,
		acceptedAt:    copyTime(ts.AcceptedAt),
		completedAt:   copyTime(ts.CompletedAt),
		cancelledAt:   copyTime(ts.CancelledAt),
		guard:         guard.NewConstructorGuard(),
	}
	if err := r.CheckInvariants(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) ID() kernel.RouteID          { return r.id }
func (r *Route) DriverID() kernel.DriverID   { return r.driverID }
func (r *Route) Slot() Slot                  { return r.slot }
func (r *Route) Status() Status              { return r.status }
func (r *Route) TotalEarnings() kernel.Money { return r.totalEarnings }
func (r *Route) CreatedAt() time.Time        { return r.createdAt }
func (r *Route) AcceptedAt() *time.Time      { return copyTime(r.acceptedAt) }
func (r *Route) CompletedAt() *time.Time     { return copyTime(r.completedAt) }
func (r *Route) CancelledAt() *time.Time     { return copyTime(r.cancelledAt) }
func (r *Route) Len() int                    { return len(r.items) }
func (r *Route) IsActive() bool              { return r.status.IsActive() }

// Items returns the items in assignment order.
func (r *Route) Items() []*item.Item {
	out := make([]*item.Item, len(r.items))
	copy(out, r.items)
	return out
}

// HasLargeItem is derived from the items on every call.
func (r *Route) HasLargeItem() bool {
	return r.countLarge() > 0
}

// EstimatedMileage uses the flat per-item estimate.
func (r *Route) EstimatedMileage() float64 {
	return float64(EstimatedMilesPerItem * len(r.items))
}

// Contains reports whether the item is on the route.
func (r *Route) Contains(itemID kernel.UUID) bool {
	return r.indexOf(itemID) >= 0
}

// CanAdd returns nil when it may join the route driven by drv, or the first
// rule it breaks.
func (r *Route) CanAdd(it *item.Item, drv *driver.Driver) error {
	if err := errors.Join(it.Validate(), drv.Validate()); err != nil {
		return err
	}
	switch {
	case r.status != Pending:
		return fmt.Errorf("%w: route %s is %s", ErrRouteNotAccepting, r.id, r.status)
	case len(r.items) >= MaxItems:
		return fmt.Errorf("%w: route %s holds %d items", ErrRouteIsFull, r.id, len(r.items))
	case it.Size().IsLarge() && r.HasLargeItem():
		return fmt.Errorf("%w: route %s", ErrSecondLargeItem, r.id)
	case drv.ID() != r.driverID:
		return fmt.Errorf("%w: driver %s, route %s", ErrWrongDriver, drv.ID(), r.id)
	case !drv.CanCarry(it.Size()):
		return fmt.Errorf("%w: driver %s, size %s", ErrDriverCannotCarry, drv.ID(), it.Size())
	case r.Contains(it.ID()):
		return fmt.Errorf("%w: item %s", ErrItemAlreadyOnRoute, it.ID())
	}
	return nil
}

// AddItem appends it and adds its earnings.
func (r *Route) AddItem(it *item.Item, drv *driver.Driver) error {
	if err := r.CanAdd(it, drv); err != nil {
		return err
	}
	r.items = append(r.items, it)
	r.totalEarnings = r.totalEarnings.Add(Earnings(it))
	return nil
}

// RemoveItem takes the item off the route and subtracts its earnings. The
// order of the remaining items is kept.
func (r *Route) RemoveItem(itemID kernel.UUID) (*item.Item, error) {
	if r.status.IsTerminal() {
		return nil, fmt.Errorf("%w: route %s is %s", ErrRouteIsClosed, r.id, r.status)
	}
	idx := r.indexOf(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %s, route %s", ErrItemNotFound, itemID, r.id)
	}
	removed := r.items[idx]
	r.items = append(r.items[:idx:idx], r.items[idx+1:]...)
	r.totalEarnings = r.totalEarnings.Sub(Earnings(removed))
	return removed, nil
}

// DrainItems empties the route and returns its items in order.
func (r *Route) DrainItems() []*item.Item {
	drained := r.items
	r.items = nil
	r.totalEarnings = kernel.Zero()
	return drained
}

// TransitionTo moves the route through its lifecycle and stamps the time.
func (r *Route) TransitionTo(target Status, now time.Time) error {
	next, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}
	r.status = next
	switch next {
	case Accepted:
		r.acceptedAt = &now
	case Completed:
		r.completedAt = &now
	case Cancelled:
		r.cancelledAt = &now
	}
	return nil
}

// CheckInvariants verifies the structural rules that do not need the driver.
func (r *Route) CheckInvariants() error {
	if len(r.items) > MaxItems {
		return fmt.Errorf("%w: %d items on route %s", ErrInvariantViolated, len(r.items), r.id)
	}
	if n := r.countLarge(); n > 1 {
		return fmt.Errorf("%w: %d large items on route %s", ErrInvariantViolated, n, r.id)
	}
	if sum := TotalEarnings(r.items); !sum.IsEqual(r.totalEarnings) {
		return fmt.Errorf("%w: earnings %s, items sum to %s on route %s",
			ErrInvariantViolated, r.totalEarnings, sum, r.id)
	}
	return nil
}

// Clone returns an independent copy for staged modification. Items are
// immutable and shared.
func (r *Route) Clone() *Route {
	cp := *r
	cp.items = r.Items()
	cp.acceptedAt = copyTime(r.acceptedAt)
	cp.completedAt = copyTime(r.completedAt)
	cp.cancelledAt = copyTime(r.cancelledAt)
	return &cp
}

func (r *Route) indexOf(itemID kernel.UUID) int {
	for i, it := range r.items {
		if it.ID().IsEqual(itemID) {
			return i
		}
	}
	return -1
}

func (r *Route) countLarge() int {
	n := 0
	for _, it := range r.items {
		if it.Size().IsLarge() {
			n++
		}
	}
	return n
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

package driver

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrInvalidProfile wraps every registration failure.
	ErrInvalidProfile         = errors.New("invalid driver profile")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
	ErrDriverIsBusy           = errors.New("driver is already bound to a route")
	ErrDriverIsInactive       = errors.New("driver is inactive")
	ErrPreferencesRequired    = errs.NewValueIsRequiredError("item size preferences")
)

// Profile is what a driver supplies at registration.
type Profile struct {
	Contact         kernel.Contact
	VehicleType     VehicleType
	HasTrailer      bool
	SizePreferences map[item.Size]bool
}

// Driver is a registered driver and their capabilities.
//
// currentRouteID is a weak reference: the driver does not own the route.
// Only the assignment workflow binds and releases it.
type Driver struct {
	id             kernel.DriverID
	contact        kernel.Contact
	vehicle        VehicleType
	hasTrailer     bool
	preferences    map[item.Size]bool
	isActive       bool
	currentRouteID *kernel.RouteID
	guard          guard.ConstructorGuard
}

// NewDriver registers a driver: active, no current route.
// Any problem with the profile is reported as ErrInvalidProfile.
func NewDriver(id kernel.DriverID, p Profile) (*Driver, error) {
	d := &Driver{
		hasTrailer: p.HasTrailer,
		isActive:   true,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setContact(p.Contact),
		d.setVehicle(p.VehicleType),
		d.setPreferences(p.SizePreferences),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	return d, nil
}

// RestoreDriver rebuilds a driver from a persisted snapshot.
func RestoreDriver(id kernel.DriverID, p Profile, isActive bool, currentRouteID *kernel.RouteID) (*Driver, error) {
	d, err := NewDriver(id, p)
	if err != nil {
		return nil, err
	}
	d.isActive = isActive
	if currentRouteID != nil {
		if err = currentRouteID.Validate(); err != nil {
			return nil, err
		}
		rid := *currentRouteID
		d.currentRouteID = &rid
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.DriverID      { return d.id }
func (d *Driver) Contact() kernel.Contact  { return d.contact }
func (d *Driver) VehicleType() VehicleType { return d.vehicle }
func (d *Driver) HasTrailer() bool         { return d.hasTrailer }
func (d *Driver) IsActive() bool           { return d.isActive }

// CurrentRouteID returns nil while the driver is free.
func (d *Driver) CurrentRouteID() *kernel.RouteID {
	if d.currentRouteID == nil {
		return nil
	}
	id := *d.currentRouteID
	return &id
}

// SizePreferences returns a copy of the opted-in sizes.
func (d *Driver) SizePreferences() map[item.Size]bool {
	out := make(map[item.Size]bool, len(d.preferences))
	for k, v := range d.preferences {
		out[k] = v
	}
	return out
}

// Prefers reports whether the driver opted into size.
func (d *Driver) Prefers(size item.Size) bool {
	return d.preferences[size]
}

// CanCarry combines the size preference with the physical constraint for
// large items (trailer plus truck or SUV). It ignores activity and
// current route.
func (d *Driver) CanCarry(size item.Size) bool {
	if !d.Prefers(size) {
		return false
	}
	if size.IsLarge() {
		return d.hasTrailer && d.vehicle.CanTowLarge()
	}
	return true
}

// IsEligibleFor reports whether a new route for an item of this size may be
// opened with this driver.
func (d *Driver) IsEligibleFor(size item.Size) bool {
	return d.isActive && d.currentRouteID == nil && d.CanCarry(size)
}

// Deactivate stops the driver from opening new routes. A route already bound
// runs to completion and may still take items while pending.
func (d *Driver) Deactivate() {
	d.isActive = false
}

// BindRoute marks the driver busy with routeID.
func (d *Driver) BindRoute(routeID kernel.RouteID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if !d.isActive {
		return ErrDriverIsInactive
	}
	if d.currentRouteID != nil {
		return fmt.Errorf("%w: driver %s holds route %s", ErrDriverIsBusy, d.id, *d.currentRouteID)
	}
	d.currentRouteID = &routeID
	return nil
}

// ReleaseRoute frees the driver if routeID is the bound route. It reports
// whether anything changed.
func (d *Driver) ReleaseRoute(routeID kernel.RouteID) bool {
	if d.currentRouteID == nil || *d.currentRouteID != routeID {
		return false
	}
	d.currentRouteID = nil
	return true
}

// Clone returns an independent copy for staged modification.
func (d *Driver) Clone() *Driver {
	cp := *d
	cp.preferences = d.SizePreferences()
	cp.currentRouteID = d.CurrentRouteID()
	return &cp
}

func (d *Driver) setID(id kernel.DriverID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setContact(c kernel.Contact) error {
	if err := c.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver contact", err)
	}
	d.contact = c
	return nil
}

func (d *Driver) setVehicle(v VehicleType) error {
	if err := v.Validate(); err != nil {
		return err
	}
	d.vehicle = v
	return nil
}

func (d *Driver) setPreferences(prefs map[item.Size]bool) error {
	if prefs == nil {
		return ErrPreferencesRequired
	}
	out := make(map[item.Size]bool, len(prefs))
	for size, ok := range prefs {
		if err := size.Validate(); err != nil {
			return err
		}
		out[size] = ok
	}
	d.preferences = out
	return nil
}

package memory

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

type driverRepository struct {
	uow *UnitOfWork
}

func (r *driverRepository) NextID(_ context.Context) (kernel.DriverID, error) {
	if !r.uow.active {
		return 0, ErrNoActiveUnitOfWork
	}
	r.uow.lastDriverID++
	return r.uow.lastDriverID, nil
}

func (r *driverRepository) Add(_ context.Context, d *driver.Driver) error {
	if !r.uow.active {
		return ErrNoActiveUnitOfWork
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.driver(d.ID()); ok {
		return errs.NewValueIsInvalidErrorWithCause("driver", fmt.Errorf("id %s is taken", d.ID()))
	}
	r.uow.drivers[d.ID()] = d.Clone()
	return nil
}

func (r *driverRepository) Update(_ context.Context, d *driver.Driver) error {
	if !r.uow.active {
		return ErrNoActiveUnitOfWork
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.driver(d.ID()); !ok {
		return errs.NewObjectNotFoundError("driver", d.ID())
	}
	r.uow.drivers[d.ID()] = d.Clone()
	return nil
}

func (r *driverRepository) Get(_ context.Context, id kernel.DriverID) (*driver.Driver, error) {
	if !r.uow.active {
		return nil, ErrNoActiveUnitOfWork
	}
	d, ok := r.uow.driver(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return d.Clone(), nil
}

func (r *driverRepository) GetAll(_ context.Context) ([]*driver.Driver, error) {
	if !r.uow.active {
		return nil, ErrNoActiveUnitOfWork
	}
	out := make([]*driver.Driver, 0, len(r.uow.store.drivers)+len(r.uow.drivers))
	for id, d := range r.uow.store.drivers {
		if _, staged := r.uow.drivers[id]; !staged {
			out = append(out, d.Clone())
		}
	}
	for _, d := range r.uow.drivers {
		out = append(out, d.Clone())
	}
	return sortedDrivers(out), nil
}

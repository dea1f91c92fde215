package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverRoutesQueryIsNotConstructed = errors.New(
	"GetDriverRoutesQuery must be created via NewGetDriverRoutesQuery constructor",
)

// GetDriverRoutesQuery lists every route ever bound to a driver, in creation
// order, terminal ones included.
type GetDriverRoutesQuery struct {
	driverID kernel.DriverID
	guard    guard.ConstructorGuard
}

func NewGetDriverRoutesQuery(driverID kernel.DriverID) (GetDriverRoutesQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverRoutesQuery{}, err
	}
	return GetDriverRoutesQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverRoutesQueryIsNotConstructed)
}

func (q GetDriverRoutesQuery) DriverID() kernel.DriverID {
	return q.driverID
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeactivateDriverCommandIsNotConstructed = errors.New(
	"DeactivateDriverCommand must be created via NewDeactivateDriverCommand constructor",
)

// DeactivateDriverCommand stops new routes from reaching a driver. A route
// the driver already holds runs to completion.
type DeactivateDriverCommand struct {
	driverID kernel.DriverID
	guard    guard.ConstructorGuard
}

func NewDeactivateDriverCommand(driverID kernel.DriverID) (DeactivateDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return DeactivateDriverCommand{}, err
	}
	return DeactivateDriverCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeactivateDriverCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateDriverCommandIsNotConstructed)
}

func (c DeactivateDriverCommand) DriverID() kernel.DriverID {
	return c.driverID
}

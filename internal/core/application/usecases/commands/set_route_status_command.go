package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/guard"
)

var ErrSetRouteStatusCommandIsNotConstructed = errors.New(
	"SetRouteStatusCommand must be created via NewSetRouteStatusCommand constructor",
)

// SetRouteStatusCommand moves a route along its lifecycle on behalf of the
// driver app or dispatch.
type SetRouteStatusCommand struct {
	routeID kernel.RouteID
	status  route.Status
	guard   guard.ConstructorGuard
}

func NewSetRouteStatusCommand(routeID kernel.RouteID, status route.Status) (SetRouteStatusCommand, error) {
	if err := errors.Join(routeID.Validate(), status.Validate()); err != nil {
		return SetRouteStatusCommand{}, err
	}
	return SetRouteStatusCommand{routeID: routeID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c SetRouteStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetRouteStatusCommandIsNotConstructed)
}

func (c SetRouteStatusCommand) RouteID() kernel.RouteID { return c.routeID }
func (c SetRouteStatusCommand) Status() route.Status    { return c.status }

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveItemCommandIsNotConstructed = errors.New(
	"RemoveItemCommand must be created via NewRemoveItemCommand constructor",
)

// RemoveItemCommand takes an item off a route after the fact, for example
// when it turns out not to fit the vehicle. The reason reaches buyer and
// seller verbatim.
type RemoveItemCommand struct {
	routeID kernel.RouteID
	itemID  kernel.UUID
	reason  string
	guard   guard.ConstructorGuard
}

func NewRemoveItemCommand(routeID kernel.RouteID, itemID kernel.UUID, reason string) (RemoveItemCommand, error) {
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(routeID.Validate(), itemID.Validate(), reasonErr); err != nil {
		return RemoveItemCommand{}, err
	}

	return RemoveItemCommand{
		routeID: routeID,
		itemID:  itemID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemCommandIsNotConstructed)
}

func (c RemoveItemCommand) RouteID() kernel.RouteID { return c.routeID }
func (c RemoveItemCommand) ItemID() kernel.UUID     { return c.itemID }
func (c RemoveItemCommand) Reason() string          { return c.reason }

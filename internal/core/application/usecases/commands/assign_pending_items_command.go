package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignPendingItemsCommandIsNotConstructed = errors.New(
	"AssignPendingItemsCommand must be created via NewAssignPendingItemsCommand constructor",
)

// AssignPendingItemsCommand rescans the whole pending queue. It is issued by
// the periodic sweep; registration, submission and driver release rescan on
// their own.
type AssignPendingItemsCommand struct {
	guard guard.ConstructorGuard
}

func NewAssignPendingItemsCommand() AssignPendingItemsCommand {
	return AssignPendingItemsCommand{guard: guard.NewConstructorGuard()}
}

func (c AssignPendingItemsCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingItemsCommandIsNotConstructed)
}

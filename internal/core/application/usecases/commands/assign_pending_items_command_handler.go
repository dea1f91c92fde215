package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

type AssignPendingItemsCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewAssignPendingItemsCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock ports.Clock,
) AssignPendingItemsCommandHandler {
	return AssignPendingItemsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the items placed by this pass; an empty result is not an
// error.
func (h AssignPendingItemsCommandHandler) Handle(
	ctx context.Context,
	cmd AssignPendingItemsCommand,
) ([]Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignments, err := placePending(ctx, uow, h.clock)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assignments, nil
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SubmitItemCommandHandler queues an item and runs first-fit placement over
// the whole queue.
//
// Example:
//
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoEligibleDriver):
//	    // accepted, waiting in the queue
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("item on route %s", res.RouteID)
//	}
type SubmitItemCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewSubmitItemCommandHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) SubmitItemCommandHandler {
	return SubmitItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the item's assignment. When the item could not be placed
// the queued state is still committed and services.ErrNoEligibleDriver is
// returned as an advisory. Submitting a queued item again retries it without
// queuing it twice; submitting an item that is on an active route fails with
// ErrItemAlreadyAssigned.
func (h SubmitItemCommandHandler) Handle(ctx context.Context, cmd SubmitItemCommand) (Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return Assignment{}, err
	}
	it := cmd.Item()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RouteRepository().FindActiveByItem(ctx, it.ID())
	if err == nil {
		return Assignment{}, fmt.Errorf("%w: item %s, route %s", ErrItemAlreadyAssigned, it.ID(), r.ID())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return Assignment{}, err
	}

	queue := uow.PendingQueue()
	queued, err := queue.Contains(ctx, it.ID())
	if err != nil {
		return Assignment{}, err
	}
	if !queued {
		if err = queue.Enqueue(ctx, it); err != nil {
			return Assignment{}, err
		}
	}

	assignments, err := placePending(ctx, uow, h.clock)
	if err != nil {
		return Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Assignment{}, err
	}

	a, ok := findAssignment(assignments, it.ID())
	if !ok {
		return Assignment{}, fmt.Errorf("%w: item %s stays queued", services.ErrNoEligibleDriver, it.ID())
	}
	return a, nil
}

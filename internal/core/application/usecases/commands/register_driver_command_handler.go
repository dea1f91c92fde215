package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// RegisterDriverResult carries the new driver id and any queued items the
// new driver made placeable.
type RegisterDriverResult struct {
	DriverID    kernel.DriverID
	Assignments []Assignment
}

// RegisterDriverCommandHandler stores a new active driver and rescans the
// pending queue in the same unit of work.
type RegisterDriverCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewRegisterDriverCommandHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (RegisterDriverResult, error) {
	if err := cmd.Validate(); err != nil {
		return RegisterDriverResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RegisterDriverResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	id, err := driverRepo.NextID(ctx)
	if err != nil {
		return RegisterDriverResult{}, err
	}

	d, err := driver.NewDriver(id, cmd.Profile())
	if err != nil {
		return RegisterDriverResult{}, err
	}
	if err = driverRepo.Add(ctx, d); err != nil {
		return RegisterDriverResult{}, err
	}

	assignments, err := placePending(ctx, uow, h.clock)
	if err != nil {
		return RegisterDriverResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RegisterDriverResult{}, err
	}

	return RegisterDriverResult{DriverID: id, Assignments: assignments}, nil
}

package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type DeactivateDriverCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewDeactivateDriverCommandHandler(uowFactory ports.UnitOfWorkFactory) DeactivateDriverCommandHandler {
	return DeactivateDriverCommandHandler{uowFactory: uowFactory}
}

// Handle returns ErrDriverNotFound for unknown drivers. Deactivating an
// inactive driver succeeds.
func (h DeactivateDriverCommandHandler) Handle(ctx context.Context, cmd DeactivateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDriverNotFound
	}
	if err != nil {
		return err
	}

	d.Deactivate()
	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

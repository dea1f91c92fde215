package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RemoveItemCommandHandler removes an item from its route, returns it to the
// tail of the pending queue and tells buyer and seller.
//
// The removal does not trigger a rescan; the item is picked up by the next
// registration, submission or sweep.
type RemoveItemCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewRemoveItemCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "remove-item"),
	}
}

// Handle returns true once the removal is committed. ErrRouteNotFound and
// route.ErrItemNotFound leave everything untouched. Notification failures are
// logged and do not affect the result.
func (h RemoveItemCommandHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	removed, err := h.remove(ctx, cmd)
	if err != nil {
		return false, err
	}

	h.notify(ctx, cmd, removed)
	return true, nil
}

func (h RemoveItemCommandHandler) remove(ctx context.Context, cmd RemoveItemCommand) (*item.Item, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.Get(ctx, cmd.RouteID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}

	removed, err := r.RemoveItem(cmd.ItemID())
	if err != nil {
		return nil, err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	if err = uow.PendingQueue().Enqueue(ctx, removed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return removed, nil
}

func (h RemoveItemCommandHandler) notify(ctx context.Context, cmd RemoveItemCommand, it *item.Item) {
	for _, n := range []struct {
		kind    ports.NotificationKind
		contact kernel.Contact
	}{
		{ports.BuyerRemoval, it.Buyer()},
		{ports.SellerRemoval, it.Seller()},
	} {
		err := h.notifier.Notify(ctx, ports.Notification{
			Kind:     n.kind,
			Contact:  n.contact,
			ItemID:   it.ID(),
			ItemName: it.Name(),
			RouteID:  cmd.RouteID(),
			Reason:   cmd.Reason(),
		})
		if err != nil {
			h.logger.WarnContext(ctx, "removal notification failed",
				"kind", n.kind.String(),
				"route_id", cmd.RouteID().String(),
				"item_id", it.ID().String(),
				"error", err)
		}
	}
}

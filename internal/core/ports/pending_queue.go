package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
)

var ErrItemAlreadyQueued = errors.New("item is already queued")

// PendingQueue is the FIFO of items that are not on an active route.
type PendingQueue interface {
	// Enqueue appends it at the tail. Returns ErrItemAlreadyQueued if the
	// item is queued already.
	Enqueue(ctx context.Context, it *item.Item) error

	// Remove takes the item out wherever it sits. Returns
	// errs.ErrObjectNotFound if it is not queued.
	Remove(ctx context.Context, itemID kernel.UUID) error

	Contains(ctx context.Context, itemID kernel.UUID) (bool, error)

	// List returns the queue head first.
	List(ctx context.Context) ([]*item.Item, error)
}

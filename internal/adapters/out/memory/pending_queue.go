package memory

import (
	"context"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type pendingQueue struct {
	uow *UnitOfWork
}

func (q *pendingQueue) Enqueue(_ context.Context, it *item.Item) error {
	if !q.uow.active {
		return ErrNoActiveUnitOfWork
	}
	if err := it.Validate(); err != nil {
		return err
	}
	if q.index(it.ID()) >= 0 {
		return fmt.Errorf("%w: %s", ports.ErrItemAlreadyQueued, it.ID())
	}
	q.uow.stageQueue()
	q.uow.pending = append(q.uow.pending, it)
	return nil
}

func (q *pendingQueue) Remove(_ context.Context, itemID kernel.UUID) error {
	if !q.uow.active {
		return ErrNoActiveUnitOfWork
	}
	idx := q.index(itemID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("item", itemID)
	}
	q.uow.stageQueue()
	q.uow.pending = slices.Delete(q.uow.pending, idx, idx+1)
	return nil
}

func (q *pendingQueue) Contains(_ context.Context, itemID kernel.UUID) (bool, error) {
	if !q.uow.active {
		return false, ErrNoActiveUnitOfWork
	}
	return q.index(itemID) >= 0, nil
}

func (q *pendingQueue) List(_ context.Context) ([]*item.Item, error) {
	if !q.uow.active {
		return nil, ErrNoActiveUnitOfWork
	}
	return slices.Clone(q.uow.queue()), nil
}

func (q *pendingQueue) index(itemID kernel.UUID) int {
	return slices.IndexFunc(q.uow.queue(), func(it *item.Item) bool {
		return it.ID().IsEqual(itemID)
	})
}

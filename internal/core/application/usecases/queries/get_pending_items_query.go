package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetPendingItemsQueryIsNotConstructed = errors.New(
	"GetPendingItemsQuery must be created via NewGetPendingItemsQuery constructor",
)

type GetPendingItemsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingItemsQuery() GetPendingItemsQuery {
	return GetPendingItemsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingItemsQueryIsNotConstructed)
}

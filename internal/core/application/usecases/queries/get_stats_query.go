package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetStatsQueryIsNotConstructed = errors.New(
	"GetStatsQuery must be created via NewGetStatsQuery constructor",
)

type GetStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatsQuery() GetStatsQuery {
	return GetStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatsQueryIsNotConstructed)
}

package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/pkg/guard"
)

var ErrFindEligibleDriversQueryIsNotConstructed = errors.New(
	"FindEligibleDriversQuery must be created via NewFindEligibleDriversQuery constructor",
)

// FindEligibleDriversQuery asks which drivers could open a new route for an
// item of the given size right now.
type FindEligibleDriversQuery struct {
	size  item.Size
	guard guard.ConstructorGuard
}

func NewFindEligibleDriversQuery(size item.Size) (FindEligibleDriversQuery, error) {
	if err := size.Validate(); err != nil {
		return FindEligibleDriversQuery{}, err
	}
	return FindEligibleDriversQuery{size: size, guard: guard.NewConstructorGuard()}, nil
}

func (q FindEligibleDriversQuery) Validate() error {
	return q.guard.Validate(ErrFindEligibleDriversQueryIsNotConstructed)
}

func (q FindEligibleDriversQuery) Size() item.Size {
	return q.size
}

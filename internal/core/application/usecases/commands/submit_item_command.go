package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/pkg/guard"
)

var ErrSubmitItemCommandIsNotConstructed = errors.New(
	"SubmitItemCommand must be created via NewSubmitItemCommand constructor",
)

// SubmitItemCommand hands a delivery item to the assignment engine.
type SubmitItemCommand struct {
	item  *item.Item
	guard guard.ConstructorGuard
}

// NewSubmitItemCommand builds the item; invalid params fail here.
func NewSubmitItemCommand(p item.Params) (SubmitItemCommand, error) {
	it, err := item.NewItem(p)
	if err != nil {
		return SubmitItemCommand{}, err
	}
	return SubmitItemCommand{item: it, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitItemCommand) Validate() error {
	return c.guard.Validate(ErrSubmitItemCommandIsNotConstructed)
}

func (c SubmitItemCommand) Item() *item.Item {
	return c.item
}

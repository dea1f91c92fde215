package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand adds a driver to the registry. The profile is
// checked when the driver is built, so a malformed profile fails with
// driver.ErrInvalidProfile before anything is stored.
type RegisterDriverCommand struct {
	profile driver.Profile
	guard   guard.ConstructorGuard
}

func NewRegisterDriverCommand(profile driver.Profile) RegisterDriverCommand {
	return RegisterDriverCommand{
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) Profile() driver.Profile {
	return c.profile
}

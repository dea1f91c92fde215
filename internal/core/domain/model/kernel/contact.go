package kernel

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")
	ErrContactNameIsRequired   = errs.NewValueIsRequiredError("contact name")
	ErrContactChannelRequired  = errs.NewValueIsRequiredError("contact phone or email")
)

// Contact describes how to reach a person. At least one of phone and email is set.
type Contact struct {
	name  string
	phone string
	email string
	guard guard.ConstructorGuard
}

func NewContact(name, phone, email string) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	var nameErr, channelErr error
	if name == "" {
		nameErr = ErrContactNameIsRequired
	}
	if phone == "" && email == "" {
		channelErr = ErrContactChannelRequired
	}
	if err := errors.Join(nameErr, channelErr); err != nil {
		return Contact{}, err
	}

	return Contact{
		name:  name,
		phone: phone,
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }
func (c Contact) Email() string { return c.email }

func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

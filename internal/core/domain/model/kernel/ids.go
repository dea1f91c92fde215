package kernel

import (
	"strconv"

	"dispatch/internal/pkg/errs"
)

// DriverID and RouteID are allocated sequentially by the scheduling store,
// starting at 1. A lower identifier means an earlier registration, which
// gives tie-breaks a stable meaning.
type (
	DriverID uint64
	RouteID  uint64
)

var (
	ErrDriverIDIsRequired = errs.NewValueIsRequiredError("driver id")
	ErrRouteIDIsRequired  = errs.NewValueIsRequiredError("route id")
)

func (id DriverID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id RouteID) String() string  { return strconv.FormatUint(uint64(id), 10) }

func (id DriverID) Validate() error {
	if id == 0 {
		return ErrDriverIDIsRequired
	}
	return nil
}

func (id RouteID) Validate() error {
	if id == 0 {
		return ErrRouteIDIsRequired
	}
	return nil
}

// ParseDriverID parses the decimal form produced by String.
func ParseDriverID(s string) (DriverID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("driver id", err)
	}
	return DriverID(n), nil
}

// ParseRouteID parses the decimal form produced by String.
func ParseRouteID(s string) (RouteID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("route id", err)
	}
	return RouteID(n), nil
}

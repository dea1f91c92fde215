package route

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned for any move the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid route status transition")

// Status is the lifecycle state of a route.
//
//	Pending ──> Accepted ──> InProgress ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──────> Cancelled
//
// Pending is initial; Completed and Cancelled are terminal.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Accepted
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Pending:       "pending",
		Accepted:      "accepted",
		InProgress:    "in_progress",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

// getTransitions lists the allowed targets for every non-terminal status.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Accepted, Cancelled},
		Accepted:   {InProgress, Cancelled},
		InProgress: {Completed, Cancelled},
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Accepted, InProgress, Completed, Cancelled}
}

func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses() {
		if st.String() == needle {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("route status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("route status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports whether the route still holds its driver and items.
func (s Status) IsActive() bool {
	return s == Pending || s == Accepted || s == InProgress
}

// TransitionTo returns target if the lifecycle allows s -> target.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return UnknownStatus, err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return target, nil
		}
	}
	return UnknownStatus, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
}

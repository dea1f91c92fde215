package clock

import (
	"time"

	"dispatch/internal/core/ports"
)

var _ ports.Clock = System{}

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

package ports

import "time"

// Clock is injected wherever the current time matters.
type Clock interface {
	Now() time.Time
}

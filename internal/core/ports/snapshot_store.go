package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/route"
)

// Snapshot is a consistent copy of the whole scheduling state.
type Snapshot struct {
	TakenAt time.Time
	Drivers []*driver.Driver
	Routes  []*route.Route
	Pending []*item.Item
}

// IsEmpty reports whether there is nothing to restore.
func (s Snapshot) IsEmpty() bool {
	return len(s.Drivers) == 0 && len(s.Routes) == 0 && len(s.Pending) == 0
}

// SnapshotStore persists snapshots of the in-memory state.
type SnapshotStore interface {
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap Snapshot) error

	// Load returns the stored snapshot, or an empty one if none was saved.
	Load(ctx context.Context) (Snapshot, error)
}

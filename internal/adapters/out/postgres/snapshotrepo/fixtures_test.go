package snapshotrepo_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSnapshot holds a busy truck with a pending route, an inactive car
// whose route was cancelled, and two queued items.
func fixtureSnapshot(t *testing.T) ports.Snapshot {
	t.Helper()
	now := testutil.Now

	truck := testutil.Driver(t, 1, driver.Truck, true)
	car := testutil.Driver(t, 2, driver.Car, false, item.Small, item.Medium)

	open, err := route.NewRoute(1, truck, route.SlotFor(now), now)
	require.NoError(t, err)
	require.NoError(t, truck.BindRoute(open.ID()))
	require.NoError(t, open.AddItem(testutil.Item(t, item.Large), truck))
	require.NoError(t, open.AddItem(testutil.Item(t, item.Small), truck))
	require.NoError(t, open.AddItem(testutil.Item(t, item.Medium), truck))

	cancelled, err := route.NewRoute(2, car, route.SlotFor(now), now.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, cancelled.TransitionTo(route.Cancelled, now))
	car.Deactivate()

	fragile := testutil.ItemParams(t, item.Medium)
	fragile.IsFragile = true
	fragileItem, err := item.NewItem(fragile)
	require.NoError(t, err)

	return ports.Snapshot{
		TakenAt: now,
		Drivers: []*driver.Driver{truck, car},
		Routes:  []*route.Route{open, cancelled},
		Pending: []*item.Item{testutil.Item(t, item.Small), fragileItem},
	}
}

func assertSnapshotsEqual(t *testing.T, want, got ports.Snapshot) {
	t.Helper()
	assert.True(t, want.TakenAt.Equal(got.TakenAt), "taken at: want %s, got %s", want.TakenAt, got.TakenAt)

	require.Len(t, got.Drivers, len(want.Drivers))
	for i, w := range want.Drivers {
		g := got.Drivers[i]
		assert.Equal(t, w.ID(), g.ID())
		assert.Equal(t, w.Contact(), g.Contact())
		assert.Equal(t, w.VehicleType(), g.VehicleType())
		assert.Equal(t, w.HasTrailer(), g.HasTrailer())
		assert.Equal(t, w.IsActive(), g.IsActive())
		assert.Equal(t, w.CurrentRouteID(), g.CurrentRouteID())
		for _, size := range item.Sizes() {
			assert.Equal(t, w.Prefers(size), g.Prefers(size), "driver %s prefers %s", w.ID(), size)
		}
	}

	require.Len(t, got.Routes, len(want.Routes))
	for i, w := range want.Routes {
		g := got.Routes[i]
		assert.Equal(t, w.ID(), g.ID())
		assert.Equal(t, w.DriverID(), g.DriverID())
		assert.True(t, w.Slot().IsEqual(g.Slot()), "slot: want %s, got %s", w.Slot(), g.Slot())
		assert.Equal(t, w.Status(), g.Status())
		assert.Equal(t, w.TotalEarnings(), g.TotalEarnings())
		assert.True(t, w.CreatedAt().Equal(g.CreatedAt()))
		assertTimesEqual(t, w.CancelledAt(), g.CancelledAt())
		assertTimesEqual(t, w.AcceptedAt(), g.AcceptedAt())
		assertItemsEqual(t, w.Items(), g.Items())
	}

	assertItemsEqual(t, want.Pending, got.Pending)
}

func assertItemsEqual(t *testing.T, want, got []*item.Item) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		g := got[i]
		assert.True(t, w.ID().IsEqual(g.ID()), "item %d out of order", i)
		assert.True(t, w.OrderID().IsEqual(g.OrderID()))
		assert.Equal(t, w.Buyer(), g.Buyer())
		assert.Equal(t, w.Seller(), g.Seller())
		assert.Equal(t, w.Name(), g.Name())
		assert.Equal(t, w.Size(), g.Size())
		assert.Equal(t, w.PickupAddress(), g.PickupAddress())
		assert.Equal(t, w.DeliveryAddress(), g.DeliveryAddress())
		assert.InDelta(t, w.EstimatedWeight(), g.EstimatedWeight(), 1e-9)
		assert.Equal(t, w.IsFragile(), g.IsFragile())
		assert.Equal(t, w.Price(), g.Price())
		assert.Equal(t, w.DeliveryFee(), g.DeliveryFee())
	}
}

func assertTimesEqual(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, got)
}

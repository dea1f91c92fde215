package route_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoute(t *testing.T, drv *driver.Driver) *route.Route {
	t.Helper()
	r, err := route.NewRoute(1, drv, route.SlotFor(testutil.Now), testutil.Now)
	require.NoError(t, err)
	return r
}

func TestNewRoute(t *testing.T) {
	t.Run("should open an empty pending route", func(t *testing.T) {
		drv := testutil.Driver(t, 3, driver.Van, false)

		r := newRoute(t, drv)

		require.NoError(t, r.Validate())
		assert.Equal(t, kernel.RouteID(1), r.ID())
		assert.Equal(t, kernel.DriverID(3), r.DriverID())
		assert.Equal(t, route.Pending, r.Status())
		assert.Equal(t, route.Midday, r.Slot().Window())
		assert.Zero(t, r.Len())
		assert.True(t, r.TotalEarnings().IsEqual(kernel.Zero()))
		assert.False(t, r.HasLargeItem())
		assert.Equal(t, testutil.Now, r.CreatedAt())
		assert.Nil(t, r.AcceptedAt())
	})

	t.Run("should reject zero id and unconstructed slot", func(t *testing.T) {
		drv := testutil.Driver(t, 3, driver.Van, false)

		r, err := route.NewRoute(0, drv, route.Slot{}, testutil.Now)

		assert.Nil(t, r)
		require.ErrorIs(t, err, kernel.ErrRouteIDIsRequired)
		require.ErrorIs(t, err, route.ErrSlotIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var r *route.Route
		require.ErrorIs(t, r.Validate(), route.ErrRouteIsNotConstructed)
		require.ErrorIs(t, (&route.Route{}).Validate(), route.ErrRouteIsNotConstructed)
	})
}

func TestRoute_AddItem(t *testing.T) {
	t.Run("large plus two small earns 46.00", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Truck, true)
		r := newRoute(t, drv)

		require.NoError(t, r.AddItem(testutil.Item(t, item.Large), drv))
		require.NoError(t, r.AddItem(testutil.Item(t, item.Small), drv))
		require.NoError(t, r.AddItem(testutil.Item(t, item.Small), drv))

		assert.Equal(t, "46.00", r.TotalEarnings().String())
		assert.True(t, r.HasLargeItem())
		assert.InDelta(t, 6.0, r.EstimatedMileage(), 0.0001)
		require.NoError(t, r.CheckInvariants())
	})

	t.Run("seventh item is rejected", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		r := newRoute(t, drv)
		for range route.MaxItems {
			require.NoError(t, r.AddItem(testutil.Item(t, item.Small), drv))
		}

		err := r.AddItem(testutil.Item(t, item.Small), drv)

		require.ErrorIs(t, err, route.ErrRouteIsFull)
		assert.Equal(t, route.MaxItems, r.Len())
		assert.Equal(t, "42.00", r.TotalEarnings().String())
	})

	t.Run("second large item is rejected", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.SUV, true)
		r := newRoute(t, drv)
		require.NoError(t, r.AddItem(testutil.Item(t, item.Large), drv))

		err := r.AddItem(testutil.Item(t, item.Large), drv)

		require.ErrorIs(t, err, route.ErrSecondLargeItem)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("item the driver cannot carry is rejected", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Car, false, item.Small)
		r := newRoute(t, drv)

		require.ErrorIs(t, r.AddItem(testutil.Item(t, item.Medium), drv), route.ErrDriverCannotCarry)
		require.ErrorIs(t, r.AddItem(testutil.Item(t, item.Large), drv), route.ErrDriverCannotCarry)
	})

	t.Run("other driver is rejected", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		other := testutil.Driver(t, 2, driver.Van, false)
		r := newRoute(t, drv)

		require.ErrorIs(t, r.AddItem(testutil.Item(t, item.Small), other), route.ErrWrongDriver)
	})

	t.Run("same item twice is rejected", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		r := newRoute(t, drv)
		it := testutil.Item(t, item.Small)
		require.NoError(t, r.AddItem(it, drv))

		require.ErrorIs(t, r.AddItem(it, drv), route.ErrItemAlreadyOnRoute)
	})

	t.Run("accepted route takes no items", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		r := newRoute(t, drv)
		require.NoError(t, r.TransitionTo(route.Accepted, testutil.Now))

		require.ErrorIs(t, r.AddItem(testutil.Item(t, item.Small), drv), route.ErrRouteNotAccepting)
	})
}

func TestRoute_RemoveItem(t *testing.T) {
	t.Run("removing the large item clears the flag and keeps order", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Truck, true)
		r := newRoute(t, drv)
		first := testutil.Item(t, item.Small)
		large := testutil.Item(t, item.Large)
		last := testutil.Item(t, item.Medium)
		for _, it := range []*item.Item{first, large, last} {
			require.NoError(t, r.AddItem(it, drv))
		}

		removed, err := r.RemoveItem(large.ID())

		require.NoError(t, err)
		assert.True(t, removed.IsEqual(large))
		assert.False(t, r.HasLargeItem())
		assert.Equal(t, "14.00", r.TotalEarnings().String())
		items := r.Items()
		require.Len(t, items, 2)
		assert.True(t, items[0].IsEqual(first))
		assert.True(t, items[1].IsEqual(last))
		require.NoError(t, r.CheckInvariants())
	})

	t.Run("unknown item", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		r := newRoute(t, drv)

		_, err := r.RemoveItem(kernel.NewUUID())

		require.ErrorIs(t, err, route.ErrItemNotFound)
	})

	t.Run("closed route keeps its items", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		r := newRoute(t, drv)
		it := testutil.Item(t, item.Small)
		require.NoError(t, r.AddItem(it, drv))
		require.NoError(t, r.TransitionTo(route.Accepted, testutil.Now))
		require.NoError(t, r.TransitionTo(route.InProgress, testutil.Now))
		require.NoError(t, r.TransitionTo(route.Completed, testutil.Now))

		_, err := r.RemoveItem(it.ID())

		require.ErrorIs(t, err, route.ErrRouteIsClosed)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("last item leaves zero earnings", func(t *testing.T) {
		drv := testutil.Driver(t, 1, driver.Van, false)
		r := newRoute(t, drv)
		it := testutil.Item(t, item.Small)
		require.NoError(t, r.AddItem(it, drv))

		_, err := r.RemoveItem(it.ID())

		require.NoError(t, err)
		assert.Zero(t, r.Len())
		assert.True(t, r.TotalEarnings().IsEqual(kernel.Zero()))
	})
}

func TestRoute_DrainItems(t *testing.T) {
	drv := testutil.Driver(t, 1, driver.Van, false)
	r := newRoute(t, drv)
	a, b := testutil.Item(t, item.Small), testutil.Item(t, item.Medium)
	require.NoError(t, r.AddItem(a, drv))
	require.NoError(t, r.AddItem(b, drv))

	drained := r.DrainItems()

	require.Len(t, drained, 2)
	assert.True(t, drained[0].IsEqual(a))
	assert.True(t, drained[1].IsEqual(b))
	assert.Zero(t, r.Len())
	assert.True(t, r.TotalEarnings().IsEqual(kernel.Zero()))
}

func TestRoute_TransitionTo(t *testing.T) {
	drv := testutil.Driver(t, 1, driver.Van, false)
	r := newRoute(t, drv)
	later := testutil.Now.Add(time.Hour)

	require.ErrorIs(t, r.TransitionTo(route.Completed, later), route.ErrInvalidTransition)
	require.NoError(t, r.TransitionTo(route.Accepted, later))
	require.NoError(t, r.TransitionTo(route.InProgress, later))
	require.NoError(t, r.TransitionTo(route.Completed, later.Add(time.Hour)))

	assert.Equal(t, route.Completed, r.Status())
	assert.Equal(t, later, *r.AcceptedAt())
	assert.Equal(t, later.Add(time.Hour), *r.CompletedAt())
	assert.Nil(t, r.CancelledAt())
	require.ErrorIs(t, r.TransitionTo(route.Cancelled, later), route.ErrInvalidTransition)
}

func TestRoute_Clone(t *testing.T) {
	drv := testutil.Driver(t, 1, driver.Van, false)
	r := newRoute(t, drv)
	require.NoError(t, r.AddItem(testutil.Item(t, item.Small), drv))

	cp := r.Clone()
	require.NoError(t, cp.AddItem(testutil.Item(t, item.Small), drv))
	require.NoError(t, cp.TransitionTo(route.Cancelled, testutil.Now))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, route.Pending, r.Status())
	assert.Equal(t, 2, cp.Len())
}

func TestRestoreRoute(t *testing.T) {
	slot := route.SlotFor(testutil.Now)

	t.Run("should recompute earnings", func(t *testing.T) {
		items := []*item.Item{testutil.Item(t, item.Large), testutil.Item(t, item.Small)}

		r, err := route.RestoreRoute(7, 2, slot, items, route.Accepted, route.Timestamps{CreatedAt: testutil.Now})

		require.NoError(t, err)
		assert.Equal(t, "39.00", r.TotalEarnings().String())
		assert.Equal(t, route.Accepted, r.Status())
	})

	t.Run("should reject two large items", func(t *testing.T) {
		items := []*item.Item{testutil.Item(t, item.Large), testutil.Item(t, item.Large)}

		_, err := route.RestoreRoute(7, 2, slot, items, route.Pending, route.Timestamps{CreatedAt: testutil.Now})

		require.ErrorIs(t, err, route.ErrInvariantViolated)
	})
}

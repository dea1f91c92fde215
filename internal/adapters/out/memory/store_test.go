package memory_test

import (
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed commits two drivers, one route with an item, and one queued item.
func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := t.Context()
	uow := begin(t, memory.NewUnitOfWorkFactory(store))
	a := addDriver(t, uow, driver.Truck, true)
	addDriver(t, uow, driver.Car, false)

	r, err := route.NewRoute(1, a, route.SlotFor(testutil.Now), testutil.Now)
	require.NoError(t, err)
	require.NoError(t, a.BindRoute(r.ID()))
	require.NoError(t, r.AddItem(testutil.Item(t, item.Large), a))
	require.NoError(t, uow.RouteRepository().Add(ctx, r))
	require.NoError(t, uow.DriverRepository().Update(ctx, a))
	_, err = uow.RouteRepository().NextID(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.PendingQueue().Enqueue(ctx, testutil.Item(t, item.Small)))
	require.NoError(t, uow.Commit(ctx))
}

func TestStore_Read(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	err := store.Read(t.Context(), func(v ports.StateView) error {
		assert.Len(t, v.Drivers(), 2)
		assert.Len(t, v.Routes(), 1)
		assert.Len(t, v.RoutesByDriver(1), 1)
		assert.Empty(t, v.RoutesByDriver(2))
		assert.Len(t, v.Pending(), 1)

		r, err := v.Route(1)
		require.NoError(t, err)
		assert.Equal(t, "32.00", r.TotalEarnings().String())

		_, err = v.Driver(7)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		_, err = v.Route(7)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		return nil
	})

	require.NoError(t, err)
}

func TestStore_SnapshotRestore(t *testing.T) {
	ctx := t.Context()
	src := memory.NewStore()
	seed(t, src)

	snap, err := src.Snapshot(ctx, testutil.Now)
	require.NoError(t, err)
	assert.Equal(t, testutil.Now, snap.TakenAt)
	assert.Len(t, snap.Drivers, 2)
	assert.Len(t, snap.Routes, 1)
	assert.Len(t, snap.Pending, 1)

	dst := memory.NewStore()
	require.NoError(t, dst.Restore(ctx, snap))

	t.Run("state is the same", func(t *testing.T) {
		again, err := dst.Snapshot(ctx, testutil.Now)
		require.NoError(t, err)
		assert.Len(t, again.Drivers, 2)
		require.Len(t, again.Routes, 1)
		assert.True(t, again.Routes[0].TotalEarnings().IsEqual(snap.Routes[0].TotalEarnings()))
		assert.True(t, again.Pending[0].IsEqual(snap.Pending[0]))
	})

	t.Run("id allocation continues after the restored ids", func(t *testing.T) {
		uow := begin(t, memory.NewUnitOfWorkFactory(dst))
		defer func() { _ = uow.Rollback(ctx) }()

		did, err := uow.DriverRepository().NextID(ctx)
		require.NoError(t, err)
		rid, err := uow.RouteRepository().NextID(ctx)
		require.NoError(t, err)

		assert.Equal(t, kernel.DriverID(3), did)
		assert.Equal(t, kernel.RouteID(2), rid)
	})

	t.Run("snapshot with an item both queued and routed is refused", func(t *testing.T) {
		bad := snap
		bad.Pending = append(bad.Pending, snap.Routes[0].Items()[0])

		require.Error(t, memory.NewStore().Restore(ctx, bad))
	})

	t.Run("snapshot is detached from the store", func(t *testing.T) {
		snap.Drivers[0].Deactivate()

		err := src.Read(ctx, func(v ports.StateView) error {
			d, err := v.Driver(snap.Drivers[0].ID())
			require.NoError(t, err)
			assert.True(t, d.IsActive())
			return nil
		})
		require.NoError(t, err)
	})
}

package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDriverCommandHandler(t *testing.T) {
	e := newEngine(t)

	t.Run("ids are sequential", func(t *testing.T) {
		assert.Equal(t, kernel.DriverID(1), e.registerDriver(t, driver.Car, false))
		assert.Equal(t, kernel.DriverID(2), e.registerDriver(t, driver.Bicycle, false, item.Small))
	})

	t.Run("invalid profile is not stored", func(t *testing.T) {
		profile := testutil.Profile(t, driver.UnknownVehicle, false)

		_, err := e.register.Handle(t.Context(), commands.NewRegisterDriverCommand(profile))

		require.ErrorIs(t, err, driver.ErrInvalidProfile)
		e.view(t, func(v ports.StateView) { assert.Len(t, v.Drivers(), 2) })
		assert.Equal(t, kernel.DriverID(3), e.registerDriver(t, driver.Van, false))
	})

	t.Run("missing preferences are an invalid profile", func(t *testing.T) {
		profile := testutil.Profile(t, driver.Van, false)
		profile.SizePreferences = nil

		_, err := e.register.Handle(t.Context(), commands.NewRegisterDriverCommand(profile))

		require.ErrorIs(t, err, driver.ErrInvalidProfile)
	})

	t.Run("zero command is rejected", func(t *testing.T) {
		_, err := e.register.Handle(t.Context(), commands.RegisterDriverCommand{})
		require.ErrorIs(t, err, commands.ErrRegisterDriverCommandIsNotConstructed)
	})
}

func TestDeactivateDriverCommandHandler(t *testing.T) {
	e := newEngine(t)
	busy := e.registerDriver(t, driver.Van, false)
	placed := e.mustSubmit(t, item.Small)

	cmd, err := commands.NewDeactivateDriverCommand(busy)
	require.NoError(t, err)
	require.NoError(t, e.deactivate.Handle(t.Context(), cmd))

	t.Run("route in flight is kept", func(t *testing.T) {
		e.view(t, func(v ports.StateView) {
			d, err := v.Driver(busy)
			require.NoError(t, err)
			assert.False(t, d.IsActive())
			require.NotNil(t, d.CurrentRouteID())
			assert.Equal(t, placed.RouteID, *d.CurrentRouteID())
		})
	})

	t.Run("deactivated driver's pending route still takes items", func(t *testing.T) {
		second := e.mustSubmit(t, item.Small)

		assert.Equal(t, placed.RouteID, second.RouteID)
		assert.Equal(t, busy, second.DriverID)
		assert.False(t, second.NewRoute)
		e.checkInvariants(t)
	})

	t.Run("deactivated driver opens no new route once the route is full", func(t *testing.T) {
		for range route.MaxItems - 2 {
			assert.Equal(t, placed.RouteID, e.mustSubmit(t, item.Small).RouteID)
		}

		_, err := e.submitItem(t, testutil.ItemParams(t, item.Small))

		require.ErrorIs(t, err, services.ErrNoEligibleDriver)
		e.view(t, func(v ports.StateView) { assert.Len(t, v.Pending(), 1) })
	})

	t.Run("unknown driver", func(t *testing.T) {
		cmd, err := commands.NewDeactivateDriverCommand(99)
		require.NoError(t, err)

		require.ErrorIs(t, e.deactivate.Handle(t.Context(), cmd), commands.ErrDriverNotFound)
	})

	t.Run("zero id is refused by the command", func(t *testing.T) {
		_, err := commands.NewDeactivateDriverCommand(0)
		require.ErrorIs(t, err, kernel.ErrDriverIDIsRequired)
	})
}

func TestAssignPendingItemsCommandHandler(t *testing.T) {
	e := newEngine(t)
	_, err := e.submitItem(t, testutil.ItemParams(t, item.Small))
	require.ErrorIs(t, err, services.ErrNoEligibleDriver)

	t.Run("nothing to do without drivers", func(t *testing.T) {
		got, err := e.sweep.Handle(t.Context(), commands.NewAssignPendingItemsCommand())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("zero command is rejected", func(t *testing.T) {
		_, err := e.sweep.Handle(t.Context(), commands.AssignPendingItemsCommand{})
		require.ErrorIs(t, err, commands.ErrAssignPendingItemsCommandIsNotConstructed)
	})
}

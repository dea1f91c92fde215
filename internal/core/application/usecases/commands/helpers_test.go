package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// engine wires every handler to one in-memory store.
type engine struct {
	store    *memory.Store
	notifier *MockNotifier

	register   commands.RegisterDriverCommandHandler
	deactivate commands.DeactivateDriverCommandHandler
	submit     commands.SubmitItemCommandHandler
	sweep      commands.AssignPendingItemsCommandHandler
	remove     commands.RemoveItemCommandHandler
	setStatus  commands.SetRouteStatusCommandHandler
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	clock := testutil.FixedClock{T: testutil.Now}
	notifier := new(MockNotifier)
	logger := testLogger()

	return &engine{
		store:      store,
		notifier:   notifier,
		register:   commands.NewRegisterDriverCommandHandler(factory, clock),
		deactivate: commands.NewDeactivateDriverCommandHandler(factory),
		submit:     commands.NewSubmitItemCommandHandler(factory, clock),
		sweep:      commands.NewAssignPendingItemsCommandHandler(factory, clock),
		remove:     commands.NewRemoveItemCommandHandler(factory, notifier, logger),
		setStatus:  commands.NewSetRouteStatusCommandHandler(factory, clock),
	}
}

func (e *engine) registerDriver(t *testing.T, v driver.VehicleType, trailer bool, sizes ...item.Size) kernel.DriverID {
	t.Helper()
	res, err := e.register.Handle(t.Context(), commands.NewRegisterDriverCommand(testutil.Profile(t, v, trailer, sizes...)))
	require.NoError(t, err)
	return res.DriverID
}

func (e *engine) submitItem(t *testing.T, p item.Params) (commands.Assignment, error) {
	t.Helper()
	cmd, err := commands.NewSubmitItemCommand(p)
	require.NoError(t, err)
	return e.submit.Handle(t.Context(), cmd)
}

func (e *engine) mustSubmit(t *testing.T, size item.Size) commands.Assignment {
	t.Helper()
	a, err := e.submitItem(t, testutil.ItemParams(t, size))
	require.NoError(t, err)
	return a
}

func (e *engine) view(t *testing.T, fn func(v ports.StateView)) {
	t.Helper()
	require.NoError(t, e.store.Read(t.Context(), func(v ports.StateView) error {
		fn(v)
		return nil
	}))
}

// checkInvariants asserts the scheduling invariants over the whole state.
func (e *engine) checkInvariants(t *testing.T) {
	t.Helper()
	e.view(t, func(v ports.StateView) {
		seen := make(map[kernel.UUID]string)
		for _, it := range v.Pending() {
			_, dup := seen[it.ID()]
			assert.False(t, dup, "item %s queued twice", it.ID())
			seen[it.ID()] = "queue"
		}

		boundTo := make(map[kernel.DriverID]kernel.RouteID)
		for _, r := range v.Routes() {
			require.NoError(t, r.CheckInvariants())
			assert.LessOrEqual(t, r.Len(), route.MaxItems)
			assert.True(t, r.TotalEarnings().IsEqual(route.TotalEarnings(r.Items())))

			d, err := v.Driver(r.DriverID())
			require.NoError(t, err)
			for _, it := range r.Items() {
				assert.True(t, d.CanCarry(it.Size()), "route %s carries %s its driver cannot", r.ID(), it.Size())
			}
			if !r.IsActive() {
				continue
			}
			for _, it := range r.Items() {
				where, dup := seen[it.ID()]
				assert.False(t, dup, "item %s on route %s is also in %s", it.ID(), r.ID(), where)
				seen[it.ID()] = "route " + r.ID().String()
			}
			_, twice := boundTo[r.DriverID()]
			assert.False(t, twice, "driver %s holds two active routes", r.DriverID())
			boundTo[r.DriverID()] = r.ID()
			require.NotNil(t, d.CurrentRouteID())
			assert.Equal(t, r.ID(), *d.CurrentRouteID())
		}
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

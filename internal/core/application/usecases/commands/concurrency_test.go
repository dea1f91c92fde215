package commands_test

import (
	"sync"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEngine_ConcurrentSubmissions(t *testing.T) {
	const (
		drivers = 4
		items   = 60
	)
	e := newEngine(t)
	e.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	for range drivers {
		e.registerDriver(t, driver.Truck, true)
	}

	sizes := []item.Size{item.Small, item.Medium, item.Large}
	params := make([]item.Params, items)
	for i := range params {
		params[i] = testutil.ItemParams(t, sizes[i%len(sizes)])
	}

	var wg sync.WaitGroup
	for _, p := range params {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewSubmitItemCommand(p)
			if !assert.NoError(t, err) {
				return
			}
			_, err = e.submit.Handle(t.Context(), cmd)
			if err != nil {
				assert.ErrorIs(t, err, services.ErrNoEligibleDriver)
			}
		}()
	}
	wg.Wait()

	e.checkInvariants(t)
	e.view(t, func(v ports.StateView) {
		placed := 0
		for _, r := range v.Routes() {
			placed += r.Len()
		}
		assert.Equal(t, items, placed+len(v.Pending()), "every item is on a route or queued")
		assert.Equal(t, drivers*route.MaxItems, placed, "every driver holds one full route")
	})
}

package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialIDs(t *testing.T) {
	t.Run("should round trip through text", func(t *testing.T) {
		d, err := kernel.ParseDriverID(kernel.DriverID(17).String())
		require.NoError(t, err)
		assert.Equal(t, kernel.DriverID(17), d)

		r, err := kernel.ParseRouteID("3")
		require.NoError(t, err)
		assert.Equal(t, kernel.RouteID(3), r)
	})

	t.Run("zero is not a valid identifier", func(t *testing.T) {
		require.ErrorIs(t, kernel.DriverID(0).Validate(), errs.ErrValueIsRequired)
		require.ErrorIs(t, kernel.RouteID(0).Validate(), errs.ErrValueIsRequired)

		_, err := kernel.ParseRouteID("0")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.ParseDriverID("abc")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

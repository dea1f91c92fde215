package item_test

import (
	"testing"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want item.Size
	}{
		{"small", item.Small},
		{"Medium", item.Medium},
		{" LARGE ", item.Large},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := item.ParseSize(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := item.ParseSize("huge")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSize(t *testing.T) {
	assert.Equal(t, "large", item.Large.String())
	assert.Equal(t, "unknown", item.Size(42).String())
	assert.True(t, item.Large.IsLarge())
	assert.False(t, item.Medium.IsLarge())
	require.NoError(t, item.Small.Validate())
	require.Error(t, item.UnknownSize.Validate())
	assert.Equal(t, []item.Size{item.Small, item.Medium, item.Large}, item.Sizes())
}

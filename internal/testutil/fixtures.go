// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

// Now is a fixed Friday morning used by tests that need a clock.
var Now = time.Date(2026, time.October, 16, 10, 30, 0, 0, time.UTC)

// FixedClock always returns the same instant.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

func Contact(t *testing.T, name string) kernel.Contact {
	t.Helper()
	c, err := kernel.NewContact(name, "+15550100", name+"@example.com")
	require.NoError(t, err)
	return c
}

// ItemParams returns valid params for a fresh item of the given size.
func ItemParams(t *testing.T, size item.Size) item.Params {
	t.Helper()
	return item.Params{
		ID:              kernel.NewUUID(),
		OrderID:         kernel.NewUUID(),
		SellerID:        kernel.NewUUID(),
		BuyerID:         kernel.NewUUID(),
		Buyer:           Contact(t, "buyer"),
		Seller:          Contact(t, "seller"),
		Name:            size.String() + " parcel",
		Size:            size,
		PickupAddress:   "1 Market St",
		DeliveryAddress: "9 Elm Ave",
		EstimatedWeight: 5,
		Price:           kernel.Dollars(40),
		DeliveryFee:     kernel.Dollars(12),
	}
}

func Item(t *testing.T, size item.Size) *item.Item {
	t.Helper()
	it, err := item.NewItem(ItemParams(t, size))
	require.NoError(t, err)
	return it
}

// Profile accepts every size listed in sizes, or all sizes if none are given.
func Profile(t *testing.T, v driver.VehicleType, trailer bool, sizes ...item.Size) driver.Profile {
	t.Helper()
	if len(sizes) == 0 {
		sizes = item.Sizes()
	}
	prefs := make(map[item.Size]bool, len(sizes))
	for _, s := range sizes {
		prefs[s] = true
	}
	return driver.Profile{
		Contact:         Contact(t, "driver"),
		VehicleType:     v,
		HasTrailer:      trailer,
		SizePreferences: prefs,
	}
}

func Driver(t *testing.T, id kernel.DriverID, v driver.VehicleType, trailer bool, sizes ...item.Size) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(id, Profile(t, v, trailer, sizes...))
	require.NoError(t, err)
	return d
}

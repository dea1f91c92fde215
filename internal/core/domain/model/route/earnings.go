package route

import (
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
)

// Pay schedule for one item, in cents.
const (
	PickupFeeCents          = 400
	DropoffFeeCents         = 200
	MileageRateCents        = 50
	LargeItemSurchargeCents = 2500

	// EstimatedMilesPerItem stands in for real distances until geocoding exists.
	EstimatedMilesPerItem = 2
)

// Earnings is the driver's pay for carrying it. The same function is used
// when an item joins a route and when it leaves, so totals never drift.
func Earnings(it *item.Item) kernel.Money {
	pay := kernel.Cents(PickupFeeCents).
		Add(kernel.Cents(DropoffFeeCents)).
		Add(kernel.Cents(MileageRateCents).Times(EstimatedMilesPerItem))
	if it.Size().IsLarge() {
		pay = pay.Add(kernel.Cents(LargeItemSurchargeCents))
	}
	return pay
}

// TotalEarnings sums Earnings over items.
func TotalEarnings(items []*item.Item) kernel.Money {
	total := kernel.Zero()
	for _, it := range items {
		total = total.Add(Earnings(it))
	}
	return total
}

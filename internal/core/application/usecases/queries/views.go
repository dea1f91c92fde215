// Package queries contains read operations over the scheduling state. Each
// handler reads one consistent view and returns plain read models that stay
// valid after the view is released.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

var (
	ErrRouteNotFound  = errors.New("route not found")
	ErrDriverNotFound = errors.New("driver not found")
)

// ItemView is the read model of a delivery item.
type ItemView struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	Name            string
	Size            item.Size
	PickupAddress   string
	DeliveryAddress string
	IsFragile       bool
	Earnings        kernel.Money
}

// RouteView is the read model of a route with its items in assignment order.
type RouteView struct {
	ID               kernel.RouteID
	DriverID         kernel.DriverID
	Date             time.Time
	TimeSlot         route.TimeSlot
	Status           route.Status
	Items            []ItemView
	TotalEarnings    kernel.Money
	HasLargeItem     bool
	EstimatedMileage float64
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
}

func newItemView(it *item.Item) ItemView {
	return ItemView{
		ID:              it.ID(),
		OrderID:         it.OrderID(),
		Name:            it.Name(),
		Size:            it.Size(),
		PickupAddress:   it.PickupAddress(),
		DeliveryAddress: it.DeliveryAddress(),
		IsFragile:       it.IsFragile(),
		Earnings:        route.Earnings(it),
	}
}

func newRouteView(r *route.Route) RouteView {
	items := r.Items()
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, newItemView(it))
	}

	return RouteView{
		ID:               r.ID(),
		DriverID:         r.DriverID(),
		Date:             r.Slot().Date(),
		TimeSlot:         r.Slot().Window(),
		Status:           r.Status(),
		Items:            views,
		TotalEarnings:    r.TotalEarnings(),
		HasLargeItem:     r.HasLargeItem(),
		EstimatedMileage: r.EstimatedMileage(),
		CreatedAt:        r.CreatedAt(),
		AcceptedAt:       r.AcceptedAt(),
		CompletedAt:      r.CompletedAt(),
		CancelledAt:      r.CancelledAt(),
	}
}

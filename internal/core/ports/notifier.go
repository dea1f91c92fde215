package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// NotificationKind tells who is being notified about what.
type NotificationKind int

const (
	UnknownNotification NotificationKind = iota
	BuyerRemoval
	SellerRemoval
)

func getNotificationKindStrings() map[NotificationKind]string {
	return map[NotificationKind]string{
		UnknownNotification: "unknown",
		BuyerRemoval:        "buyer_removal",
		SellerRemoval:       "seller_removal",
	}
}

func (k NotificationKind) String() string {
	if s, ok := getNotificationKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Notification tells a buyer or seller that an item was taken off its route.
// Reason is passed through verbatim.
type Notification struct {
	Kind     NotificationKind
	Contact  kernel.Contact
	ItemID   kernel.UUID
	ItemName string
	RouteID  kernel.RouteID
	Reason   string
}

// Notifier delivers notifications. Delivery is best effort; a returned error
// is logged by the caller and never undoes the change being reported.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

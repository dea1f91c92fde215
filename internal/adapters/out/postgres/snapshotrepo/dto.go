// Package snapshotrepo persists snapshots of the scheduling state through GORM.
// It maps drivers, routes with their ordered items, and the pending queue to
// relational tables and back.
package snapshotrepo

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// MetaDTO is the single row describing the stored snapshot.
type MetaDTO struct {
	ID      int       `gorm:"primaryKey;autoIncrement:false"`
	TakenAt time.Time `gorm:"not null"`
}

func (MetaDTO) TableName() string {
	return "snapshot_meta"
}

// ContactDTO is embedded wherever a contact is stored.
type ContactDTO struct {
	Name  string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(64)"`
	Email string `gorm:"type:varchar(255)"`
}

type DriverDTO struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement:false"`
	Contact        ContactDTO `gorm:"embedded;embeddedPrefix:contact_"`
	VehicleType    int        `gorm:"type:smallint;not null"`
	HasTrailer     bool       `gorm:"not null"`
	PrefersSmall   bool       `gorm:"not null"`
	PrefersMedium  bool       `gorm:"not null"`
	PrefersLarge   bool       `gorm:"not null"`
	IsActive       bool       `gorm:"not null"`
	CurrentRouteID *uint64
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type RouteDTO struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement:false"`
	DriverID    uint64    `gorm:"not null;index"`
	SlotDate    string    `gorm:"type:varchar(10);not null"`
	SlotWindow  int       `gorm:"type:smallint;not null"`
	Status      int       `gorm:"type:smallint;not null;index"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	AcceptedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	Items       []RouteItemDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

// ItemDTO holds the columns of a delivery item. It is embedded into the
// route item and pending item tables.
type ItemDTO struct {
	ItemID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null"`
	SellerID         uuid.UUID  `gorm:"type:uuid;not null"`
	BuyerID          uuid.UUID  `gorm:"type:uuid;not null"`
	Buyer            ContactDTO `gorm:"embedded;embeddedPrefix:buyer_"`
	Seller           ContactDTO `gorm:"embedded;embeddedPrefix:seller_"`
	Name             string     `gorm:"type:varchar(255);not null"`
	Size             int        `gorm:"type:smallint;not null"`
	PickupAddress    string     `gorm:"type:text;not null"`
	DeliveryAddress  string     `gorm:"type:text;not null"`
	EstimatedWeight  float64
	IsFragile        bool
	PriceCents       int64
	DeliveryFeeCents int64
}

// RouteItemDTO is an item on a route; Position keeps the route order.
type RouteItemDTO struct {
	RouteID  uint64  `gorm:"primaryKey;autoIncrement:false"`
	Position int     `gorm:"primaryKey;autoIncrement:false"`
	Item     ItemDTO `gorm:"embedded"`
}

func (RouteItemDTO) TableName() string {
	return "route_items"
}

// PendingItemDTO is a queued item; Position keeps FIFO order.
type PendingItemDTO struct {
	Position int     `gorm:"primaryKey;autoIncrement:false"`
	Item     ItemDTO `gorm:"embedded"`
}

func (PendingItemDTO) TableName() string {
	return "pending_items"
}

func contactFromDomain(c kernel.Contact) ContactDTO {
	return ContactDTO{Name: c.Name(), Phone: c.Phone(), Email: c.Email()}
}

func contactToDomain(dto ContactDTO) (kernel.Contact, error) {
	return kernel.NewContact(dto.Name, dto.Phone, dto.Email)
}

func driverFromDomain(d *driver.Driver) DriverDTO {
	var current *uint64
	if id := d.CurrentRouteID(); id != nil {
		raw := uint64(*id)
		current = &raw
	}
	return DriverDTO{
		ID:             uint64(d.ID()),
		Contact:        contactFromDomain(d.Contact()),
		VehicleType:    int(d.VehicleType()),
		HasTrailer:     d.HasTrailer(),
		PrefersSmall:   d.Prefers(item.Small),
		PrefersMedium:  d.Prefers(item.Medium),
		PrefersLarge:   d.Prefers(item.Large),
		IsActive:       d.IsActive(),
		CurrentRouteID: current,
	}
}

func driverToDomain(dto DriverDTO) (*driver.Driver, error) {
	contact, err := contactToDomain(dto.Contact)
	if err != nil {
		return nil, fmt.Errorf("driver %d: %w", dto.ID, err)
	}

	prefs := make(map[item.Size]bool, 3)
	for size, on := range map[item.Size]bool{
		item.Small:  dto.PrefersSmall,
		item.Medium: dto.PrefersMedium,
		item.Large:  dto.PrefersLarge,
	} {
		if on {
			prefs[size] = true
		}
	}

	var current *kernel.RouteID
	if dto.CurrentRouteID != nil {
		id := kernel.RouteID(*dto.CurrentRouteID)
		current = &id
	}

	return driver.RestoreDriver(kernel.DriverID(dto.ID), driver.Profile{
		Contact:         contact,
		VehicleType:     driver.VehicleType(dto.VehicleType),
		HasTrailer:      dto.HasTrailer,
		SizePreferences: prefs,
	}, dto.IsActive, current)
}

func itemFromDomain(it *item.Item) ItemDTO {
	return ItemDTO{
		ItemID:           it.ID().Google(),
		OrderID:          it.OrderID().Google(),
		SellerID:         it.SellerID().Google(),
		BuyerID:          it.BuyerID().Google(),
		Buyer:            contactFromDomain(it.Buyer()),
		Seller:           contactFromDomain(it.Seller()),
		Name:             it.Name(),
		Size:             int(it.Size()),
		PickupAddress:    it.PickupAddress(),
		DeliveryAddress:  it.DeliveryAddress(),
		EstimatedWeight:  it.EstimatedWeight(),
		IsFragile:        it.IsFragile(),
		PriceCents:       it.Price().Cents(),
		DeliveryFeeCents: it.DeliveryFee().Cents(),
	}
}

func itemToDomain(dto ItemDTO) (*item.Item, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ItemID, dto.OrderID, dto.SellerID, dto.BuyerID} {
		id, err := kernel.UUIDFromGoogle(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	buyer, err := contactToDomain(dto.Buyer)
	if err != nil {
		return nil, fmt.Errorf("item %s buyer: %w", dto.ItemID, err)
	}
	seller, err := contactToDomain(dto.Seller)
	if err != nil {
		return nil, fmt.Errorf("item %s seller: %w", dto.ItemID, err)
	}

	return item.NewItem(item.Params{
		ID:              ids[0],
		OrderID:         ids[1],
		SellerID:        ids[2],
		BuyerID:         ids[3],
		Buyer:           buyer,
		Seller:          seller,
		Name:            dto.Name,
		Size:            item.Size(dto.Size),
		PickupAddress:   dto.PickupAddress,
		DeliveryAddress: dto.DeliveryAddress,
		EstimatedWeight: dto.EstimatedWeight,
		IsFragile:       dto.IsFragile,
		Price:           kernel.Cents(dto.PriceCents),
		DeliveryFee:     kernel.Cents(dto.DeliveryFeeCents),
	})
}

func routeFromDomain(r *route.Route) RouteDTO {
	items := r.Items()
	rows := make([]RouteItemDTO, 0, len(items))
	for pos, it := range items {
		rows = append(rows, RouteItemDTO{
			RouteID:  uint64(r.ID()),
			Position: pos,
			Item:     itemFromDomain(it),
		})
	}

	return RouteDTO{
		ID:          uint64(r.ID()),
		DriverID:    uint64(r.DriverID()),
		SlotDate:    r.Slot().Date().Format(time.DateOnly),
		SlotWindow:  int(r.Slot().Window()),
		Status:      int(r.Status()),
		CreatedAt:   r.CreatedAt().UTC(),
		AcceptedAt:  utc(r.AcceptedAt()),
		CompletedAt: utc(r.CompletedAt()),
		CancelledAt: utc(r.CancelledAt()),
		Items:       rows,
	}
}

// routeToDomain expects dto.Items sorted by Position.
func routeToDomain(dto RouteDTO) (*route.Route, error) {
	date, err := time.Parse(time.DateOnly, dto.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("route %d slot date: %w", dto.ID, err)
	}
	slot, err := route.NewSlot(date, route.TimeSlot(dto.SlotWindow))
	if err != nil {
		return nil, fmt.Errorf("route %d slot: %w", dto.ID, err)
	}

	items := make([]*item.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		it, itemErr := itemToDomain(row.Item)
		if itemErr != nil {
			return nil, fmt.Errorf("route %d: %w", dto.ID, itemErr)
		}
		items = append(items, it)
	}

	return route.RestoreRoute(
		kernel.RouteID(dto.ID),
		kernel.DriverID(dto.DriverID),
		slot,
		items,
		route.Status(dto.Status),
		route.Timestamps{
			CreatedAt:   dto.CreatedAt.UTC(),
			AcceptedAt:  utc(dto.AcceptedAt),
			CompletedAt: utc(dto.CompletedAt),
			CancelledAt: utc(dto.CancelledAt),
		},
	)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

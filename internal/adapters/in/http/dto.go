package http

import (
	"errors"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
)

type ContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required_without=Email"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (r ContactRequest) toDomain() (kernel.Contact, error) {
	return kernel.NewContact(r.Name, r.Phone, r.Email)
}

type RegisterDriverRequest struct {
	Contact         ContactRequest `json:"contact"`
	VehicleType     string         `json:"vehicle_type" validate:"required,oneof=car suv truck van motorcycle bicycle"`
	HasTrailer      bool           `json:"has_trailer"`
	SizePreferences []string       `json:"size_preferences" validate:"required,min=1,dive,oneof=small medium large"`
}

func (r RegisterDriverRequest) toProfile() (driver.Profile, error) {
	contact, contactErr := r.Contact.toDomain()
	vehicle, vehicleErr := driver.ParseVehicleType(r.VehicleType)

	prefs := make(map[item.Size]bool, len(r.SizePreferences))
	var sizeErrs []error
	for _, s := range r.SizePreferences {
		size, err := item.ParseSize(s)
		if err != nil {
			sizeErrs = append(sizeErrs, err)
			continue
		}
		prefs[size] = true
	}

	if err := errors.Join(contactErr, vehicleErr, errors.Join(sizeErrs...)); err != nil {
		return driver.Profile{}, err
	}
	return driver.Profile{
		Contact:         contact,
		VehicleType:     vehicle,
		HasTrailer:      r.HasTrailer,
		SizePreferences: prefs,
	}, nil
}

// SubmitItemRequest describes an item to deliver. ID is optional: a resubmission
// passes the id it got back the first time.
type SubmitItemRequest struct {
	ID              string         `json:"id" validate:"omitempty,uuid"`
	OrderID         string         `json:"order_id" validate:"required,uuid"`
	SellerID        string         `json:"seller_id" validate:"required,uuid"`
	BuyerID         string         `json:"buyer_id" validate:"required,uuid"`
	Buyer           ContactRequest `json:"buyer"`
	Seller          ContactRequest `json:"seller"`
	Name            string         `json:"name" validate:"required"`
	Size            string         `json:"size" validate:"required,oneof=small medium large"`
	PickupAddress   string         `json:"pickup_address" validate:"required"`
	DeliveryAddress string         `json:"delivery_address" validate:"required"`
	EstimatedWeight float64        `json:"estimated_weight" validate:"gte=0"`
	IsFragile       bool           `json:"is_fragile"`
	Price           float64        `json:"price" validate:"gte=0"`
	DeliveryFee     float64        `json:"delivery_fee" validate:"gte=0"`
}

func (r SubmitItemRequest) toParams() (item.Params, error) {
	id := kernel.NewUUID()
	var idErr error
	if r.ID != "" {
		id, idErr = kernel.ParseUUID(r.ID)
	}
	orderID, orderErr := kernel.ParseUUID(r.OrderID)
	sellerID, sellerErr := kernel.ParseUUID(r.SellerID)
	buyerID, buyerErr := kernel.ParseUUID(r.BuyerID)
	buyer, buyerContactErr := r.Buyer.toDomain()
	seller, sellerContactErr := r.Seller.toDomain()
	size, sizeErr := item.ParseSize(r.Size)

	if err := errors.Join(idErr, orderErr, sellerErr, buyerErr, buyerContactErr, sellerContactErr, sizeErr); err != nil {
		return item.Params{}, err
	}
	return item.Params{
		ID:              id,
		OrderID:         orderID,
		SellerID:        sellerID,
		BuyerID:         buyerID,
		Buyer:           buyer,
		Seller:          seller,
		Name:            r.Name,
		Size:            size,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		EstimatedWeight: r.EstimatedWeight,
		IsFragile:       r.IsFragile,
		Price:           kernel.Dollars(r.Price),
		DeliveryFee:     kernel.Dollars(r.DeliveryFee),
	}, nil
}

type SetRouteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted in_progress completed cancelled"`
}

// RemoveItemRequest takes the reason from the body or the query string.
type RemoveItemRequest struct {
	Reason string `json:"reason" query:"reason" validate:"required"`
}

type AssignmentResponse struct {
	ItemID   string `json:"item_id"`
	RouteID  uint64 `json:"route_id"`
	DriverID uint64 `json:"driver_id"`
	NewRoute bool   `json:"new_route"`
}

func newAssignmentResponse(a commands.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ItemID:   a.ItemID.String(),
		RouteID:  uint64(a.RouteID),
		DriverID: uint64(a.DriverID),
		NewRoute: a.NewRoute,
	}
}

func newAssignmentResponses(in []commands.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, newAssignmentResponse(a))
	}
	return out
}

type RegisterDriverResponse struct {
	DriverID    uint64               `json:"driver_id"`
	Assignments []AssignmentResponse `json:"assignments"`
}

const (
	itemAssigned = "assigned"
	itemQueued   = "queued"
)

type SubmitItemResponse struct {
	ItemID     string              `json:"item_id"`
	Status     string              `json:"status"`
	Assignment *AssignmentResponse `json:"assignment,omitempty"`
}

type SetRouteStatusResponse struct {
	RouteID     uint64               `json:"route_id"`
	Status      string               `json:"status"`
	Requeued    int                  `json:"requeued"`
	Assignments []AssignmentResponse `json:"assignments"`
}

type ItemResponse struct {
	ID              string `json:"id"`
	OrderID         string `json:"order_id"`
	Name            string `json:"name"`
	Size            string `json:"size"`
	PickupAddress   string `json:"pickup_address"`
	DeliveryAddress string `json:"delivery_address"`
	IsFragile       bool   `json:"is_fragile"`
	Earnings        string `json:"earnings"`
}

func newItemResponses(in []queries.ItemView) []ItemResponse {
	out := make([]ItemResponse, 0, len(in))
	for _, it := range in {
		out = append(out, ItemResponse{
			ID:              it.ID.String(),
			OrderID:         it.OrderID.String(),
			Name:            it.Name,
			Size:            it.Size.String(),
			PickupAddress:   it.PickupAddress,
			DeliveryAddress: it.DeliveryAddress,
			IsFragile:       it.IsFragile,
			Earnings:        it.Earnings.String(),
		})
	}
	return out
}

type RouteResponse struct {
	ID               uint64         `json:"id"`
	DriverID         uint64         `json:"driver_id"`
	Date             string         `json:"date"`
	TimeSlot         string         `json:"time_slot"`
	Status           string         `json:"status"`
	Items            []ItemResponse `json:"items"`
	TotalEarnings    string         `json:"total_earnings"`
	HasLargeItem     bool           `json:"has_large_item"`
	EstimatedMileage float64        `json:"estimated_mileage"`
	CreatedAt        time.Time      `json:"created_at"`
	AcceptedAt       *time.Time     `json:"accepted_at,omitempty"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	CancelledAt      *time.Time     `json:"cancelled_at,omitempty"`
}

func newRouteResponse(v queries.RouteView) RouteResponse {
	return RouteResponse{
		ID:               uint64(v.ID),
		DriverID:         uint64(v.DriverID),
		Date:             v.Date.Format(time.DateOnly),
		TimeSlot:         v.TimeSlot.String(),
		Status:           v.Status.String(),
		Items:            newItemResponses(v.Items),
		TotalEarnings:    v.TotalEarnings.String(),
		HasLargeItem:     v.HasLargeItem,
		EstimatedMileage: v.EstimatedMileage,
		CreatedAt:        v.CreatedAt,
		AcceptedAt:       v.AcceptedAt,
		CompletedAt:      v.CompletedAt,
		CancelledAt:      v.CancelledAt,
	}
}

type EligibleDriversResponse struct {
	Size      string   `json:"size"`
	DriverIDs []uint64 `json:"driver_ids"`
}

type StatsResponse struct {
	Drivers        int            `json:"drivers"`
	ActiveDrivers  int            `json:"active_drivers"`
	BusyDrivers    int            `json:"busy_drivers"`
	Routes         int            `json:"routes"`
	RoutesByStatus map[string]int `json:"routes_by_status"`
	QueuedItems    int            `json:"queued_items"`
	AssignedItems  int            `json:"assigned_items"`
	ActiveEarnings string         `json:"active_earnings"`
}

func newStatsResponse(s queries.Stats) StatsResponse {
	byStatus := make(map[string]int, len(s.RoutesByStatus))
	for st, n := range s.RoutesByStatus {
		byStatus[st.String()] = n
	}
	return StatsResponse{
		Drivers:        s.Drivers,
		ActiveDrivers:  s.ActiveDrivers,
		BusyDrivers:    s.BusyDrivers,
		Routes:         s.Routes,
		RoutesByStatus: byStatus,
		QueuedItems:    s.QueuedItems,
		AssignedItems:  s.AssignedItems,
		ActiveEarnings: s.ActiveEarnings.String(),
	}
}

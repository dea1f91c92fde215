package item

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	ErrNameIsRequired       = errs.NewValueIsRequiredError("item name")
	ErrPickupIsRequired     = errs.NewValueIsRequiredError("pickup address")
	ErrDeliveryIsRequired   = errs.NewValueIsRequiredError("delivery address")
)

// Params carries everything needed to create an Item.
type Params struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	SellerID        kernel.UUID
	BuyerID         kernel.UUID
	Buyer           kernel.Contact
	Seller          kernel.Contact
	Name            string
	Size            Size
	PickupAddress   string
	DeliveryAddress string
	EstimatedWeight float64
	IsFragile       bool
	Price           kernel.Money
	DeliveryFee     kernel.Money
}

// Item is a delivery item travelling from seller to buyer.
//
// Item follows these invariants:
//   - identity, order, seller and buyer ids are valid UUIDs
//   - buyer and seller contacts are valid
//   - name and both addresses are non-empty
//   - size is small, medium or large
//   - weight, price and delivery fee are not negative
type Item struct {
	id              kernel.UUID
	orderID         kernel.UUID
	sellerID        kernel.UUID
	buyerID         kernel.UUID
	buyer           kernel.Contact
	seller          kernel.Contact
	name            string
	size            Size
	pickupAddress   string
	deliveryAddress string
	estimatedWeight float64
	isFragile       bool
	price           kernel.Money
	deliveryFee     kernel.Money
	guard           guard.ConstructorGuard
}

// NewItem validates p and returns the item. All validation failures are
// reported together.
func NewItem(p Params) (*Item, error) {
	it := &Item{
		isFragile: p.IsFragile,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		it.setIDs(p.ID, p.OrderID, p.SellerID, p.BuyerID),
		it.setContacts(p.Buyer, p.Seller),
		it.setName(p.Name),
		it.setSize(p.Size),
		it.setAddresses(p.PickupAddress, p.DeliveryAddress),
		it.setWeight(p.EstimatedWeight),
		it.setAmounts(p.Price, p.DeliveryFee),
	); err != nil {
		return nil, err
	}

	return it, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// IsEqual compares items by identity.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *Item) ID() kernel.UUID           { return i.id }
func (i *Item) OrderID() kernel.UUID      { return i.orderID }
func (i *Item) SellerID() kernel.UUID     { return i.sellerID }
func (i *Item) BuyerID() kernel.UUID      { return i.buyerID }
func (i *Item) Buyer() kernel.Contact     { return i.buyer }
func (i *Item) Seller() kernel.Contact    { return i.seller }
func (i *Item) Name() string              { return i.name }
func (i *Item) Size() Size                { return i.size }
func (i *Item) PickupAddress() string     { return i.pickupAddress }
func (i *Item) DeliveryAddress() string   { return i.deliveryAddress }
func (i *Item) EstimatedWeight() float64  { return i.estimatedWeight }
func (i *Item) IsFragile() bool           { return i.isFragile }
func (i *Item) Price() kernel.Money       { return i.price }
func (i *Item) DeliveryFee() kernel.Money { return i.deliveryFee }

func (i *Item) setIDs(id, orderID, sellerID, buyerID kernel.UUID) error {
	fields := []struct {
		name string
		id   kernel.UUID
	}{
		{"item id", id}, {"order id", orderID}, {"seller id", sellerID}, {"buyer id", buyerID},
	}

	var errList []error
	for _, f := range fields {
		if err := f.id.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause(f.name, err))
		}
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	i.id, i.orderID, i.sellerID, i.buyerID = id, orderID, sellerID, buyerID
	return nil
}

func (i *Item) setContacts(buyer, seller kernel.Contact) error {
	var buyerErr, sellerErr error
	if err := buyer.Validate(); err != nil {
		buyerErr = errs.NewValueIsRequiredErrorWithCause("buyer contact", err)
	}
	if err := seller.Validate(); err != nil {
		sellerErr = errs.NewValueIsRequiredErrorWithCause("seller contact", err)
	}
	if err := errors.Join(buyerErr, sellerErr); err != nil {
		return err
	}

	i.buyer, i.seller = buyer, seller
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	i.name = name
	return nil
}

func (i *Item) setSize(size Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	i.size = size
	return nil
}

func (i *Item) setAddresses(pickup, delivery string) error {
	pickup, delivery = strings.TrimSpace(pickup), strings.TrimSpace(delivery)

	var pickupErr, deliveryErr error
	if pickup == "" {
		pickupErr = ErrPickupIsRequired
	}
	if delivery == "" {
		deliveryErr = ErrDeliveryIsRequired
	}
	if err := errors.Join(pickupErr, deliveryErr); err != nil {
		return err
	}

	i.pickupAddress, i.deliveryAddress = pickup, delivery
	return nil
}

func (i *Item) setWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated weight", fmt.Errorf("%g is negative", weight))
	}
	i.estimatedWeight = weight
	return nil
}

func (i *Item) setAmounts(price, fee kernel.Money) error {
	var priceErr, feeErr error
	if price.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if fee.IsNegative() {
		feeErr = errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", fee))
	}
	if err := errors.Join(priceErr, feeErr); err != nil {
		return err
	}

	i.price, i.deliveryFee = price, fee
	return nil
}

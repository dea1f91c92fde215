// Package item provides the DeliveryItem aggregate: one physical good that
// moves from a seller's pickup address to a buyer's delivery address.
//
// Items are immutable once created. Which route carries an item is tracked
// by the route aggregate, never on the item itself.
//
// Key business rules:
//   - every item has a size class (small, medium or large)
//   - large items need a trailer-equipped truck or SUV
//   - price, delivery fee and estimated weight are never negative
package item

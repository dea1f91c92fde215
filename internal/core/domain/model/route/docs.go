// Package route provides the Route aggregate: a bounded, time-boxed group of
// delivery items carried by one driver.
//
// The package includes:
//   - Route: the aggregate root owning the ordered item list and its earnings
//   - Status: the route lifecycle state machine
//   - Slot/TimeSlot: the dated delivery window picked when a route opens
//   - Earnings: the per-item driver pay calculator
//
// Invariants held after every mutation:
//   - at most MaxItems items
//   - at most one large item
//   - every item is carriable by the route's driver
//   - TotalEarnings equals the sum of Earnings over the current items, to the cent
//   - only pending routes accept items
package route

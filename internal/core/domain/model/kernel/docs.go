// Package kernel holds the value objects shared by every dispatch aggregate:
//   - UUID: identity of items, orders and trading parties
//   - Money: an exact amount in integer cents
//   - Contact: how to reach a buyer, seller or driver
//
// All kernel values are immutable and safe to share between goroutines.
package kernel

// Package driver provides the Driver aggregate: a registered driver, the
// vehicle they drive and the item sizes they accept.
//
// Key business rules:
//   - a driver is created active and without a route
//   - drivers are never deleted, only deactivated
//   - a driver is bound to at most one active route at a time
//   - large items need a trailer and a truck or SUV
package driver

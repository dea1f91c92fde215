// Package services provides domain services that coordinate several
// aggregates of the dispatch model.
//
// The package includes:
//   - RouteAssigner: first-fit placement of a delivery item into an open
//     route, or into a new route for the lowest-numbered eligible driver
//
// Domain services hold no state. Persistence and locking are the caller's
// concern; the assigner only decides and mutates the aggregates it is given.
package services

// Package errs provides the typed errors shared by the dispatch domain.
//
// Every error type pairs a sentinel (for errors.Is) with a struct carrying
// details (for errors.As), and has a constructor with and without a cause:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value is present but malformed
//   - ValueIsOutOfRangeError: a value lies outside its allowed bounds
//   - ObjectNotFoundError: a lookup by identifier found nothing
package errs

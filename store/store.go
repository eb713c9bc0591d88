// Package store is the persistence gateway for plan and task documents.
// Plans are single MongoDB documents with days and activities embedded as
// nested arrays; every activity mutation is either a whole-array replacement
// on the matched day or a field-path update scoped by two array-element
// matches (day id, then activity id). Document-level updates are
// last-write-wins; the gateway offers no optimistic concurrency.
package store

import "errors"

// ErrNotFound is returned when the referenced plan, day, activity, or task
// does not exist at mutation time. Handlers map it to 404, distinct from
// validation failures.
var ErrNotFound = errors.New("store: not found")

// Package records is the local cache of shared household entities.
//
// Every family lives in one SQLite table keyed by (family, id) with the JSON
// payload of the entity. Store is the typed view of one family, Cache groups
// the cross-family operations (full wipe, scope wipe, local user id), and Hub
// fans change signals out to Observe subscriptions.
//
// Database errors are reported as common.ErrPersistence; a missing row is
// common.ErrNotFound.
package records

// Package models defines the client-side records cached from the wghub backend.
package models

import "slices"

// Family names an entity family. It tags push notifications and
// partitions the local store.
type Family string

const (
	FamilyCalendarEntry Family = "calendar_entry"
	FamilyTask          Family = "task"
	FamilyAbsence       Family = "absence"
	FamilyHousehold     Family = "household"
	FamilyUser          Family = "user"
	FamilyMembership    Family = "membership"
)

// Families lists every known family.
var Families = []Family{
	FamilyCalendarEntry,
	FamilyTask,
	FamilyAbsence,
	FamilyHousehold,
	FamilyUser,
	FamilyMembership,
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return slices.Contains(Families, f)
}

func (f Family) String() string { return string(f) }

// Entity is a record whose local visibility is decided by its affected users.
type Entity interface {
	// EntityID is the stable backend identifier.
	EntityID() string
	// ScopeID is the owning household id.
	ScopeID() string
	// AffectedUserIDs is the backend-resolved audience of the record.
	AffectedUserIDs() []string
}

// IsAffected reports whether userID belongs to the audience of e.
// An empty userID is never affected.
func IsAffected(e Entity, userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(e.AffectedUserIDs(), userID)
}

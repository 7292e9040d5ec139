package models

import "time"

// CalendarEntry is a shared appointment in a household calendar.
type CalendarEntry struct {
	ID            string    `json:"id"`
	HouseholdID   string    `json:"household_id"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Color         string    `json:"color,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	AffectedUsers []string  `json:"affected_users"`
}

func (c CalendarEntry) EntityID() string          { return c.ID }
func (c CalendarEntry) ScopeID() string           { return c.HouseholdID }
func (c CalendarEntry) AffectedUserIDs() []string { return c.AffectedUsers }

// Task is a chore assigned to some household members.
type Task struct {
	ID            string     `json:"id"`
	HouseholdID   string     `json:"household_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Due           *time.Time `json:"due,omitempty"`
	Color         string     `json:"color,omitempty"`
	Done          bool       `json:"done"`
	CreatedBy     string     `json:"created_by,omitempty"`
	AffectedUsers []string   `json:"affected_users"`
}

func (t Task) EntityID() string          { return t.ID }
func (t Task) ScopeID() string           { return t.HouseholdID }
func (t Task) AffectedUserIDs() []string { return t.AffectedUsers }

// Absence is a period in which a member is away.
type Absence struct {
	ID            string    `json:"id"`
	HouseholdID   string    `json:"household_id"`
	UserID        string    `json:"user_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Note          string    `json:"note,omitempty"`
	AffectedUsers []string  `json:"affected_users"`
}

func (a Absence) EntityID() string          { return a.ID }
func (a Absence) ScopeID() string           { return a.HouseholdID }
func (a Absence) AffectedUserIDs() []string { return a.AffectedUsers }

// Household is the shared-living group. A user belongs to at most one.
type Household struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	InvitationCode string   `json:"invitation_code"`
	PictureURL     string   `json:"picture_url,omitempty"`
	MemberIDs      []string `json:"member_ids"`
}

func (h Household) EntityID() string { return h.ID }

// ScopeID of a household is its own id.
func (h Household) ScopeID() string           { return h.ID }
func (h Household) AffectedUserIDs() []string { return h.MemberIDs }

// User is the public profile of an account. AffectedUsers holds the user
// and, while they share a household, the co-members.
type User struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"display_name"`
	Email         string   `json:"email,omitempty"`
	PictureURL    string   `json:"picture_url,omitempty"`
	HouseholdID   string   `json:"household_id,omitempty"`
	AffectedUsers []string `json:"affected_users"`
}

func (u User) EntityID() string          { return u.ID }
func (u User) ScopeID() string           { return u.HouseholdID }
func (u User) AffectedUserIDs() []string { return u.AffectedUsers }

// Membership links a user to a household.
type Membership struct {
	HouseholdID   string    `json:"household_id"`
	UserID        string    `json:"user_id"`
	Role          string    `json:"role,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`
	AffectedUsers []string  `json:"affected_users"`
}

// MembershipID builds the identifier of the membership of userID in householdID.
func MembershipID(householdID, userID string) string {
	return householdID + "/" + userID
}

func (m Membership) EntityID() string          { return MembershipID(m.HouseholdID, m.UserID) }
func (m Membership) ScopeID() string           { return m.HouseholdID }
func (m Membership) AffectedUserIDs() []string { return m.AffectedUsers }

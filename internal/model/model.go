// Package model defines the target-schema entities shared by the API
// handlers and the legacy importer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Area is a top-level geographic/organizational grouping.
type Area struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	LegacyID  *int       `json:"legacy_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Community is a sub-area grouping; every community belongs to an area.
type Community struct {
	ID        uuid.UUID  `json:"id"`
	AreaID    *uuid.UUID `json:"area_id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	LegacyID  *int       `json:"legacy_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Venue is a physical meeting location.
type Venue struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Address     *string    `json:"address"`
	City        *string    `json:"city"`
	Region      *string    `json:"region"`
	PostalCode  *string    `json:"postal_code"`
	Country     *string    `json:"country"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Person is the base identity record. Warrior extends it.
type Person struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
	LegacyUID   *int       `json:"legacy_uid,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Warrior is the membership extension of a Person: an initiated man.
// PersonID doubles as the primary key.
type Warrior struct {
	PersonID          uuid.UUID  `json:"person_id"`
	AnimalName        *string    `json:"animal_name"`
	InitiationEventID *uuid.UUID `json:"initiation_event_id"`
	InitiationDate    *time.Time `json:"initiation_date"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TimeRange is one structured meeting window within a schedule.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Group is the shared shape of IGroup and FGroup.
type Group struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
	VenueID     *uuid.UUID `json:"venue_id"`

	AcceptsInitiatedVisitors   bool `json:"is_accepting_initiated_visitors"`
	AcceptsUninitiatedVisitors bool `json:"is_accepting_uninitiated_visitors"`
	RequiresContactBeforeVisit bool `json:"is_requiring_contact_before_visiting"`
	IsMixedGender              bool `json:"is_mixed_gender"`

	// ScheduleEvents is always empty for imported groups until recurrence
	// expansion lands; ScheduleDescription carries the human-readable form.
	ScheduleEvents      []TimeRange `json:"schedule_events"`
	ScheduleDescription *string     `json:"schedule_description"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IGroup is a general-purpose local integration group.
type IGroup struct {
	Group

	// Legacy holds the original imported record verbatim for audit.
	Legacy map[string]any `json:"legacy_record,omitempty"`
}

// FGroup subtype labels.
const (
	FGroupTypeMixed  = "Mixed Gender"
	FGroupTypeOpen   = "Open Men's"
	FGroupTypeClosed = "Closed Men's"
	FGroupTypeMens   = "Men's"
)

// FGroup is a facilitation group (men's circle), a sibling of IGroup with
// subtype classification and a facilitator roster.
type FGroup struct {
	Group

	GroupType    string      `json:"group_type"`
	Facilitators []uuid.UUID `json:"facilitators"`

	Legacy map[string]any `json:"legacy_record,omitempty"`
}

// Event is a scheduled organizational event.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	EventType   string     `json:"event_type"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	VenueID     *uuid.UUID `json:"venue_id"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NWTA registration states.
const (
	NWTARegistrationOpen   = "open"
	NWTARegistrationFull   = "full"
	NWTARegistrationClosed = "closed"
)

// NWTAEvent extends Event with staffing and participant workflows for the
// New Warrior Training Adventure weekend.
type NWTAEvent struct {
	Event

	RegistrationStatus  string     `json:"registration_status"`
	ParticipantCapacity int        `json:"participant_capacity"`
	ParticipantCount    int        `json:"participant_count"`
	StaffCapacity       int        `json:"staff_capacity"`
	StaffCount          int        `json:"staff_count"`
	LeaderID            *uuid.UUID `json:"leader_id"`
}

// User is an admin-UI login bound to a person record.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	PersonID  *uuid.UUID `json:"person_id"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

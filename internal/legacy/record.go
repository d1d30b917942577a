// Package legacy models the loosely-typed records exported from the
// predecessor Drupal/CiviCRM system, and the boundary checks that turn
// raw JSON into typed records before any business logic runs.
//
// Legacy exports are inconsistent about types: numeric fields arrive as
// numbers or strings, booleans as "yes"/"no"/"1"/0/true. FlexString and
// FlexInt absorb that at decode time so downstream code sees one shape.
package legacy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString decodes JSON strings, numbers, and booleans into a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("cannot decode %s as string", string(data))
}

// String returns the trimmed value.
func (f FlexString) String() string { return strings.TrimSpace(string(f)) }

// IsEmpty reports whether the value is absent or whitespace.
func (f FlexString) IsEmpty() bool { return f.String() == "" }

// FlexInt decodes JSON numbers and numeric strings into an int.
// Zero means absent — legacy ids start at 1.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("cannot decode %q as int", s)
		}
		*f = FlexInt(parsed)
		return nil
	}
	return fmt.Errorf("cannot decode %s as int", string(data))
}

// Int returns the plain value.
func (f FlexInt) Int() int { return int(f) }

// --------------------------------------------------------------------------
// Group record
// --------------------------------------------------------------------------

// GroupRecord is one legacy group export row (one JSON file per record).
type GroupRecord struct {
	LegacyID FlexInt    `json:"igroup_id"`
	Name     FlexString `json:"igroup_name"`
	Type     FlexString `json:"igroup_type"`
	Status   FlexString `json:"igroup_status"`

	Description FlexString `json:"igroup_description"`

	MeetingNight     FlexString `json:"igroup_meeting_night"`
	MeetingTime      FlexString `json:"igroup_meeting_time"`
	MeetingFrequency FlexString `json:"igroup_meeting_frequency"`

	IsMixedGender                FlexString `json:"igroup_is_mixed_gender"`
	AcceptingInitiatedVisitors   FlexString `json:"is_accepting_initiated_visitors"`
	AcceptingUninitiatedVisitors FlexString `json:"is_accepting_uninitiated_visitors"`

	AreaName        FlexString `json:"area_name"`
	AreaLegacyID    FlexInt    `json:"area_id"`
	CommunityName   FlexString `json:"community_name"`
	CommunityLegacy FlexInt    `json:"community_id"`

	ContactUID FlexInt `json:"contact_uid"`

	// Raw preserves the original document verbatim for the audit field.
	Raw map[string]any `json:"-"`
}

// DecodeGroupRecord parses and boundary-checks one legacy group file.
// Records without a name are quarantined: there is nothing to import.
func DecodeGroupRecord(data []byte) (*GroupRecord, error) {
	var rec GroupRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse legacy group record: %w", err)
	}
	if rec.Name.IsEmpty() {
		return nil, fmt.Errorf("legacy group record has no igroup_name")
	}
	if err := json.Unmarshal(data, &rec.Raw); err != nil {
		return nil, fmt.Errorf("parse legacy group record: %w", err)
	}
	return &rec, nil
}

// --------------------------------------------------------------------------
// Person / venue / warrior import records
// --------------------------------------------------------------------------

// PersonRecord is one person row prepared for import, referencing
// target-schema ids that must already exist.
type PersonRecord struct {
	ID          string     `json:"id"`
	FirstName   FlexString `json:"first_name"`
	LastName    FlexString `json:"last_name"`
	Email       FlexString `json:"email"`
	Phone       FlexString `json:"phone"`
	AreaID      string     `json:"area_id"`
	CommunityID string     `json:"community_id"`
	LegacyUID   FlexInt    `json:"legacy_uid"`
}

// DecodePersonRecord parses and boundary-checks one person import file.
func DecodePersonRecord(data []byte) (*PersonRecord, error) {
	var rec PersonRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse person record: %w", err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("person record has no id")
	}
	if rec.FirstName.IsEmpty() && rec.LastName.IsEmpty() {
		return nil, fmt.Errorf("person record %s has no name", rec.ID)
	}
	return &rec, nil
}

// VenueRecord is one venue row prepared for import.
type VenueRecord struct {
	ID          string     `json:"id"`
	Name        FlexString `json:"name"`
	Address     FlexString `json:"address"`
	City        FlexString `json:"city"`
	Region      FlexString `json:"region"`
	PostalCode  FlexString `json:"postal_code"`
	Country     FlexString `json:"country"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	AreaID      string     `json:"area_id"`
	CommunityID string     `json:"community_id"`
}

// DecodeVenueRecord parses and boundary-checks one venue import file.
func DecodeVenueRecord(data []byte) (*VenueRecord, error) {
	var rec VenueRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse venue record: %w", err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("venue record has no id")
	}
	if rec.Name.IsEmpty() {
		return nil, fmt.Errorf("venue record %s has no name", rec.ID)
	}
	return &rec, nil
}

// WarriorRecord is one warrior row prepared for import: the person fields
// plus the warrior extension. Written to two tables in one transaction.
type WarriorRecord struct {
	Person PersonRecord `json:"person"`

	AnimalName        FlexString `json:"animal_name"`
	InitiationEventID string     `json:"initiation_event_id"`
	InitiationDate    FlexString `json:"initiation_date"`

	ImportedAt string `json:"imported_at,omitempty"`
}

// DecodeWarriorRecord parses and boundary-checks one warrior import file.
func DecodeWarriorRecord(data []byte) (*WarriorRecord, error) {
	var rec WarriorRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse warrior record: %w", err)
	}
	if rec.Person.ID == "" {
		return nil, fmt.Errorf("warrior record has no person id")
	}
	return &rec, nil
}

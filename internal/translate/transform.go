package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// ParseBool converts legacy tri-state strings to a boolean. Anything not
// recognized as truthy is false — the exports contain "yes", "Yes", "1",
// "true", numeric 1, and plain garbage.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "1", "true":
		return true
	default:
		return false
	}
}

// ParseContactBool is ParseBool plus the literal "contact", which the
// legacy visitor-acceptance fields use to mean "yes, but ask first".
func ParseContactBool(v string) bool {
	if strings.EqualFold(strings.TrimSpace(v), "contact") {
		return true
	}
	return ParseBool(v)
}

// RequiresContact is derived, not copied: true iff either visitor field
// is the literal "contact".
func RequiresContact(initiated, uninitiated string) bool {
	isContact := func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), "contact")
	}
	return isContact(initiated) || isContact(uninitiated)
}

// BuildScheduleDescription joins frequency, night, and time into a
// human-readable line, skipping absent parts. All parts absent yields nil,
// never an empty string.
//
//	BuildScheduleDescription("Weekly", "Monday", "7:00 PM")
//	  -> "Weekly on Monday at 7:00 PM"
func BuildScheduleDescription(frequency, night, timeOfDay string) *string {
	var parts []string
	if s := strings.TrimSpace(frequency); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(night); s != "" {
		parts = append(parts, "on "+s)
	}
	if s := strings.TrimSpace(timeOfDay); s != "" {
		parts = append(parts, "at "+s)
	}
	if len(parts) == 0 {
		return nil
	}
	desc := strings.Join(parts, " ")
	return &desc
}

// BuildBaseGroup normalizes the fields shared by both target shapes.
// Every translated group gets a fresh UUID — legacy numeric ids are never
// reused as identifiers, only kept inside the audit copy.
func BuildBaseGroup(rec *legacy.GroupRecord) model.Group {
	now := time.Now().UTC()
	var desc *string
	if !rec.Description.IsEmpty() {
		d := rec.Description.String()
		desc = &d
	}
	return model.Group{
		ID:          uuid.New(),
		Name:        rec.Name.String(),
		Description: desc,

		AcceptsInitiatedVisitors:   ParseContactBool(rec.AcceptingInitiatedVisitors.String()),
		AcceptsUninitiatedVisitors: ParseContactBool(rec.AcceptingUninitiatedVisitors.String()),
		RequiresContactBeforeVisit: RequiresContact(
			rec.AcceptingInitiatedVisitors.String(),
			rec.AcceptingUninitiatedVisitors.String(),
		),
		IsMixedGender: ParseBool(rec.IsMixedGender.String()),

		// Recurrence expansion is a future feature; the structured list
		// stays empty and the description carries the legacy schedule.
		ScheduleEvents: []model.TimeRange{},
		ScheduleDescription: BuildScheduleDescription(
			rec.MeetingFrequency.String(),
			rec.MeetingNight.String(),
			rec.MeetingTime.String(),
		),

		IsActive:  !strings.EqualFold(rec.Status.String(), "closed"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TranslateIGroup produces the IGroup shape, embedding the original record
// for audit.
func TranslateIGroup(rec *legacy.GroupRecord) model.IGroup {
	return model.IGroup{
		Group:  BuildBaseGroup(rec),
		Legacy: rec.Raw,
	}
}

// TranslateFGroup produces the FGroup shape with its subtype tag.
func TranslateFGroup(rec *legacy.GroupRecord) model.FGroup {
	return model.FGroup{
		Group:        BuildBaseGroup(rec),
		GroupType:    ClassifyFGroupSubtype(rec),
		Facilitators: []uuid.UUID{},
		Legacy:       rec.Raw,
	}
}

// OutputFileName builds the translated record's file name:
// sanitized name plus the first 8 hex chars of the new id.
func OutputFileName(name string, id uuid.UUID) string {
	sanitized := strings.ToLower(strings.TrimSpace(name))
	sanitized = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, sanitized)
	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		sanitized = "group"
	}
	return fmt.Sprintf("%s_%.8s.json", sanitized, id.String())
}

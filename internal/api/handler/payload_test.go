package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

func fieldNames(details []respond.FieldError) []string {
	var names []string
	for _, d := range details {
		names = append(names, d.Field)
	}
	return names
}

func TestAreaPayloadValidate(t *testing.T) {
	tests := []struct {
		desc    string
		payload AreaPayload
		want    []string
	}{
		{"valid", AreaPayload{Name: "Pacific Northwest", Code: "PNW"}, nil},
		{"missing name", AreaPayload{Code: "PNW"}, []string{"name"}},
		{"whitespace name", AreaPayload{Name: "   ", Code: "PNW"}, []string{"name"}},
		{"missing code", AreaPayload{Name: "Pacific Northwest"}, []string{"code"}},
		{"empty payload", AreaPayload{}, []string{"name", "code"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(tc.payload.validate()))
		})
	}
}

func TestGroupPayloadValidate(t *testing.T) {
	tests := []struct {
		desc    string
		payload GroupPayload
		want    []string
	}{
		{"valid minimal", GroupPayload{Name: "Harbor Circle"}, nil},
		{"valid with point", GroupPayload{Name: "Harbor Circle", Latitude: f(45.5), Longitude: f(-122.6)}, nil},
		{"missing name", GroupPayload{}, []string{"name"}},
		{"lat without lng", GroupPayload{Name: "Harbor Circle", Latitude: f(45.5)}, []string{"latitude"}},
		{"lng without lat", GroupPayload{Name: "Harbor Circle", Longitude: f(-122.6)}, []string{"latitude"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(tc.payload.validate()))
		})
	}
}

func TestValidateFGroupPayload(t *testing.T) {
	tests := []struct {
		desc    string
		payload GroupPayload
		want    []string
	}{
		{"valid typed", GroupPayload{Name: "Cascadia", GroupType: model.FGroupTypeOpen}, nil},
		{"type optional", GroupPayload{Name: "Cascadia"}, nil},
		{"unknown type", GroupPayload{Name: "Cascadia", GroupType: "Secret"}, []string{"group_type"}},
		{"base errors carry through", GroupPayload{GroupType: "Secret"}, []string{"name", "group_type"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(validateFGroupPayload(&tc.payload)))
		})
	}
}

func TestWarriorPayloadValidate(t *testing.T) {
	tests := []struct {
		desc    string
		payload WarriorPayload
		want    []string
	}{
		{"valid", WarriorPayload{FirstName: "Sam", LastName: "Rivers"}, nil},
		{"missing first", WarriorPayload{LastName: "Rivers"}, []string{"first_name"}},
		{"missing last", WarriorPayload{FirstName: "Sam"}, []string{"last_name"}},
		{"whitespace only", WarriorPayload{FirstName: " ", LastName: "\t"}, []string{"first_name", "last_name"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(tc.payload.validate()))
		})
	}
}

func TestUserPayloadValidate(t *testing.T) {
	tests := []struct {
		desc    string
		payload UserPayload
		want    []string
	}{
		{"valid admin", UserPayload{Email: "sam@example.org", Role: "admin"}, nil},
		{"valid viewer", UserPayload{Email: "sam@example.org", Role: "viewer"}, nil},
		{"bad email", UserPayload{Email: "example.org", Role: "editor"}, []string{"email"}},
		{"missing role", UserPayload{Email: "sam@example.org"}, []string{"role"}},
		{"unknown role", UserPayload{Email: "sam@example.org", Role: "owner"}, []string{"role"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(tc.payload.validate()))
		})
	}
}

func TestVenuePayloadValidate(t *testing.T) {
	assert.Empty(t, fieldNames((&VenuePayload{Name: "Lodge"}).validate()))
	assert.Equal(t, []string{"name"}, fieldNames((&VenuePayload{}).validate()))
	assert.Equal(t, []string{"latitude"},
		fieldNames((&VenuePayload{Name: "Lodge", Latitude: f(45.5)}).validate()))
}

func TestEventPayloadValidate(t *testing.T) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	tests := []struct {
		desc    string
		payload EventPayload
		want    []string
	}{
		{"valid", EventPayload{Name: "Fall Gathering", EventType: "gathering", StartDate: &start, EndDate: &end}, nil},
		{"dates optional", EventPayload{Name: "Fall Gathering", EventType: "gathering"}, nil},
		{"missing type", EventPayload{Name: "Fall Gathering"}, []string{"event_type"}},
		{"end before start", EventPayload{Name: "Fall Gathering", EventType: "gathering", StartDate: &end, EndDate: &start}, []string{"end_date"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(tc.payload.validate()))
		})
	}
}

func TestNWTAPayloadValidate(t *testing.T) {
	base := EventPayload{Name: "Spring NWTA", EventType: "nwta"}

	tests := []struct {
		desc    string
		payload NWTAPayload
		want    []string
	}{
		{"valid", NWTAPayload{EventPayload: base, RegistrationStatus: model.NWTARegistrationOpen, ParticipantCapacity: 32}, nil},
		{"status optional", NWTAPayload{EventPayload: base}, nil},
		{"unknown status", NWTAPayload{EventPayload: base, RegistrationStatus: "waitlist"}, []string{"registration_status"}},
		{"negative participant capacity", NWTAPayload{EventPayload: base, ParticipantCapacity: -1}, []string{"participant_capacity"}},
		{"negative staff capacity", NWTAPayload{EventPayload: base, StaffCapacity: -4}, []string{"staff_capacity"}},
		{"event errors carry through", NWTAPayload{RegistrationStatus: "waitlist"}, []string{"name", "event_type", "registration_status"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldNames(tc.payload.validateNWTA()))
		})
	}
}

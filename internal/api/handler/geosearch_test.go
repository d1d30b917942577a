package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcassidy/brotherhood-data/internal/model"
)

func TestHaversineKM(t *testing.T) {
	assert.InDelta(t, 0, haversineKM(47.6, -122.3, 47.6, -122.3), 1e-9)

	// Seattle to Portland, roughly 233 km.
	d := haversineKM(47.6062, -122.3321, 45.5152, -122.6784)
	assert.InDelta(t, 233, d, 5)
}

func TestParseMeetingTime(t *testing.T) {
	tests := []struct {
		desc   string
		want   int
		wantOK bool
	}{
		{"Weekly on Monday at 7:00 PM", 19 * 60, true},
		{"Weekly on Monday at 7 PM", 19 * 60, true},
		{"at 7:30 am", 7*60 + 30, true},
		{"at 12 AM", 0, true},
		{"at 12 PM", 12 * 60, true},
		{"at 19:15", 19*60 + 15, true},
		{"Biweekly on Thursday", 0, false},
		{"", 0, false},
		{"at 99:00", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseMeetingTime(tt.desc)
		require.Equal(t, tt.wantOK, ok, "parseMeetingTime(%q)", tt.desc)
		if ok {
			assert.Equal(t, tt.want, got, "parseMeetingTime(%q)", tt.desc)
		}
	}
}

func TestParseClock(t *testing.T) {
	m, ok := parseClock("7:30 PM")
	require.True(t, ok)
	assert.Equal(t, 19*60+30, m)

	m, ok = parseClock("18:00")
	require.True(t, ok)
	assert.Equal(t, 18*60, m)

	_, ok = parseClock("")
	assert.False(t, ok)
	_, ok = parseClock("soonish")
	assert.False(t, ok)
}

func TestMatchesDay(t *testing.T) {
	assert.True(t, matchesDay("Weekly on Monday at 7:00 PM", "monday"))
	assert.True(t, matchesDay("Weekly on Monday at 7:00 PM", " Monday "))
	assert.True(t, matchesDay("anything", ""))
	assert.False(t, matchesDay("Weekly on Monday at 7:00 PM", "tuesday"))
}

func searchGroup(name, schedule string, lat, lng *float64) model.IGroup {
	var desc *string
	if schedule != "" {
		desc = &schedule
	}
	g := model.IGroup{}
	g.Name = name
	g.ScheduleDescription = desc
	g.Latitude = lat
	g.Longitude = lng
	return g
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestFilterIGroupsDayAndTime(t *testing.T) {
	groups := []model.IGroup{
		searchGroup("Monday Early", "Weekly on Monday at 6:00 PM", nil, nil),
		searchGroup("Monday Late", "Weekly on Monday at 8:30 PM", nil, nil),
		searchGroup("Tuesday", "Weekly on Tuesday at 7:00 PM", nil, nil),
		searchGroup("No Schedule", "", nil, nil),
	}

	results := FilterIGroups(groups, GroupSearchFilter{Day: "monday"})
	require.Len(t, results, 2)

	// Time bounds drop groups without a parseable meeting time.
	results = FilterIGroups(groups, GroupSearchFilter{Before: i(19 * 60)})
	require.Len(t, results, 2)
	assert.Equal(t, "Monday Early", results[0].Name)
	assert.Equal(t, "Tuesday", results[1].Name)

	results = FilterIGroups(groups, GroupSearchFilter{Day: "monday", After: i(19 * 60)})
	require.Len(t, results, 1)
	assert.Equal(t, "Monday Late", results[0].Name)
}

func TestFilterIGroupsRadiusAndSort(t *testing.T) {
	groups := []model.IGroup{
		searchGroup("Portland", "", f(45.5152), f(-122.6784)),
		searchGroup("Seattle", "", f(47.6097), f(-122.3331)),
		searchGroup("Unlocated", "", nil, nil),
	}

	// Search near downtown Seattle with a 50 km radius.
	results := FilterIGroups(groups, GroupSearchFilter{
		Lat: f(47.6062), Lng: f(-122.3321), RadiusKM: 50,
	})
	require.Len(t, results, 1)
	assert.Equal(t, "Seattle", results[0].Name)
	require.NotNil(t, results[0].DistanceKM)
	assert.Less(t, *results[0].DistanceKM, 1.0)

	// No radius: everything located comes back, nearest first.
	results = FilterIGroups(groups, GroupSearchFilter{Lat: f(47.6062), Lng: f(-122.3321)})
	require.Len(t, results, 2)
	assert.Equal(t, "Seattle", results[0].Name)
	assert.Equal(t, "Portland", results[1].Name)
}

func TestFilterIGroupsNoPoint(t *testing.T) {
	groups := []model.IGroup{
		searchGroup("B", "", nil, nil),
		searchGroup("A", "", nil, nil),
	}
	results := FilterIGroups(groups, GroupSearchFilter{})
	require.Len(t, results, 2)
	assert.Equal(t, "B", results[0].Name, "input order kept without a search point")
	assert.Nil(t, results[0].DistanceKM)
}

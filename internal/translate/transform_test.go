package translate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

func TestParseBool(t *testing.T) {
	truthy := []string{"yes", "Yes", "YES", "1", "true", "True", " yes "}
	for _, v := range truthy {
		assert.True(t, ParseBool(v), "ParseBool(%q)", v)
	}
	falsy := []string{"", "no", "No", "y", "n", "0", "false", "contact", "garbage", "2"}
	for _, v := range falsy {
		assert.False(t, ParseBool(v), "ParseBool(%q)", v)
	}
}

func TestParseContactBool(t *testing.T) {
	assert.True(t, ParseContactBool("contact"))
	assert.True(t, ParseContactBool("Contact"))
	assert.True(t, ParseContactBool(" contact "))
	assert.True(t, ParseContactBool("yes"))
	assert.False(t, ParseContactBool("no"))
	assert.False(t, ParseContactBool(""))
}

func TestRequiresContact(t *testing.T) {
	assert.True(t, RequiresContact("contact", "no"))
	assert.True(t, RequiresContact("no", "Contact"))
	assert.True(t, RequiresContact("contact", "contact"))
	assert.False(t, RequiresContact("yes", "yes"))
	assert.False(t, RequiresContact("", ""))
}

func TestBuildScheduleDescription(t *testing.T) {
	full := BuildScheduleDescription("Weekly", "Monday", "7:00 PM")
	require.NotNil(t, full)
	assert.Equal(t, "Weekly on Monday at 7:00 PM", *full)

	noFreq := BuildScheduleDescription("", "Tuesday", "6:30 PM")
	require.NotNil(t, noFreq)
	assert.Equal(t, "on Tuesday at 6:30 PM", *noFreq)

	onlyTime := BuildScheduleDescription("", "", "8 PM")
	require.NotNil(t, onlyTime)
	assert.Equal(t, "at 8 PM", *onlyTime)

	assert.Nil(t, BuildScheduleDescription("", "", ""))
	assert.Nil(t, BuildScheduleDescription("  ", " ", ""))
}

// The canonical legacy record: an open men's circle that accepts initiated
// visitors after contact.
func TestTranslateFGroupScenario(t *testing.T) {
	rec := legacy.GroupRecord{
		LegacyID:                     417,
		Name:                         "Men's Circle - Open",
		Status:                       "active",
		MeetingNight:                 "Monday",
		MeetingTime:                  "7:00 PM",
		MeetingFrequency:             "Weekly",
		IsMixedGender:                "no",
		AcceptingInitiatedVisitors:   "contact",
		AcceptingUninitiatedVisitors: "no",
		AreaName:                     "Pacific Northwest",
		Raw:                          map[string]any{"igroup_id": float64(417)},
	}

	require.Equal(t, KindFGroup, Classify(&rec))

	g := TranslateFGroup(&rec)
	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Equal(t, "Men's Circle - Open", g.Name)
	assert.Equal(t, model.FGroupTypeOpen, g.GroupType)
	assert.True(t, g.IsActive)
	assert.True(t, g.AcceptsInitiatedVisitors, "contact counts as accepting")
	assert.False(t, g.AcceptsUninitiatedVisitors)
	assert.True(t, g.RequiresContactBeforeVisit)
	assert.False(t, g.IsMixedGender)
	require.NotNil(t, g.ScheduleDescription)
	assert.Equal(t, "Weekly on Monday at 7:00 PM", *g.ScheduleDescription)
	assert.NotNil(t, g.ScheduleEvents)
	assert.Empty(t, g.ScheduleEvents)
	assert.Equal(t, rec.Raw, g.Legacy)
}

func TestTranslateIGroupClosedStatus(t *testing.T) {
	rec := legacy.GroupRecord{
		Name:   "Downtown I-Group",
		Status: "Closed",
	}
	g := TranslateIGroup(&rec)
	assert.False(t, g.IsActive)
	assert.Nil(t, g.ScheduleDescription)
	assert.Nil(t, g.Description)
}

func TestOutputFileName(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	assert.Equal(t, "mens-circle---open_a1b2c3d4.json", OutputFileName("Men's Circle - Open", id))
	assert.Equal(t, "group_a1b2c3d4.json", OutputFileName("!!!", id))
	assert.Equal(t, "harbor-circle_a1b2c3d4.json", OutputFileName("  Harbor Circle  ", id))
}

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		exists bool
		force  bool
		want   Decision
	}{
		{exists: false, force: false, want: Insert},
		{exists: false, force: true, want: Insert},
		{exists: true, force: false, want: Skip},
		{exists: true, force: true, want: Update},
	}
	for _, tt := range tests {
		got := Decide(tt.exists, tt.force)
		assert.Equal(t, tt.want, got, "Decide(exists=%v, force=%v)", tt.exists, tt.force)
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "insert", Insert.String())
	assert.Equal(t, "update", Update.String())
	assert.Equal(t, "skip", Skip.String())
}

func TestStatsSummary(t *testing.T) {
	s := &Stats{Processed: 10, Created: 6, Updated: 1, Skipped: 2}
	s.AddFailure("decode %s: bad json", "g17.json")
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, []string{"decode g17.json: bad json"}, s.Failures)
	assert.Equal(t, "processed=10 created=6 updated=1 skipped=2 errors=1", s.Summary())
}

func TestStatsSummaryGroups(t *testing.T) {
	s := &Stats{
		Processed:                3,
		Created:                  3,
		IGroupsCreated:           2,
		FGroupsCreated:           1,
		MissingAreaMappings:      1,
		MissingCommunityMappings: 0,
	}
	s.AddSubtype("Open Men's")
	assert.Equal(t,
		"processed=3 created=3 updated=0 skipped=0 errors=0 i_groups=2 f_groups=1 open_men's=1 missing_area_mappings=1 missing_community_mappings=0",
		s.Summary())
}

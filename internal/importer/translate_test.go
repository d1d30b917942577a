package importer

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcassidy/brotherhood-data/internal/mapping"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeSrc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testMappings() Mappings {
	areas := mapping.NewTable([]mapping.Entry{
		{UUID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Pacific Northwest", LegacyID: 12},
	})
	return Mappings{Areas: areas, Communities: mapping.NewTable(nil)}
}

// One malformed file must not stop the run: the good records still come
// out, and the run itself succeeds.
func TestTranslateGroupsBatchResilience(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeSrc(t, srcDir, "g1.json", `{
		"igroup_name": "Men's Circle - Open",
		"igroup_status": "active",
		"igroup_meeting_night": "Monday",
		"igroup_meeting_time": "7:00 PM",
		"igroup_meeting_frequency": "Weekly",
		"is_accepting_initiated_visitors": "contact",
		"area_name": "Pacific Northwest"
	}`)
	writeSrc(t, srcDir, "g2.json", `{
		"igroup_name": "Downtown I-Group",
		"igroup_status": "active",
		"area_name": "Atlantis"
	}`)
	writeSrc(t, srcDir, "g3.json", `{"igroup_id": 3}`)

	stats, err := TranslateGroups(srcDir, dstDir, testMappings(), TranslateOptions{}, testLogger)
	require.NoError(t, err, "per-record failures never fail the run")

	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.IGroupsCreated)
	assert.Equal(t, 1, stats.FGroupsCreated)
	assert.Equal(t, map[string]int{model.FGroupTypeOpen: 1}, stats.Subtypes)

	// "Atlantis" was supplied but unmatched; the f-group's area resolved.
	assert.Equal(t, 1, stats.MissingAreaMappings)
	assert.Equal(t, 0, stats.MissingCommunityMappings)

	fGroups, err := filepath.Glob(filepath.Join(dstDir, "f-groups", "*.json"))
	require.NoError(t, err)
	require.Len(t, fGroups, 1)
	iGroups, err := filepath.Glob(filepath.Join(dstDir, "i-groups", "*.json"))
	require.NoError(t, err)
	require.Len(t, iGroups, 1)

	data, err := os.ReadFile(fGroups[0])
	require.NoError(t, err)
	var g model.FGroup
	require.NoError(t, json.Unmarshal(data, &g))
	assert.Equal(t, "Men's Circle - Open", g.Name)
	assert.Equal(t, model.FGroupTypeOpen, g.GroupType)
	assert.True(t, g.RequiresContactBeforeVisit)
	require.NotNil(t, g.AreaID)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", g.AreaID.String())
	require.NotNil(t, g.ScheduleDescription)
	assert.Equal(t, "Weekly on Monday at 7:00 PM", *g.ScheduleDescription)

	var ig model.IGroup
	data, err = os.ReadFile(iGroups[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &ig))
	assert.Nil(t, ig.AreaID)
}

func TestTranslateGroupsDryRun(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeSrc(t, srcDir, "g1.json", `{"igroup_name": "Harbor Circle"}`)

	stats, err := TranslateGroups(srcDir, dstDir, testMappings(), TranslateOptions{DryRun: true}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Created)

	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run writes nothing")
}

// Re-running a translation against the same destination must not pile up
// duplicate output files: records that already have a translated file are
// skipped, and Force replaces them instead.
func TestTranslateGroupsRerunSkipsExisting(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeSrc(t, srcDir, "g1.json", `{"igroup_name": "Downtown I-Group", "igroup_status": "active"}`)

	first, err := TranslateGroups(srcDir, dstDir, testMappings(), TranslateOptions{}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 0, first.Skipped)

	second, err := TranslateGroups(srcDir, dstDir, testMappings(), TranslateOptions{}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 0, second.IGroupsCreated)

	files, err := filepath.Glob(filepath.Join(dstDir, "i-groups", "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1, "second run must not add a duplicate file")
}

func TestTranslateGroupsForceReplacesExisting(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeSrc(t, srcDir, "g1.json", `{"igroup_name": "Downtown I-Group", "igroup_status": "active"}`)

	_, err := TranslateGroups(srcDir, dstDir, testMappings(), TranslateOptions{}, testLogger)
	require.NoError(t, err)

	forced, err := TranslateGroups(srcDir, dstDir, testMappings(), TranslateOptions{Force: true}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, 1, forced.Created)
	assert.Equal(t, 0, forced.Skipped)

	// The prior file is replaced, never accumulated alongside.
	files, err := filepath.Glob(filepath.Join(dstDir, "i-groups", "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestTranslateGroupsUnreadableSource(t *testing.T) {
	_, err := TranslateGroups(filepath.Join(t.TempDir(), "missing"), t.TempDir(), testMappings(), TranslateOptions{}, testLogger)
	assert.Error(t, err, "an unusable source directory is a run-level failure")
}

// A record with no area data at all is not a warning; only supplied but
// unmappable names count.
func TestTranslateGroupsNoDataIsNotMissing(t *testing.T) {
	srcDir := t.TempDir()
	writeSrc(t, srcDir, "g1.json", `{"igroup_name": "Mountain Group"}`)

	stats, err := TranslateGroups(srcDir, t.TempDir(), testMappings(), TranslateOptions{}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MissingAreaMappings)
	assert.Equal(t, 0, stats.MissingCommunityMappings)
}

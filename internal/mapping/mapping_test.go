package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pnwID     = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	midwestID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func testTable() *Table {
	return NewTable([]Entry{
		{UUID: pnwID, Name: "Pacific Northwest", Code: "PNW", LegacyID: 12},
		{UUID: midwestID, Name: "Midwest", Code: "MW", LegacyID: 42},
	})
}

func TestResolveByName(t *testing.T) {
	id, res := testTable().Resolve("Pacific Northwest", 0)
	assert.Equal(t, pnwID, id)
	assert.Equal(t, ResolvedByName, res)

	// Case and whitespace do not matter.
	id, res = testTable().Resolve("  pacific northwest ", 0)
	assert.Equal(t, pnwID, id)
	assert.Equal(t, ResolvedByName, res)
}

func TestResolveLegacyIDFallback(t *testing.T) {
	// Name misses, legacy id scan hits.
	id, res := testTable().Resolve("Mid-West Region", 42)
	assert.Equal(t, midwestID, id)
	assert.Equal(t, ResolvedByLegacyID, res)

	// Name hit wins even when the legacy id points elsewhere.
	id, res = testTable().Resolve("Midwest", 12)
	assert.Equal(t, midwestID, id)
	assert.Equal(t, ResolvedByName, res)
}

func TestResolveUnresolved(t *testing.T) {
	id, res := testTable().Resolve("", 0)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, UnresolvedNoData, res)

	id, res = testTable().Resolve("Atlantis", 999)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, UnresolvedMissing, res)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pnw.json"),
		[]byte(`{"id": "11111111-1111-1111-1111-111111111111", "name": "Pacific Northwest", "code": "PNW", "legacy_id": 12}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "no-id.json"),
		[]byte(`{"name": "Orphan"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte(`ignored`), 0o644))

	table, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len(), "entries without a UUID are dropped")

	id, res := table.Resolve("pacific northwest", 0)
	assert.Equal(t, pnwID, id)
	assert.Equal(t, ResolvedByName, res)
}

func TestLoadMissingDir(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	_, res := table.Resolve("anything", 1)
	assert.Equal(t, UnresolvedMissing, res)
}

// Package mapping resolves legacy area/community names and numeric ids to
// target-schema UUIDs. Tables are built once per run from the JSON files a
// previous import wrote — a snapshot, not live datastore state.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Entry is one previously-imported area or community.
type Entry struct {
	UUID     uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	LegacyID int       `json:"legacy_id,omitempty"`
}

// Table is an immutable name-keyed lookup with a linear legacy-id fallback.
type Table struct {
	byName  map[string]Entry
	entries []Entry
}

// Resolution classifies a Resolve outcome so callers can tell "no data"
// apart from "data present but unmappable".
type Resolution int

const (
	// ResolvedByName means the name lookup hit.
	ResolvedByName Resolution = iota
	// ResolvedByLegacyID means the legacy-id scan hit.
	ResolvedByLegacyID
	// UnresolvedNoData means the record supplied neither name nor legacy id.
	UnresolvedNoData
	// UnresolvedMissing means data was supplied but no entry matched.
	UnresolvedMissing
)

// NewTable builds a Table from entries. Names are keyed lower-cased and
// trimmed; the last duplicate name wins, matching file-walk order.
func NewTable(entries []Entry) *Table {
	t := &Table{
		byName:  make(map[string]Entry, len(entries)),
		entries: entries,
	}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key != "" {
			t.byName[key] = e
		}
	}
	return t
}

// Load reads every *.json file in dir into a Table. A missing directory is
// not an error — it just yields an empty table (first run, nothing imported
// yet).
func Load(dir string) (*Table, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}

	var entries []Entry
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if e.UUID == uuid.Nil {
			continue
		}
		entries = append(entries, e)
	}
	return NewTable(entries), nil
}

// Len returns the number of loaded entries.
func (t *Table) Len() int { return len(t.entries) }

// Resolve maps a legacy name and/or numeric id to a UUID. Name lookup wins;
// the legacy-id scan is the fallback. Never fails — unresolved references
// come back as uuid.Nil with a Resolution explaining why.
func (t *Table) Resolve(name string, legacyID int) (uuid.UUID, Resolution) {
	hasName := strings.TrimSpace(name) != ""
	if hasName {
		if e, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
			return e.UUID, ResolvedByName
		}
	}
	if legacyID != 0 {
		for _, e := range t.entries {
			if e.LegacyID == legacyID {
				return e.UUID, ResolvedByLegacyID
			}
		}
	}
	if !hasName && legacyID == 0 {
		return uuid.Nil, UnresolvedNoData
	}
	return uuid.Nil, UnresolvedMissing
}

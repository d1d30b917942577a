package importer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/mapping"
	"github.com/tcassidy/brotherhood-data/internal/translate"
)

// TranslateOptions controls the group translation run.
type TranslateOptions struct {
	// DryRun performs every step except writing output files.
	DryRun bool
	// Pretty indents the output JSON.
	Pretty bool
	// Force overwrites an existing output file instead of skipping it.
	Force bool
}

// Mappings holds the reference tables loaded from previously-imported
// areas and communities.
type Mappings struct {
	Areas       *mapping.Table
	Communities *mapping.Table
}

// TranslateGroups walks srcDir, translating each legacy group file into an
// i-group or f-group JSON file under dstDir. Per-file failures are logged
// and counted; only an unreadable source directory fails the run.
func TranslateGroups(srcDir, dstDir string, maps Mappings, opts TranslateOptions, logger *slog.Logger) (*Stats, error) {
	files, err := listJSONFiles(srcDir)
	if err != nil {
		return nil, err
	}

	iGroupDir := filepath.Join(dstDir, "i-groups")
	fGroupDir := filepath.Join(dstDir, "f-groups")
	if !opts.DryRun {
		for _, dir := range []string{iGroupDir, fGroupDir} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir %s: %w", dir, err)
			}
		}
	}

	stats := &Stats{}
	for _, path := range files {
		stats.Processed++

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "file", path, "error", err)
			stats.AddFailure("read %s: %v", filepath.Base(path), err)
			continue
		}

		rec, err := legacy.DecodeGroupRecord(data)
		if err != nil {
			logger.Error("quarantined", "file", path, "error", err)
			stats.AddFailure("decode %s: %v", filepath.Base(path), err)
			continue
		}

		kind := translate.Classify(rec)

		var (
			out     any
			outDir  string
			outName string
			subtype string
		)
		switch kind {
		case translate.KindFGroup:
			g := translate.TranslateFGroup(rec)
			g.AreaID = resolveRef(maps.Areas, rec.AreaName, rec.AreaLegacyID, &stats.MissingAreaMappings)
			g.CommunityID = resolveRef(maps.Communities, rec.CommunityName, rec.CommunityLegacy, &stats.MissingCommunityMappings)
			out = g
			outDir = fGroupDir
			outName = translate.OutputFileName(g.Name, g.ID)
			subtype = g.GroupType
		default:
			g := translate.TranslateIGroup(rec)
			g.AreaID = resolveRef(maps.Areas, rec.AreaName, rec.AreaLegacyID, &stats.MissingAreaMappings)
			g.CommunityID = resolveRef(maps.Communities, rec.CommunityName, rec.CommunityLegacy, &stats.MissingCommunityMappings)
			out = g
			outDir = iGroupDir
			outName = translate.OutputFileName(g.Name, g.ID)
		}

		// Each run mints a fresh id, so prior output for the same group is
		// found by its sanitized-name prefix, not an exact file name.
		existing, _ := filepath.Glob(filepath.Join(outDir, outputPattern(outName)))
		if len(existing) > 0 {
			if !opts.Force {
				logger.Info("skipped existing", "kind", string(kind), "file", filepath.Base(existing[0]))
				stats.Skipped++
				continue
			}
			if !opts.DryRun {
				for _, old := range existing {
					if err := os.Remove(old); err != nil {
						logger.Error("remove failed", "file", old, "error", err)
					}
				}
			}
		}

		if opts.DryRun {
			logger.Info("would write", "kind", string(kind), "file", outName)
		} else {
			var encoded []byte
			if opts.Pretty {
				encoded, err = json.MarshalIndent(out, "", "  ")
			} else {
				encoded, err = json.Marshal(out)
			}
			if err != nil {
				stats.AddFailure("encode %s: %v", filepath.Base(path), err)
				continue
			}

			outPath := filepath.Join(outDir, outName)
			if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
				logger.Error("write failed", "file", outPath, "error", err)
				stats.AddFailure("write %s: %v", outName, err)
				continue
			}
		}

		stats.Created++
		switch kind {
		case translate.KindFGroup:
			stats.FGroupsCreated++
			stats.AddSubtype(subtype)
		default:
			stats.IGroupsCreated++
		}
	}

	logger.Info("translation complete", "summary", stats.Summary())
	return stats, nil
}

// resolveRef maps a legacy name/id pair to a UUID pointer, bumping the
// missing-mapping counter when a supplied name found no entry. Absent data
// resolves to nil silently.
func resolveRef(table *mapping.Table, name legacy.FlexString, legacyID legacy.FlexInt, missing *int) *uuid.UUID {
	if table == nil {
		return nil
	}
	id, res := table.Resolve(name.String(), legacyID.Int())
	switch res {
	case mapping.ResolvedByName, mapping.ResolvedByLegacyID:
		return &id
	case mapping.UnresolvedMissing:
		if !name.IsEmpty() {
			*missing++
		}
	}
	return nil
}

// outputPattern turns a generated output name into a glob matching any
// prior output for the same group, whatever id it was minted under.
func outputPattern(outName string) string {
	base := strings.TrimSuffix(outName, ".json")
	if idx := strings.LastIndex(base, "_"); idx >= 0 {
		base = base[:idx]
	}
	return base + "_*.json"
}

// listJSONFiles returns the *.json files in dir in name order. An
// unreadable directory is a run-level failure.
func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

package importer

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/model"
)

// ImportAreas loads area reference records from srcDir into the datastore.
func ImportAreas(ctx context.Context, store *Store, srcDir string, opts Options, logger *slog.Logger) (*Stats, error) {
	files, err := listJSONFiles(srcDir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, path := range files {
		stats.Processed++
		name := filepath.Base(path)

		var a model.Area
		if err := readJSONFile(path, &a); err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}
		if a.ID == uuid.Nil || a.Name == "" {
			logger.Error("quarantined", "file", name, "error", "missing id or name")
			stats.AddFailure("decode %s: missing id or name", name)
			continue
		}

		exists, err := store.AreaExists(ctx, a.ID.String())
		if err != nil {
			stats.AddFailure("lookup %s: %v", name, err)
			continue
		}
		switch Decide(exists, opts.Force) {
		case Insert:
			if err := store.InsertArea(ctx, &a); err != nil {
				stats.AddFailure("insert %s: %v", name, err)
				continue
			}
			stats.Created++
		case Update:
			if err := store.UpdateArea(ctx, &a); err != nil {
				stats.AddFailure("update %s: %v", name, err)
				continue
			}
			stats.Updated++
		case Skip:
			stats.Skipped++
		}
	}

	logger.Info("areas import complete", "summary", stats.Summary())
	return stats, nil
}

// ImportCommunities loads community reference records from srcDir into the
// datastore. Communities referencing an area are validated against the
// areas table first — areas must be imported before communities.
func ImportCommunities(ctx context.Context, store *Store, srcDir string, opts Options, logger *slog.Logger) (*Stats, error) {
	files, err := listJSONFiles(srcDir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, path := range files {
		stats.Processed++
		name := filepath.Base(path)

		var c model.Community
		if err := readJSONFile(path, &c); err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}
		if c.ID == uuid.Nil || c.Name == "" {
			logger.Error("quarantined", "file", name, "error", "missing id or name")
			stats.AddFailure("decode %s: missing id or name", name)
			continue
		}

		if c.AreaID != nil {
			ok, err := store.AreaExists(ctx, c.AreaID.String())
			if err != nil {
				stats.AddFailure("lookup area for %s: %v", name, err)
				continue
			}
			if !ok {
				logger.Error("validation failed", "file", name, "area_id", c.AreaID)
				stats.AddFailure("validate %s: area_id references missing record %s", name, c.AreaID)
				continue
			}
		}

		exists, err := store.CommunityExists(ctx, c.ID.String())
		if err != nil {
			stats.AddFailure("lookup %s: %v", name, err)
			continue
		}
		switch Decide(exists, opts.Force) {
		case Insert:
			if err := store.InsertCommunity(ctx, &c); err != nil {
				stats.AddFailure("insert %s: %v", name, err)
				continue
			}
			stats.Created++
		case Update:
			if err := store.UpdateCommunity(ctx, &c); err != nil {
				stats.AddFailure("update %s: %v", name, err)
				continue
			}
			stats.Updated++
		case Skip:
			stats.Skipped++
		}
	}

	logger.Info("communities import complete", "summary", stats.Summary())
	return stats, nil
}

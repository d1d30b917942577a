package importer

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// Options controls a database import run.
type Options struct {
	// Force updates existing records instead of skipping them.
	Force bool
}

// ImportPeople walks srcDir and writes each person record to the datastore:
// decode -> validate foreign keys -> decide -> insert/update/skip.
func ImportPeople(ctx context.Context, store *Store, srcDir string, opts Options, logger *slog.Logger) (*Stats, error) {
	files, err := listJSONFiles(srcDir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, path := range files {
		stats.Processed++
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "file", name, "error", err)
			stats.AddFailure("read %s: %v", name, err)
			continue
		}
		rec, err := legacy.DecodePersonRecord(data)
		if err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}

		if err := store.ValidatePersonRefs(ctx, rec); err != nil {
			logger.Error("validation failed", "file", name, "error", err)
			stats.AddFailure("validate %s: %v", name, err)
			continue
		}

		exists, err := store.PersonExists(ctx, rec.ID)
		if err != nil {
			stats.AddFailure("lookup %s: %v", name, err)
			continue
		}
		switch Decide(exists, opts.Force) {
		case Insert:
			if err := store.InsertPerson(ctx, rec); err != nil {
				logger.Error("insert failed", "file", name, "error", err)
				stats.AddFailure("insert %s: %v", name, err)
				continue
			}
			stats.Created++
		case Update:
			if err := store.UpdatePerson(ctx, rec); err != nil {
				logger.Error("update failed", "file", name, "error", err)
				stats.AddFailure("update %s: %v", name, err)
				continue
			}
			stats.Updated++
		case Skip:
			logger.Info("skipped existing", "file", name, "id", rec.ID)
			stats.Skipped++
		}
	}

	logger.Info("people import complete", "summary", stats.Summary())
	return stats, nil
}

// ImportVenues walks srcDir and writes each venue record to the datastore.
func ImportVenues(ctx context.Context, store *Store, srcDir string, opts Options, logger *slog.Logger) (*Stats, error) {
	files, err := listJSONFiles(srcDir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, path := range files {
		stats.Processed++
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			stats.AddFailure("read %s: %v", name, err)
			continue
		}
		rec, err := legacy.DecodeVenueRecord(data)
		if err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}

		if err := store.ValidateVenueRefs(ctx, rec); err != nil {
			logger.Error("validation failed", "file", name, "error", err)
			stats.AddFailure("validate %s: %v", name, err)
			continue
		}

		exists, err := store.VenueExists(ctx, rec.ID)
		if err != nil {
			stats.AddFailure("lookup %s: %v", name, err)
			continue
		}
		switch Decide(exists, opts.Force) {
		case Insert:
			if err := store.InsertVenue(ctx, rec); err != nil {
				stats.AddFailure("insert %s: %v", name, err)
				continue
			}
			stats.Created++
		case Update:
			if err := store.UpdateVenue(ctx, rec); err != nil {
				stats.AddFailure("update %s: %v", name, err)
				continue
			}
			stats.Updated++
		case Skip:
			logger.Info("skipped existing", "file", name, "id", rec.ID)
			stats.Skipped++
		}
	}

	logger.Info("venues import complete", "summary", stats.Summary())
	return stats, nil
}

// ImportWarriors walks srcDir and writes each warrior record: the person
// row and the warrior extension row land in one transaction. The decision
// is made separately per table — a person created by an earlier import
// still gets its missing warrior row.
func ImportWarriors(ctx context.Context, store *Store, srcDir string, opts Options, logger *slog.Logger) (*Stats, error) {
	files, err := listJSONFiles(srcDir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, path := range files {
		stats.Processed++
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			stats.AddFailure("read %s: %v", name, err)
			continue
		}
		rec, err := legacy.DecodeWarriorRecord(data)
		if err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}
		rec.ImportedAt = time.Now().UTC().Format(time.RFC3339)

		if err := store.ValidateWarriorRefs(ctx, rec); err != nil {
			logger.Error("validation failed", "file", name, "error", err)
			stats.AddFailure("validate %s: %v", name, err)
			continue
		}

		personExists, err := store.PersonExists(ctx, rec.Person.ID)
		if err != nil {
			stats.AddFailure("lookup person %s: %v", name, err)
			continue
		}
		warriorExists, err := store.WarriorExists(ctx, rec.Person.ID)
		if err != nil {
			stats.AddFailure("lookup warrior %s: %v", name, err)
			continue
		}

		personDecision := Decide(personExists, opts.Force)
		warriorDecision := Decide(warriorExists, opts.Force)
		if personDecision == Skip && warriorDecision == Skip {
			logger.Info("skipped existing", "file", name, "person_id", rec.Person.ID)
			stats.Skipped++
			continue
		}

		if err := store.WriteWarrior(ctx, rec, personDecision, warriorDecision); err != nil {
			logger.Error("write failed", "file", name, "error", err)
			stats.AddFailure("write %s: %v", name, err)
			continue
		}
		if personDecision == Insert || warriorDecision == Insert {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	logger.Info("warriors import complete", "summary", stats.Summary())
	return stats, nil
}

// ImportGroups loads previously-translated i-group and f-group files from
// srcDir (the translation output directory) into the datastore.
func ImportGroups(ctx context.Context, store *Store, srcDir string, opts Options, logger *slog.Logger) (*Stats, error) {
	stats := &Stats{}

	iFiles, err := listJSONFiles(filepath.Join(srcDir, "i-groups"))
	if err != nil {
		return nil, err
	}
	for _, path := range iFiles {
		stats.Processed++
		name := filepath.Base(path)

		var g model.IGroup
		if err := readJSONFile(path, &g); err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}

		exists, err := store.IGroupExists(ctx, g.ID.String())
		if err != nil {
			stats.AddFailure("lookup %s: %v", name, err)
			continue
		}
		switch Decide(exists, opts.Force) {
		case Insert:
			if err := store.InsertIGroup(ctx, &g); err != nil {
				stats.AddFailure("insert %s: %v", name, err)
				continue
			}
			stats.Created++
			stats.IGroupsCreated++
		case Update:
			if err := store.UpdateIGroup(ctx, &g); err != nil {
				stats.AddFailure("update %s: %v", name, err)
				continue
			}
			stats.Updated++
		case Skip:
			stats.Skipped++
		}
	}

	fFiles, err := listJSONFiles(filepath.Join(srcDir, "f-groups"))
	if err != nil {
		return nil, err
	}
	for _, path := range fFiles {
		stats.Processed++
		name := filepath.Base(path)

		var g model.FGroup
		if err := readJSONFile(path, &g); err != nil {
			logger.Error("quarantined", "file", name, "error", err)
			stats.AddFailure("decode %s: %v", name, err)
			continue
		}

		exists, err := store.FGroupExists(ctx, g.ID.String())
		if err != nil {
			stats.AddFailure("lookup %s: %v", name, err)
			continue
		}
		switch Decide(exists, opts.Force) {
		case Insert:
			if err := store.InsertFGroup(ctx, &g); err != nil {
				stats.AddFailure("insert %s: %v", name, err)
				continue
			}
			stats.Created++
			stats.FGroupsCreated++
			stats.AddSubtype(g.GroupType)
		case Update:
			if err := store.UpdateFGroup(ctx, &g); err != nil {
				stats.AddFailure("update %s: %v", name, err)
				continue
			}
			stats.Updated++
		case Skip:
			stats.Skipped++
		}
	}

	logger.Info("groups import complete", "summary", stats.Summary())
	return stats, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

package importer

import (
	"context"
	"fmt"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
)

// refCheck is one populated reference field to verify before a write.
type refCheck struct {
	field  string
	id     string
	exists func(context.Context, string) (bool, error)
}

// validateRefs verifies each populated reference in order, returning a
// descriptive error for the first missing one. Fail-fast: later fields are
// not checked once one is missing.
func validateRefs(ctx context.Context, checks []refCheck) error {
	for _, c := range checks {
		if c.id == "" {
			continue
		}
		ok, err := c.exists(ctx, c.id)
		if err != nil {
			return fmt.Errorf("check %s: %w", c.field, err)
		}
		if !ok {
			return fmt.Errorf("%s references missing record %s", c.field, c.id)
		}
	}
	return nil
}

// ValidatePersonRefs confirms every populated foreign key on a person
// record points at an existing row.
func (s *Store) ValidatePersonRefs(ctx context.Context, rec *legacy.PersonRecord) error {
	return validateRefs(ctx, []refCheck{
		{"area_id", rec.AreaID, s.AreaExists},
		{"community_id", rec.CommunityID, s.CommunityExists},
	})
}

// ValidateVenueRefs confirms every populated foreign key on a venue record
// points at an existing row.
func (s *Store) ValidateVenueRefs(ctx context.Context, rec *legacy.VenueRecord) error {
	return validateRefs(ctx, []refCheck{
		{"area_id", rec.AreaID, s.AreaExists},
		{"community_id", rec.CommunityID, s.CommunityExists},
	})
}

// ValidateWarriorRefs confirms the person-level references plus the
// initiation event on a warrior record.
func (s *Store) ValidateWarriorRefs(ctx context.Context, rec *legacy.WarriorRecord) error {
	return validateRefs(ctx, []refCheck{
		{"area_id", rec.Person.AreaID, s.AreaExists},
		{"community_id", rec.Person.CommunityID, s.CommunityExists},
		{"initiation_event_id", rec.InitiationEventID, s.EventExists},
	})
}

package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// Store issues the point lookups and writes the import drivers need.
// All statements it references are prepared in internal/db.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --------------------------------------------------------------------------
// Existence checks
// --------------------------------------------------------------------------

func (s *Store) exists(ctx context.Context, stmt, id string) (bool, error) {
	var n int
	err := s.pool.QueryRow(ctx, stmt, id).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", stmt, id, err)
	}
	return true, nil
}

func (s *Store) AreaExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "area_exists", id)
}

func (s *Store) CommunityExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "community_exists", id)
}

func (s *Store) PersonExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "person_exists", id)
}

func (s *Store) WarriorExists(ctx context.Context, personID string) (bool, error) {
	return s.exists(ctx, "warrior_exists", personID)
}

func (s *Store) VenueExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "venue_exists", id)
}

func (s *Store) EventExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "event_exists", id)
}

func (s *Store) IGroupExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "igroup_exists", id)
}

func (s *Store) FGroupExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "fgroup_exists", id)
}

// --------------------------------------------------------------------------
// People
// --------------------------------------------------------------------------

func (s *Store) InsertPerson(ctx context.Context, rec *legacy.PersonRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.PeopleTable+` (
			id, first_name, last_name, email, phone,
			area_id, community_id, legacy_uid, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,true)`,
		rec.ID, rec.FirstName.String(), rec.LastName.String(),
		nilEmpty(rec.Email.String()), nilEmpty(rec.Phone.String()),
		nilEmpty(rec.AreaID), nilEmpty(rec.CommunityID), nilZero(rec.LegacyUID.Int()),
	)
	return err
}

func (s *Store) UpdatePerson(ctx context.Context, rec *legacy.PersonRecord) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE `+config.PeopleTable+` SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			area_id = $6,
			community_id = $7,
			legacy_uid = $8,
			updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.FirstName.String(), rec.LastName.String(),
		nilEmpty(rec.Email.String()), nilEmpty(rec.Phone.String()),
		nilEmpty(rec.AreaID), nilEmpty(rec.CommunityID), nilZero(rec.LegacyUID.Int()),
	)
	return err
}

// --------------------------------------------------------------------------
// Venues
// --------------------------------------------------------------------------

func (s *Store) InsertVenue(ctx context.Context, rec *legacy.VenueRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.VenuesTable+` (
			id, name, address, city, region, postal_code, country,
			latitude, longitude, area_id, community_id, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,true)`,
		rec.ID, rec.Name.String(), nilEmpty(rec.Address.String()),
		nilEmpty(rec.City.String()), nilEmpty(rec.Region.String()),
		nilEmpty(rec.PostalCode.String()), nilEmpty(rec.Country.String()),
		rec.Latitude, rec.Longitude,
		nilEmpty(rec.AreaID), nilEmpty(rec.CommunityID),
	)
	return err
}

func (s *Store) UpdateVenue(ctx context.Context, rec *legacy.VenueRecord) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE `+config.VenuesTable+` SET
			name = $2,
			address = $3,
			city = $4,
			region = $5,
			postal_code = $6,
			country = $7,
			latitude = $8,
			longitude = $9,
			area_id = $10,
			community_id = $11,
			updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.Name.String(), nilEmpty(rec.Address.String()),
		nilEmpty(rec.City.String()), nilEmpty(rec.Region.String()),
		nilEmpty(rec.PostalCode.String()), nilEmpty(rec.Country.String()),
		rec.Latitude, rec.Longitude,
		nilEmpty(rec.AreaID), nilEmpty(rec.CommunityID),
	)
	return err
}

// --------------------------------------------------------------------------
// Warriors — person row plus extension row, one transaction
// --------------------------------------------------------------------------

// WriteWarrior writes the person row and the warrior extension row in a
// single transaction, applying the per-table decisions the driver made.
// Either both rows land or neither does.
func (s *Store) WriteWarrior(ctx context.Context, rec *legacy.WarriorRecord, personDecision, warriorDecision Decision) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	switch personDecision {
	case Insert:
		_, err = tx.Exec(ctx, `
			INSERT INTO `+config.PeopleTable+` (
				id, first_name, last_name, email, phone,
				area_id, community_id, legacy_uid, is_active
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,true)`,
			rec.Person.ID, rec.Person.FirstName.String(), rec.Person.LastName.String(),
			nilEmpty(rec.Person.Email.String()), nilEmpty(rec.Person.Phone.String()),
			nilEmpty(rec.Person.AreaID), nilEmpty(rec.Person.CommunityID),
			nilZero(rec.Person.LegacyUID.Int()),
		)
	case Update:
		_, err = tx.Exec(ctx, `
			UPDATE `+config.PeopleTable+` SET
				first_name = $2, last_name = $3, email = $4, phone = $5,
				area_id = $6, community_id = $7, legacy_uid = $8, updated_at = NOW()
			WHERE id = $1`,
			rec.Person.ID, rec.Person.FirstName.String(), rec.Person.LastName.String(),
			nilEmpty(rec.Person.Email.String()), nilEmpty(rec.Person.Phone.String()),
			nilEmpty(rec.Person.AreaID), nilEmpty(rec.Person.CommunityID),
			nilZero(rec.Person.LegacyUID.Int()),
		)
	}
	if err != nil {
		return fmt.Errorf("write person %s: %w", rec.Person.ID, err)
	}

	switch warriorDecision {
	case Insert:
		_, err = tx.Exec(ctx, `
			INSERT INTO `+config.WarriorsTable+` (
				person_id, animal_name, initiation_event_id, initiation_date, is_active
			) VALUES ($1,$2,$3,$4,true)`,
			rec.Person.ID, nilEmpty(rec.AnimalName.String()),
			nilEmpty(rec.InitiationEventID), nilEmpty(rec.InitiationDate.String()),
		)
	case Update:
		_, err = tx.Exec(ctx, `
			UPDATE `+config.WarriorsTable+` SET
				animal_name = $2,
				initiation_event_id = $3,
				initiation_date = $4,
				updated_at = NOW()
			WHERE person_id = $1`,
			rec.Person.ID, nilEmpty(rec.AnimalName.String()),
			nilEmpty(rec.InitiationEventID), nilEmpty(rec.InitiationDate.String()),
		)
	}
	if err != nil {
		return fmt.Errorf("write warrior %s: %w", rec.Person.ID, err)
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------------------------------
// Groups
// --------------------------------------------------------------------------

func (s *Store) InsertIGroup(ctx context.Context, g *model.IGroup) error {
	legacyJSON, _ := json.Marshal(g.Legacy)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.IGroupsTable+` (
			id, name, description, area_id, community_id, venue_id,
			is_accepting_initiated_visitors, is_accepting_uninitiated_visitors,
			is_requiring_contact_before_visiting, is_mixed_gender,
			schedule_description, is_active, legacy_record
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		g.ID, g.Name, g.Description, g.AreaID, g.CommunityID, g.VenueID,
		g.AcceptsInitiatedVisitors, g.AcceptsUninitiatedVisitors,
		g.RequiresContactBeforeVisit, g.IsMixedGender,
		g.ScheduleDescription, g.IsActive, legacyJSON,
	)
	return err
}

func (s *Store) UpdateIGroup(ctx context.Context, g *model.IGroup) error {
	legacyJSON, _ := json.Marshal(g.Legacy)
	_, err := s.pool.Exec(ctx, `
		UPDATE `+config.IGroupsTable+` SET
			name = $2, description = $3, area_id = $4, community_id = $5, venue_id = $6,
			is_accepting_initiated_visitors = $7, is_accepting_uninitiated_visitors = $8,
			is_requiring_contact_before_visiting = $9, is_mixed_gender = $10,
			schedule_description = $11, is_active = $12, legacy_record = $13,
			updated_at = NOW()
		WHERE id = $1`,
		g.ID, g.Name, g.Description, g.AreaID, g.CommunityID, g.VenueID,
		g.AcceptsInitiatedVisitors, g.AcceptsUninitiatedVisitors,
		g.RequiresContactBeforeVisit, g.IsMixedGender,
		g.ScheduleDescription, g.IsActive, legacyJSON,
	)
	return err
}

func (s *Store) InsertFGroup(ctx context.Context, g *model.FGroup) error {
	legacyJSON, _ := json.Marshal(g.Legacy)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.FGroupsTable+` (
			id, name, description, group_type, area_id, community_id, venue_id,
			is_accepting_initiated_visitors, is_accepting_uninitiated_visitors,
			is_requiring_contact_before_visiting, is_mixed_gender,
			schedule_description, is_active, legacy_record
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		g.ID, g.Name, g.Description, g.GroupType, g.AreaID, g.CommunityID, g.VenueID,
		g.AcceptsInitiatedVisitors, g.AcceptsUninitiatedVisitors,
		g.RequiresContactBeforeVisit, g.IsMixedGender,
		g.ScheduleDescription, g.IsActive, legacyJSON,
	)
	return err
}

func (s *Store) UpdateFGroup(ctx context.Context, g *model.FGroup) error {
	legacyJSON, _ := json.Marshal(g.Legacy)
	_, err := s.pool.Exec(ctx, `
		UPDATE `+config.FGroupsTable+` SET
			name = $2, description = $3, group_type = $4, area_id = $5,
			community_id = $6, venue_id = $7,
			is_accepting_initiated_visitors = $8, is_accepting_uninitiated_visitors = $9,
			is_requiring_contact_before_visiting = $10, is_mixed_gender = $11,
			schedule_description = $12, is_active = $13, legacy_record = $14,
			updated_at = NOW()
		WHERE id = $1`,
		g.ID, g.Name, g.Description, g.GroupType, g.AreaID, g.CommunityID, g.VenueID,
		g.AcceptsInitiatedVisitors, g.AcceptsUninitiatedVisitors,
		g.RequiresContactBeforeVisit, g.IsMixedGender,
		g.ScheduleDescription, g.IsActive, legacyJSON,
	)
	return err
}

// --------------------------------------------------------------------------
// Areas / communities (geo reference import)
// --------------------------------------------------------------------------

func (s *Store) InsertArea(ctx context.Context, a *model.Area) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.AreasTable+` (id, name, code, legacy_id, is_active)
		VALUES ($1,$2,$3,$4,true)`,
		a.ID, a.Name, a.Code, a.LegacyID,
	)
	return err
}

func (s *Store) UpdateArea(ctx context.Context, a *model.Area) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE `+config.AreasTable+` SET
			name = $2, code = $3, legacy_id = $4, updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.Name, a.Code, a.LegacyID,
	)
	return err
}

func (s *Store) InsertCommunity(ctx context.Context, c *model.Community) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.CommunitiesTable+` (id, area_id, name, code, legacy_id, is_active)
		VALUES ($1,$2,$3,$4,$5,true)`,
		c.ID, c.AreaID, c.Name, c.Code, c.LegacyID,
	)
	return err
}

func (s *Store) UpdateCommunity(ctx context.Context, c *model.Community) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE `+config.CommunitiesTable+` SET
			area_id = $2, name = $3, code = $4, legacy_id = $5, updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.AreaID, c.Name, c.Code, c.LegacyID,
	)
	return err
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nilZero returns nil for zero ints (absent legacy ids map to SQL NULL).
func nilZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

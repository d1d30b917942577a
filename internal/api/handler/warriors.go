package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// WarriorView is the joined person + warrior-extension shape the admin UI
// works with.
type WarriorView struct {
	model.Person

	AnimalName        *string    `json:"animal_name"`
	InitiationEventID *uuid.UUID `json:"initiation_event_id"`
	InitiationDate    *time.Time `json:"initiation_date"`
}

// WarriorPayload is the create/update body for warriors.
type WarriorPayload struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`

	AnimalName        *string    `json:"animal_name"`
	InitiationEventID *uuid.UUID `json:"initiation_event_id"`
	InitiationDate    *time.Time `json:"initiation_date"`
}

func (p *WarriorPayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if strings.TrimSpace(p.FirstName) == "" {
		details = append(details, respond.FieldError{Field: "first_name", Message: "first_name is required"})
	}
	if strings.TrimSpace(p.LastName) == "" {
		details = append(details, respond.FieldError{Field: "last_name", Message: "last_name is required"})
	}
	return details
}

// checkWarriorRefs validates area, community, and initiation-event
// references, fail-fast on the first missing one.
func (h *Handler) checkWarriorRefs(w http.ResponseWriter, r *http.Request, p *WarriorPayload) bool {
	refs := []struct {
		field string
		stmt  string
		id    *uuid.UUID
	}{
		{"area_id", "area_exists", p.AreaID},
		{"community_id", "community_exists", p.CommunityID},
		{"initiation_event_id", "event_exists", p.InitiationEventID},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		var n int
		err := h.pool.QueryRow(r.Context(), ref.stmt, ref.id).Scan(&n)
		if noRows(err) {
			respond.ValidationError(w, []respond.FieldError{
				{Field: ref.field, Message: "referenced record does not exist"},
			})
			return false
		}
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return false
		}
	}
	return true
}

const warriorColumns = `p.id, p.first_name, p.last_name, p.email, p.phone,
	p.area_id, p.community_id, p.legacy_uid, p.is_active, p.created_at, p.updated_at,
	w.animal_name, w.initiation_event_id, w.initiation_date`

const warriorFrom = config.PeopleTable + ` p JOIN ` + config.WarriorsTable + ` w ON w.person_id = p.id`

func scanWarrior(row interface{ Scan(...any) error }) (WarriorView, error) {
	var v WarriorView
	err := row.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Phone,
		&v.AreaID, &v.CommunityID, &v.LegacyUID, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		&v.AnimalName, &v.InitiationEventID, &v.InitiationDate)
	return v, err
}

func (h *Handler) ListWarriors(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + warriorColumns + ` FROM ` + warriorFrom + ` WHERE w.is_active = true`
	var args []any
	if areaFilter := r.URL.Query().Get("area_id"); areaFilter != "" {
		args = append(args, areaFilter)
		query += " AND p.area_id = $1"
	}
	query += " ORDER BY p.last_name, p.first_name"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	warriors := []WarriorView{}
	for rows.Next() {
		v, err := scanWarrior(rows)
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		warriors = append(warriors, v)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.List(w, warriors, len(warriors))
}

func (h *Handler) GetWarrior(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := scanWarrior(h.pool.QueryRow(r.Context(),
		`SELECT `+warriorColumns+` FROM `+warriorFrom+` WHERE p.id = $1`, id))
	if noRows(err) {
		respond.NotFound(w, "warrior not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, v)
}

// CreateWarrior writes the person row and the warrior extension row in a
// single transaction so a failure on the second write leaves nothing
// behind.
func (h *Handler) CreateWarrior(w http.ResponseWriter, r *http.Request) {
	var p WarriorPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkWarriorRefs(w, r, &p) {
		return
	}

	ctx := r.Context()
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer tx.Rollback(ctx)

	id := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO `+config.PeopleTable+` (
			id, first_name, last_name, email, phone, area_id, community_id, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,true)`,
		id, strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName),
		p.Email, p.Phone, p.AreaID, p.CommunityID)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO `+config.WarriorsTable+` (
			person_id, animal_name, initiation_event_id, initiation_date, is_active
		) VALUES ($1,$2,$3,$4,true)`,
		id, p.AnimalName, p.InitiationEventID, p.InitiationDate)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	v, err := scanWarrior(h.pool.QueryRow(ctx,
		`SELECT `+warriorColumns+` FROM `+warriorFrom+` WHERE p.id = $1`, id))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Created(w, v)
}

func (h *Handler) UpdateWarrior(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p WarriorPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkWarriorRefs(w, r, &p) {
		return
	}

	ctx := r.Context()
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE `+config.PeopleTable+` SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			area_id = $6, community_id = $7, updated_at = NOW()
		WHERE id = $1`,
		id, strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName),
		p.Email, p.Phone, p.AreaID, p.CommunityID)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "warrior not found")
		return
	}
	tag, err = tx.Exec(ctx, `
		UPDATE `+config.WarriorsTable+` SET
			animal_name = $2, initiation_event_id = $3, initiation_date = $4,
			updated_at = NOW()
		WHERE person_id = $1`,
		id, p.AnimalName, p.InitiationEventID, p.InitiationDate)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "warrior not found")
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	v, err := scanWarrior(h.pool.QueryRow(ctx,
		`SELECT `+warriorColumns+` FROM `+warriorFrom+` WHERE p.id = $1`, id))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, v)
}

// ArchiveWarrior deactivates the warrior extension; the person record
// stays active.
func (h *Handler) ArchiveWarrior(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.WarriorsTable+` SET
			is_active = false, updated_at = NOW()
		WHERE person_id = $1 AND is_active = true`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "warrior not found")
		return
	}
	respond.Deleted(w, "warrior archived")
}

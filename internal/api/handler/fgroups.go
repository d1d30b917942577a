package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

var fGroupTypes = map[string]bool{
	model.FGroupTypeMixed:  true,
	model.FGroupTypeOpen:   true,
	model.FGroupTypeClosed: true,
	model.FGroupTypeMens:   true,
}

func validateFGroupPayload(p *GroupPayload) []respond.FieldError {
	details := p.validate()
	if p.GroupType != "" && !fGroupTypes[p.GroupType] {
		details = append(details, respond.FieldError{Field: "group_type", Message: "unknown group type"})
	}
	return details
}

const fGroupColumns = `id, name, description, group_type, area_id, community_id, venue_id,
	is_accepting_initiated_visitors, is_accepting_uninitiated_visitors,
	is_requiring_contact_before_visiting, is_mixed_gender,
	schedule_description, latitude, longitude, is_active, created_at, updated_at`

func scanFGroup(row interface{ Scan(...any) error }) (model.FGroup, error) {
	var g model.FGroup
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.GroupType,
		&g.AreaID, &g.CommunityID, &g.VenueID,
		&g.AcceptsInitiatedVisitors, &g.AcceptsUninitiatedVisitors,
		&g.RequiresContactBeforeVisit, &g.IsMixedGender,
		&g.ScheduleDescription, &g.Latitude, &g.Longitude,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	g.ScheduleEvents = []model.TimeRange{}
	if g.Facilitators == nil {
		g.Facilitators = []uuid.UUID{}
	}
	return g, err
}

func (h *Handler) ListFGroups(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + fGroupColumns + ` FROM ` + config.FGroupsTable + ` WHERE is_active = true`
	var args []any
	if typeFilter := r.URL.Query().Get("group_type"); typeFilter != "" {
		args = append(args, typeFilter)
		query += " AND group_type = $1"
	}
	query += " ORDER BY name"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	groups := []model.FGroup{}
	for rows.Next() {
		g, err := scanFGroup(rows)
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.List(w, groups, len(groups))
}

func (h *Handler) GetFGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := scanFGroup(h.pool.QueryRow(r.Context(),
		`SELECT `+fGroupColumns+` FROM `+config.FGroupsTable+` WHERE id = $1`, id))
	if noRows(err) {
		respond.NotFound(w, "f-group not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, g)
}

func (h *Handler) CreateFGroup(w http.ResponseWriter, r *http.Request) {
	var p GroupPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := validateFGroupPayload(&p); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkAreaRef(w, r, p.AreaID) {
		return
	}
	groupType := p.GroupType
	if groupType == "" {
		groupType = model.FGroupTypeMens
	}

	g, err := scanFGroup(h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.FGroupsTable+` (
			id, name, description, group_type, area_id, community_id, venue_id,
			is_accepting_initiated_visitors, is_accepting_uninitiated_visitors,
			is_requiring_contact_before_visiting, is_mixed_gender,
			schedule_description, latitude, longitude, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,true)
		RETURNING `+fGroupColumns,
		uuid.New(), strings.TrimSpace(p.Name), p.Description, groupType,
		p.AreaID, p.CommunityID, p.VenueID,
		p.AcceptsInitiatedVisitors, p.AcceptsUninitiatedVisitors,
		p.RequiresContactBeforeVisit, p.IsMixedGender,
		p.ScheduleDescription, p.Latitude, p.Longitude,
	))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Created(w, g)
}

func (h *Handler) UpdateFGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p GroupPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := validateFGroupPayload(&p); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkAreaRef(w, r, p.AreaID) {
		return
	}
	groupType := p.GroupType
	if groupType == "" {
		groupType = model.FGroupTypeMens
	}

	g, err := scanFGroup(h.pool.QueryRow(r.Context(), `
		UPDATE `+config.FGroupsTable+` SET
			name = $2, description = $3, group_type = $4, area_id = $5,
			community_id = $6, venue_id = $7,
			is_accepting_initiated_visitors = $8, is_accepting_uninitiated_visitors = $9,
			is_requiring_contact_before_visiting = $10, is_mixed_gender = $11,
			schedule_description = $12, latitude = $13, longitude = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+fGroupColumns,
		id, strings.TrimSpace(p.Name), p.Description, groupType,
		p.AreaID, p.CommunityID, p.VenueID,
		p.AcceptsInitiatedVisitors, p.AcceptsUninitiatedVisitors,
		p.RequiresContactBeforeVisit, p.IsMixedGender,
		p.ScheduleDescription, p.Latitude, p.Longitude,
	))
	if noRows(err) {
		respond.NotFound(w, "f-group not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, g)
}

func (h *Handler) ArchiveFGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.FGroupsTable+` SET
			is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "f-group not found")
		return
	}
	respond.Deleted(w, "f-group archived")
}

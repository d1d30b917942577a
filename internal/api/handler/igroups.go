package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// GroupPayload is the create/update body shared by i-groups and f-groups.
type GroupPayload struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
	VenueID     *uuid.UUID `json:"venue_id"`

	AcceptsInitiatedVisitors   bool `json:"is_accepting_initiated_visitors"`
	AcceptsUninitiatedVisitors bool `json:"is_accepting_uninitiated_visitors"`
	RequiresContactBeforeVisit bool `json:"is_requiring_contact_before_visiting"`
	IsMixedGender              bool `json:"is_mixed_gender"`

	ScheduleDescription *string  `json:"schedule_description"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`

	// GroupType applies to f-groups only.
	GroupType string `json:"group_type,omitempty"`
}

func (p *GroupPayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if strings.TrimSpace(p.Name) == "" {
		details = append(details, respond.FieldError{Field: "name", Message: "name is required"})
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		details = append(details, respond.FieldError{Field: "latitude", Message: "latitude and longitude must be set together"})
	}
	return details
}

const iGroupColumns = `id, name, description, area_id, community_id, venue_id,
	is_accepting_initiated_visitors, is_accepting_uninitiated_visitors,
	is_requiring_contact_before_visiting, is_mixed_gender,
	schedule_description, latitude, longitude, is_active, created_at, updated_at`

func scanIGroup(row interface{ Scan(...any) error }) (model.IGroup, error) {
	var g model.IGroup
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.AreaID, &g.CommunityID, &g.VenueID,
		&g.AcceptsInitiatedVisitors, &g.AcceptsUninitiatedVisitors,
		&g.RequiresContactBeforeVisit, &g.IsMixedGender,
		&g.ScheduleDescription, &g.Latitude, &g.Longitude,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	g.ScheduleEvents = []model.TimeRange{}
	return g, err
}

// SearchIGroups lists i-groups with optional filters. area_id and
// community_id filter in SQL; lat/lng/radius_km and day/before/after are
// applied in memory, distance-sorted when a point is given.
// @Summary Search i-groups
// @Tags i-groups
// @Produce json
// @Param area_id query string false "Filter by area"
// @Param lat query number false "Search point latitude"
// @Param lng query number false "Search point longitude"
// @Param radius_km query number false "Radius around the search point"
// @Param day query string false "Meeting day (weekday name)"
// @Param before query string false "Meeting starts at or before (e.g. 8:00 PM)"
// @Param after query string false "Meeting starts at or after (e.g. 6:00 PM)"
// @Success 200 {object} respond.Envelope
// @Router /i-groups [get]
func (h *Handler) SearchIGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := `SELECT ` + iGroupColumns + ` FROM ` + config.IGroupsTable + ` WHERE is_active = true`
	var args []any
	if areaFilter := q.Get("area_id"); areaFilter != "" {
		args = append(args, areaFilter)
		query += " AND area_id = $1"
	}
	if communityFilter := q.Get("community_id"); communityFilter != "" {
		args = append(args, communityFilter)
		if len(args) == 1 {
			query += " AND community_id = $1"
		} else {
			query += " AND community_id = $2"
		}
	}
	query += " ORDER BY name"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	groups := []model.IGroup{}
	for rows.Next() {
		g, err := scanIGroup(rows)
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

	filter := GroupSearchFilter{
		Lat: parseFloat(q.Get("lat")),
		Lng: parseFloat(q.Get("lng")),
		Day: q.Get("day"),
	}
	if radius := parseFloat(q.Get("radius_km")); radius != nil {
		filter.RadiusKM = *radius
	}
	if m, ok := parseClock(q.Get("before")); ok {
		filter.Before = &m
	}
	if m, ok := parseClock(q.Get("after")); ok {
		filter.After = &m
	}
	if (filter.Lat == nil) != (filter.Lng == nil) {
		respond.ValidationError(w, []respond.FieldError{
			{Field: "lat", Message: "lat and lng must be supplied together"},
		})
		return
	}

	results := FilterIGroups(groups, filter)
	respond.List(w, results, len(results))
}

func (h *Handler) GetIGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := scanIGroup(h.pool.QueryRow(r.Context(),
		`SELECT `+iGroupColumns+` FROM `+config.IGroupsTable+` WHERE id = $1`, id))
	if noRows(err) {
		respond.NotFound(w, "i-group not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, g)
}

func (h *Handler) CreateIGroup(w http.ResponseWriter, r *http.Request) {
	var p GroupPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkAreaRef(w, r, p.AreaID) {
		return
	}

	g, err := scanIGroup(h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.IGroupsTable+` (
			id, name, description, area_id, community_id, venue_id,
			is_accepting_initiated_visitors, is_accepting_uninitiated_visitors,
			is_requiring_contact_before_visiting, is_mixed_gender,
			schedule_description, latitude, longitude, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,true)
		RETURNING `+iGroupColumns,
		uuid.New(), strings.TrimSpace(p.Name), p.Description,
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

func (h *Handler) UpdateIGroup(w http.ResponseWriter, r *http.Request) {
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
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkAreaRef(w, r, p.AreaID) {
		return
	}

	g, err := scanIGroup(h.pool.QueryRow(r.Context(), `
		UPDATE `+config.IGroupsTable+` SET
			name = $2, description = $3, area_id = $4, community_id = $5, venue_id = $6,
			is_accepting_initiated_visitors = $7, is_accepting_uninitiated_visitors = $8,
			is_requiring_contact_before_visiting = $9, is_mixed_gender = $10,
			schedule_description = $11, latitude = $12, longitude = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+iGroupColumns,
		id, strings.TrimSpace(p.Name), p.Description,
		p.AreaID, p.CommunityID, p.VenueID,
		p.AcceptsInitiatedVisitors, p.AcceptsUninitiatedVisitors,
		p.RequiresContactBeforeVisit, p.IsMixedGender,
		p.ScheduleDescription, p.Latitude, p.Longitude,
	))
	if noRows(err) {
		respond.NotFound(w, "i-group not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, g)
}

// ArchiveIGroup soft-archives a group; the row stays for history.
func (h *Handler) ArchiveIGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.IGroupsTable+` SET
			is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "i-group not found")
		return
	}
	respond.Deleted(w, "i-group archived")
}

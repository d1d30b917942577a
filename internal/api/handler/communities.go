package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/cache"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// CommunityPayload is the create/update body for communities.
type CommunityPayload struct {
	AreaID   *uuid.UUID `json:"area_id"`
	Name     string     `json:"name"`
	Code     string     `json:"code"`
	LegacyID *int       `json:"legacy_id"`
}

func (p *CommunityPayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if strings.TrimSpace(p.Name) == "" {
		details = append(details, respond.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(p.Code) == "" {
		details = append(details, respond.FieldError{Field: "code", Message: "code is required"})
	}
	return details
}

// checkAreaRef verifies a populated area reference exists. Returns false
// after writing the response when the reference is missing or the check
// fails.
func (h *Handler) checkAreaRef(w http.ResponseWriter, r *http.Request, areaID *uuid.UUID) bool {
	if areaID == nil {
		return true
	}
	var n int
	err := h.pool.QueryRow(r.Context(), "area_exists", areaID).Scan(&n)
	if noRows(err) {
		respond.ValidationError(w, []respond.FieldError{
			{Field: "area_id", Message: "referenced area does not exist"},
		})
		return false
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return false
	}
	return true
}

// ListCommunities returns communities, optionally filtered by area_id or
// is_active.
// @Summary List communities
// @Tags communities
// @Produce json
// @Param area_id query string false "Filter by area"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} respond.Envelope
// @Router /communities [get]
func (h *Handler) ListCommunities(w http.ResponseWriter, r *http.Request) {
	areaFilter := r.URL.Query().Get("area_id")
	activeFilter := r.URL.Query().Get("is_active")
	cacheKey := "communities:list:" + areaFilter + ":" + activeFilter

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.NotModified(w, etag)
			return
		}
		respond.RawJSON(w, data, etag, true)
		return
	}

	query := `SELECT id, area_id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at
		FROM ` + config.CommunitiesTable
	var conds []string
	var args []any
	if areaFilter != "" {
		args = append(args, areaFilter)
		conds = append(conds, "area_id = $1")
	}
	if activeFilter != "" {
		args = append(args, activeFilter == "true")
		if len(args) == 1 {
			conds = append(conds, "is_active = $1")
		} else {
			conds = append(conds, "is_active = $2")
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	communities := []model.Community{}
	for rows.Next() {
		var c model.Community
		if err := rows.Scan(&c.ID, &c.AreaID, &c.Name, &c.Code, &c.LegacyID,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		communities = append(communities, c)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	count := len(communities)
	encoded, err := json.Marshal(respond.Envelope{Success: true, Data: communities, Count: &count})
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	etag := h.cache.Set(cacheKey, encoded, cache.TTLReference)
	respond.RawJSON(w, encoded, etag, false)
}

// GetCommunity returns one community by id.
// @Summary Get community
// @Tags communities
// @Produce json
// @Param id path string true "Community id"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /communities/{id} [get]
func (h *Handler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var c model.Community
	err = h.pool.QueryRow(r.Context(), "community_by_id", id).Scan(
		&c.ID, &c.AreaID, &c.Name, &c.Code, &c.LegacyID,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if noRows(err) {
		respond.NotFound(w, "community not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, c)
}

// CreateCommunity creates a new community.
// @Summary Create community
// @Tags communities
// @Accept json
// @Produce json
// @Success 201 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Router /communities [post]
func (h *Handler) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	var p CommunityPayload
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

	var c model.Community
	err := h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.CommunitiesTable+` (id, area_id, name, code, legacy_id, is_active)
		VALUES ($1,$2,$3,$4,$5,true)
		RETURNING id, area_id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at`,
		uuid.New(), p.AreaID, strings.TrimSpace(p.Name), strings.TrimSpace(p.Code), p.LegacyID,
	).Scan(&c.ID, &c.AreaID, &c.Name, &c.Code, &c.LegacyID,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	h.cache.Invalidate("communities:")
	respond.Created(w, c)
}

// UpdateCommunity overwrites a community by id.
// @Summary Update community
// @Tags communities
// @Accept json
// @Produce json
// @Param id path string true "Community id"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /communities/{id} [put]
func (h *Handler) UpdateCommunity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p CommunityPayload
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

	var c model.Community
	err = h.pool.QueryRow(r.Context(), `
		UPDATE `+config.CommunitiesTable+` SET
			area_id = $2, name = $3, code = $4, legacy_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, area_id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at`,
		id, p.AreaID, strings.TrimSpace(p.Name), strings.TrimSpace(p.Code), p.LegacyID,
	).Scan(&c.ID, &c.AreaID, &c.Name, &c.Code, &c.LegacyID,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if noRows(err) {
		respond.NotFound(w, "community not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	h.cache.Invalidate("communities:")
	respond.Data(w, c)
}

// ArchiveCommunity soft-deletes a community.
// @Summary Archive community
// @Tags communities
// @Produce json
// @Param id path string true "Community id"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /communities/{id} [delete]
func (h *Handler) ArchiveCommunity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.CommunitiesTable+` SET
			is_active = false, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "community not found")
		return
	}

	h.cache.Invalidate("communities:")
	respond.Deleted(w, "community archived")
}

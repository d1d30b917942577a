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

// AreaPayload is the create/update body for areas.
type AreaPayload struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	LegacyID *int   `json:"legacy_id"`
}

func (p *AreaPayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if strings.TrimSpace(p.Name) == "" {
		details = append(details, respond.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(p.Code) == "" {
		details = append(details, respond.FieldError{Field: "code", Message: "code is required"})
	}
	return details
}

// ListAreas returns all areas, optionally filtered by is_active.
// @Summary List areas
// @Tags areas
// @Produce json
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} respond.Envelope
// @Router /areas [get]
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	activeFilter := r.URL.Query().Get("is_active")
	cacheKey := "areas:list:" + activeFilter

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.NotModified(w, etag)
			return
		}
		respond.RawJSON(w, data, etag, true)
		return
	}

	query := `SELECT id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at
		FROM ` + config.AreasTable
	args := []any{}
	if activeFilter != "" {
		query += " WHERE is_active = $1"
		args = append(args, activeFilter == "true")
	}
	query += " ORDER BY name"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	areas := []model.Area{}
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.LegacyID,
			&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt); err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	count := len(areas)
	encoded, err := json.Marshal(respond.Envelope{Success: true, Data: areas, Count: &count})
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	etag := h.cache.Set(cacheKey, encoded, cache.TTLReference)
	respond.RawJSON(w, encoded, etag, false)
}

// GetArea returns one area by id.
// @Summary Get area
// @Tags areas
// @Produce json
// @Param id path string true "Area id"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /areas/{id} [get]
func (h *Handler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var a model.Area
	err = h.pool.QueryRow(r.Context(), "area_by_id", id).Scan(
		&a.ID, &a.Name, &a.Code, &a.LegacyID,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if noRows(err) {
		respond.NotFound(w, "area not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, a)
}

// CreateArea creates a new area.
// @Summary Create area
// @Tags areas
// @Accept json
// @Produce json
// @Success 201 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Router /areas [post]
func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var p AreaPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}

	id := uuid.New()
	var a model.Area
	err := h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.AreasTable+` (id, name, code, legacy_id, is_active)
		VALUES ($1,$2,$3,$4,true)
		RETURNING id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at`,
		id, strings.TrimSpace(p.Name), strings.TrimSpace(p.Code), p.LegacyID,
	).Scan(&a.ID, &a.Name, &a.Code, &a.LegacyID,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	h.cache.Invalidate("areas:")
	respond.Created(w, a)
}

// UpdateArea overwrites an area by id.
// @Summary Update area
// @Tags areas
// @Accept json
// @Produce json
// @Param id path string true "Area id"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /areas/{id} [put]
func (h *Handler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p AreaPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}

	var a model.Area
	err = h.pool.QueryRow(r.Context(), `
		UPDATE `+config.AreasTable+` SET
			name = $2, code = $3, legacy_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at`,
		id, strings.TrimSpace(p.Name), strings.TrimSpace(p.Code), p.LegacyID,
	).Scan(&a.ID, &a.Name, &a.Code, &a.LegacyID,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if noRows(err) {
		respond.NotFound(w, "area not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	h.cache.Invalidate("areas:")
	respond.Data(w, a)
}

// ArchiveArea soft-deletes an area.
// @Summary Archive area
// @Tags areas
// @Produce json
// @Param id path string true "Area id"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /areas/{id} [delete]
func (h *Handler) ArchiveArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.AreasTable+` SET
			is_active = false, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "area not found")
		return
	}

	h.cache.Invalidate("areas:")
	respond.Deleted(w, "area archived")
}

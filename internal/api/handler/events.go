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

// EventPayload is the create/update body for events.
type EventPayload struct {
	Name        string     `json:"name"`
	EventType   string     `json:"event_type"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	VenueID     *uuid.UUID `json:"venue_id"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
}

func (p *EventPayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if strings.TrimSpace(p.Name) == "" {
		details = append(details, respond.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(p.EventType) == "" {
		details = append(details, respond.FieldError{Field: "event_type", Message: "event_type is required"})
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		details = append(details, respond.FieldError{Field: "end_date", Message: "end_date must not precede start_date"})
	}
	return details
}

const eventColumns = `id, name, event_type, start_date, end_date,
	venue_id, area_id, community_id, is_active, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Name, &e.EventType, &e.StartDate, &e.EndDate,
		&e.VenueID, &e.AreaID, &e.CommunityID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + eventColumns + ` FROM ` + config.EventsTable + ` WHERE is_active = true`
	var args []any
	if typeFilter := r.URL.Query().Get("event_type"); typeFilter != "" {
		args = append(args, typeFilter)
		query += " AND event_type = $1"
	}
	query += " ORDER BY start_date DESC NULLS LAST"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.List(w, events, len(events))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := scanEvent(h.pool.QueryRow(r.Context(),
		`SELECT `+eventColumns+` FROM `+config.EventsTable+` WHERE id = $1`, id))
	if noRows(err) {
		respond.NotFound(w, "event not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, e)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var p EventPayload
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

	e, err := scanEvent(h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.EventsTable+` (
			id, name, event_type, start_date, end_date,
			venue_id, area_id, community_id, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,true)
		RETURNING `+eventColumns,
		uuid.New(), strings.TrimSpace(p.Name), p.EventType, p.StartDate, p.EndDate,
		p.VenueID, p.AreaID, p.CommunityID))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Created(w, e)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p EventPayload
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

	e, err := scanEvent(h.pool.QueryRow(r.Context(), `
		UPDATE `+config.EventsTable+` SET
			name = $2, event_type = $3, start_date = $4, end_date = $5,
			venue_id = $6, area_id = $7, community_id = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns,
		id, strings.TrimSpace(p.Name), p.EventType, p.StartDate, p.EndDate,
		p.VenueID, p.AreaID, p.CommunityID))
	if noRows(err) {
		respond.NotFound(w, "event not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, e)
}

func (h *Handler) ArchiveEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.EventsTable+` SET
			is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "event not found")
		return
	}
	respond.Deleted(w, "event archived")
}

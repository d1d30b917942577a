package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// NWTAPayload is the create/update body for NWTA events: the base event
// fields plus staffing and capacity.
type NWTAPayload struct {
	EventPayload

	RegistrationStatus  string     `json:"registration_status"`
	ParticipantCapacity int        `json:"participant_capacity"`
	StaffCapacity       int        `json:"staff_capacity"`
	LeaderID            *uuid.UUID `json:"leader_id"`
}

var nwtaStatuses = map[string]bool{
	model.NWTARegistrationOpen:   true,
	model.NWTARegistrationFull:   true,
	model.NWTARegistrationClosed: true,
}

func (p *NWTAPayload) validateNWTA() []respond.FieldError {
	details := p.EventPayload.validate()
	if p.RegistrationStatus != "" && !nwtaStatuses[p.RegistrationStatus] {
		details = append(details, respond.FieldError{Field: "registration_status", Message: "unknown registration status"})
	}
	if p.ParticipantCapacity < 0 {
		details = append(details, respond.FieldError{Field: "participant_capacity", Message: "capacity must not be negative"})
	}
	if p.StaffCapacity < 0 {
		details = append(details, respond.FieldError{Field: "staff_capacity", Message: "capacity must not be negative"})
	}
	return details
}

const nwtaColumns = `e.id, e.name, e.event_type, e.start_date, e.end_date,
	e.venue_id, e.area_id, e.community_id, e.is_active, e.created_at, e.updated_at,
	n.registration_status, n.participant_capacity, n.participant_count,
	n.staff_capacity, n.staff_count, n.leader_id`

const nwtaFrom = config.EventsTable + ` e JOIN ` + config.NWTAEventsTable + ` n ON n.event_id = e.id`

func scanNWTA(row interface{ Scan(...any) error }) (model.NWTAEvent, error) {
	var e model.NWTAEvent
	err := row.Scan(&e.ID, &e.Name, &e.EventType, &e.StartDate, &e.EndDate,
		&e.VenueID, &e.AreaID, &e.CommunityID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		&e.RegistrationStatus, &e.ParticipantCapacity, &e.ParticipantCount,
		&e.StaffCapacity, &e.StaffCount, &e.LeaderID)
	return e, err
}

func (h *Handler) ListNWTAEvents(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + nwtaColumns + ` FROM ` + nwtaFrom + ` WHERE e.is_active = true`
	var args []any
	if statusFilter := r.URL.Query().Get("registration_status"); statusFilter != "" {
		args = append(args, statusFilter)
		query += " AND n.registration_status = $1"
	}
	query += " ORDER BY e.start_date DESC NULLS LAST"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	events := []model.NWTAEvent{}
	for rows.Next() {
		e, err := scanNWTA(rows)
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

func (h *Handler) GetNWTAEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := scanNWTA(h.pool.QueryRow(r.Context(),
		`SELECT `+nwtaColumns+` FROM `+nwtaFrom+` WHERE e.id = $1`, id))
	if noRows(err) {
		respond.NotFound(w, "NWTA event not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, e)
}

// CreateNWTAEvent writes the base event and the NWTA extension in one
// transaction.
func (h *Handler) CreateNWTAEvent(w http.ResponseWriter, r *http.Request) {
	var p NWTAPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.EventType == "" {
		p.EventType = "nwta"
	}
	if details := p.validateNWTA(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkAreaRef(w, r, p.AreaID) {
		return
	}
	status := p.RegistrationStatus
	if status == "" {
		status = model.NWTARegistrationOpen
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
		INSERT INTO `+config.EventsTable+` (
			id, name, event_type, start_date, end_date,
			venue_id, area_id, community_id, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,true)`,
		id, p.Name, p.EventType, p.StartDate, p.EndDate,
		p.VenueID, p.AreaID, p.CommunityID)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO `+config.NWTAEventsTable+` (
			event_id, registration_status, participant_capacity,
			staff_capacity, leader_id
		) VALUES ($1,$2,$3,$4,$5)`,
		id, status, p.ParticipantCapacity, p.StaffCapacity, p.LeaderID)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	e, err := scanNWTA(h.pool.QueryRow(ctx,
		`SELECT `+nwtaColumns+` FROM `+nwtaFrom+` WHERE e.id = $1`, id))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Created(w, e)
}

func (h *Handler) UpdateNWTAEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p NWTAPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validateNWTA(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if !h.checkAreaRef(w, r, p.AreaID) {
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
		UPDATE `+config.EventsTable+` SET
			name = $2, event_type = $3, start_date = $4, end_date = $5,
			venue_id = $6, area_id = $7, community_id = $8, updated_at = NOW()
		WHERE id = $1`,
		id, p.Name, p.EventType, p.StartDate, p.EndDate,
		p.VenueID, p.AreaID, p.CommunityID)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "NWTA event not found")
		return
	}
	_, err = tx.Exec(ctx, `
		UPDATE `+config.NWTAEventsTable+` SET
			registration_status = COALESCE(NULLIF($2, ''), registration_status),
			participant_capacity = $3, staff_capacity = $4, leader_id = $5
		WHERE event_id = $1`,
		id, p.RegistrationStatus, p.ParticipantCapacity, p.StaffCapacity, p.LeaderID)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	e, err := scanNWTA(h.pool.QueryRow(ctx,
		`SELECT `+nwtaColumns+` FROM `+nwtaFrom+` WHERE e.id = $1`, id))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, e)
}

// RegisterNWTAParticipant adds one participant. Registration flips to
// "full" when the capacity is reached; full or closed events reject new
// registrations.
func (h *Handler) RegisterNWTAParticipant(w http.ResponseWriter, r *http.Request) {
	h.registerNWTA(w, r, "participant_count", "participant_capacity")
}

// RegisterNWTAStaff adds one staff member, with the same capacity rules
// as participants but against the staff columns.
func (h *Handler) RegisterNWTAStaff(w http.ResponseWriter, r *http.Request) {
	h.registerNWTA(w, r, "staff_count", "staff_capacity")
}

func (h *Handler) registerNWTA(w http.ResponseWriter, r *http.Request, countCol, capCol string) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer tx.Rollback(ctx)

	var status string
	var count, capacity int
	err = tx.QueryRow(ctx, `
		SELECT registration_status, `+countCol+`, `+capCol+`
		FROM `+config.NWTAEventsTable+`
		WHERE event_id = $1
		FOR UPDATE`, id).Scan(&status, &count, &capacity)
	if noRows(err) {
		respond.NotFound(w, "NWTA event not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	if status != model.NWTARegistrationOpen {
		respond.Error(w, http.StatusConflict, "registration is "+status)
		return
	}
	if capacity > 0 && count >= capacity {
		respond.Error(w, http.StatusConflict, "event is at capacity")
		return
	}

	count++
	newStatus := status
	if capacity > 0 && count >= capacity && countCol == "participant_count" {
		newStatus = model.NWTARegistrationFull
	}
	_, err = tx.Exec(ctx, `
		UPDATE `+config.NWTAEventsTable+` SET
			`+countCol+` = $2, registration_status = $3
		WHERE event_id = $1`, id, count, newStatus)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}

	e, err := scanNWTA(h.pool.QueryRow(ctx,
		`SELECT `+nwtaColumns+` FROM `+nwtaFrom+` WHERE e.id = $1`, id))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, e)
}

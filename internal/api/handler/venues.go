package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// VenuePayload is the create/update body for venues.
type VenuePayload struct {
	Name        string     `json:"name"`
	Address     *string    `json:"address"`
	City        *string    `json:"city"`
	Region      *string    `json:"region"`
	PostalCode  *string    `json:"postal_code"`
	Country     *string    `json:"country"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	AreaID      *uuid.UUID `json:"area_id"`
	CommunityID *uuid.UUID `json:"community_id"`
}

func (p *VenuePayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if strings.TrimSpace(p.Name) == "" {
		details = append(details, respond.FieldError{Field: "name", Message: "name is required"})
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		details = append(details, respond.FieldError{Field: "latitude", Message: "latitude and longitude must be set together"})
	}
	return details
}

const venueColumns = `id, name, address, city, region, postal_code, country,
	latitude, longitude, area_id, community_id, is_active, created_at, updated_at`

func scanVenue(row interface{ Scan(...any) error }) (model.Venue, error) {
	var v model.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Region, &v.PostalCode,
		&v.Country, &v.Latitude, &v.Longitude, &v.AreaID, &v.CommunityID,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + venueColumns + ` FROM ` + config.VenuesTable
	var args []any
	if areaFilter := r.URL.Query().Get("area_id"); areaFilter != "" {
		query += " WHERE area_id = $1"
		args = append(args, areaFilter)
	}
	query += " ORDER BY name"

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	venues := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.List(w, venues, len(venues))
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := scanVenue(h.pool.QueryRow(r.Context(), "venue_by_id", id))
	if noRows(err) {
		respond.NotFound(w, "venue not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, v)
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var p VenuePayload
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

	v, err := scanVenue(h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.VenuesTable+` (
			id, name, address, city, region, postal_code, country,
			latitude, longitude, area_id, community_id, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,true)
		RETURNING `+venueColumns,
		uuid.New(), strings.TrimSpace(p.Name), p.Address, p.City, p.Region,
		p.PostalCode, p.Country, p.Latitude, p.Longitude, p.AreaID, p.CommunityID,
	))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Created(w, v)
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p VenuePayload
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

	v, err := scanVenue(h.pool.QueryRow(r.Context(), `
		UPDATE `+config.VenuesTable+` SET
			name = $2, address = $3, city = $4, region = $5, postal_code = $6,
			country = $7, latitude = $8, longitude = $9, area_id = $10,
			community_id = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING `+venueColumns,
		id, strings.TrimSpace(p.Name), p.Address, p.City, p.Region,
		p.PostalCode, p.Country, p.Latitude, p.Longitude, p.AreaID, p.CommunityID,
	))
	if noRows(err) {
		respond.NotFound(w, "venue not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, v)
}

// DeleteVenue hard-deletes a venue. Venues are the one resource with no
// archive semantics — a wrong address is just removed.
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(),
		`DELETE FROM `+config.VenuesTable+` WHERE id = $1`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "venue not found")
		return
	}
	respond.Deleted(w, "venue deleted")
}

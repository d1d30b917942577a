package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

// UserPayload is the create/update body for admin users. Authentication
// itself lives with the identity provider; this only manages the mapping
// to people and roles.
type UserPayload struct {
	Email    string     `json:"email"`
	PersonID *uuid.UUID `json:"person_id"`
	Role     string     `json:"role"`
}

var userRoles = map[string]bool{
	"admin":  true,
	"editor": true,
	"viewer": true,
}

func (p *UserPayload) validate() []respond.FieldError {
	var details []respond.FieldError
	if !strings.Contains(p.Email, "@") {
		details = append(details, respond.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if p.Role == "" {
		details = append(details, respond.FieldError{Field: "role", Message: "role is required"})
	} else if !userRoles[p.Role] {
		details = append(details, respond.FieldError{Field: "role", Message: "unknown role"})
	}
	return details
}

const userColumns = `id, email, person_id, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PersonID, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pool.Query(r.Context(),
		`SELECT `+userColumns+` FROM `+config.UsersTable+` ORDER BY email`)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.List(w, users, len(users))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := scanUser(h.pool.QueryRow(r.Context(),
		`SELECT `+userColumns+` FROM `+config.UsersTable+` WHERE id = $1`, id))
	if noRows(err) {
		respond.NotFound(w, "user not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, u)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var p UserPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}
	if p.PersonID != nil {
		var n int
		err := h.pool.QueryRow(r.Context(), "person_exists", p.PersonID).Scan(&n)
		if noRows(err) {
			respond.ValidationError(w, []respond.FieldError{
				{Field: "person_id", Message: "referenced person does not exist"},
			})
			return
		}
		if err != nil {
			respond.ServerError(w, h.logger, err)
			return
		}
	}

	u, err := scanUser(h.pool.QueryRow(r.Context(), `
		INSERT INTO `+config.UsersTable+` (id, email, person_id, role, is_active)
		VALUES ($1,$2,$3,$4,true)
		RETURNING `+userColumns,
		uuid.New(), strings.ToLower(strings.TrimSpace(p.Email)), p.PersonID, p.Role))
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Created(w, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var p UserPayload
	if err := decodeBody(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if details := p.validate(); len(details) > 0 {
		respond.ValidationError(w, details)
		return
	}

	u, err := scanUser(h.pool.QueryRow(r.Context(), `
		UPDATE `+config.UsersTable+` SET
			email = $2, person_id = $3, role = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, strings.ToLower(strings.TrimSpace(p.Email)), p.PersonID, p.Role))
	if noRows(err) {
		respond.NotFound(w, "user not found")
		return
	}
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	respond.Data(w, u)
}

func (h *Handler) ArchiveUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.pool.Exec(r.Context(), `
		UPDATE `+config.UsersTable+` SET
			is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		respond.ServerError(w, h.logger, err)
		return
	}
	if tag.RowsAffected() == 0 {
		respond.NotFound(w, "user not found")
		return
	}
	respond.Deleted(w, "user deactivated")
}

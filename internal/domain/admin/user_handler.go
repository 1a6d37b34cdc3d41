package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/pkg/response"
	"github.com/msrpanel/msr-api/internal/pkg/validator"
)

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	users, err := h.userSvc.List(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, ToUserResponse(u))
	}
	response.OK(w, resp)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	u, err := h.userSvc.Get(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, ToUserResponse(u))
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req CreateUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	u, err := h.userSvc.Create(r.Context(), actor, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Created(w, ToUserResponse(u))
}

// UpdateUser handles PATCH /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	var req UpdateUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	u, err := h.userSvc.Update(r.Context(), actor, id, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, ToUserResponse(u))
}

// DeleteUser handles DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	if err := h.userSvc.Delete(r.Context(), actor, id); err != nil {
		writeDomainError(w, err)
		return
	}
	response.NoContent(w)
}

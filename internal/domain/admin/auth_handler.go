package admin

import (
	"net/http"

	"github.com/msrpanel/msr-api/internal/pkg/errorhandler"
	"github.com/msrpanel/msr-api/internal/pkg/response"
	"github.com/msrpanel/msr-api/internal/pkg/validator"
)

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	u, token, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		case ErrAccountInactive:
			response.Forbidden(w, "Account is inactive")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOGIN_FAILED", "Login failed", err)
		}
		return
	}

	response.OK(w, &LoginResponse{
		Token: token,
		User:  ToUserResponse(u),
	})
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context(), TokenIDFromContext(r.Context())); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOGOUT_FAILED", "Logout failed", err)
		return
	}
	response.NoContent(w)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	response.OK(w, ToUserResponse(actor))
}

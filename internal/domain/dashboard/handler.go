package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msrpanel/msr-api/internal/domain/admin"
	"github.com/msrpanel/msr-api/internal/pkg/errorhandler"
	"github.com/msrpanel/msr-api/internal/pkg/response"
)

// Handler serves dashboard endpoints
type Handler struct {
	service *Service
}

// NewHandler creates the dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the dashboard router. Mounted behind the panel auth
// middleware.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	return r
}

// GetSummary handles GET /summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	actor := admin.ActorFromContext(r.Context())

	summary, err := h.service.Summary(r.Context(), actor)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SUMMARY_FAILED", "Failed to compute summary", err)
		return
	}
	response.OK(w, summary)
}

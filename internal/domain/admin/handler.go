package admin

import (
	"errors"
	"net/http"

	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
	"github.com/msrpanel/msr-api/internal/pkg/imaging"
	"github.com/msrpanel/msr-api/internal/pkg/response"
	"github.com/msrpanel/msr-api/internal/pkg/storage"
)

// Handler serves the panel HTTP surface
type Handler struct {
	authSvc    *AuthService
	userSvc    *UserService
	reportSvc  *ReportService
	jwtSvc     *JWTService
	denylist   TokenDenylist
	users      user.Repository
	idProofs   *storage.S3Storage
	normalizer *imaging.Normalizer
}

// NewHandler creates the panel handler
func NewHandler(
	authSvc *AuthService,
	userSvc *UserService,
	reportSvc *ReportService,
	jwtSvc *JWTService,
	denylist TokenDenylist,
	users user.Repository,
	idProofs *storage.S3Storage,
	normalizer *imaging.Normalizer,
) *Handler {
	return &Handler{
		authSvc:    authSvc,
		userSvc:    userSvc,
		reportSvc:  reportSvc,
		jwtSvc:     jwtSvc,
		denylist:   denylist,
		users:      users,
		idProofs:   idProofs,
		normalizer: normalizer,
	}
}

// Permissions returns the actor's capabilities per module
func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	response.OK(w, &PermissionsResponse{
		Users:   h.userSvc.Permissions(actor),
		Reports: h.reportSvc.Permissions(actor),
	})
}

// writeDomainError maps service sentinel errors onto HTTP responses.
// A row outside the visible set yields the same 404 as a missing row.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		response.Forbidden(w, "Permission denied")
	case errors.Is(err, user.ErrNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, report.ErrNotFound):
		response.NotFound(w, "Report not found")
	case errors.Is(err, user.ErrUsernameTaken):
		response.Conflict(w, "Username already in use")
	case errors.Is(err, user.ErrEmailTaken):
		response.Conflict(w, "Email already in use")
	case errors.Is(err, user.ErrInvalidManager):
		response.BadRequest(w, "Manager must reference a manager-role user")
	case errors.Is(err, report.ErrInvalidStatus):
		response.BadRequest(w, "Invalid report status")
	default:
		response.InternalError(w)
	}
}

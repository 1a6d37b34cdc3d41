package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/pkg/errorhandler"
	"github.com/msrpanel/msr-api/internal/pkg/response"
	"github.com/msrpanel/msr-api/internal/pkg/validator"
)

// maxIDProofSize limits id_proof uploads to 10 MB
const maxIDProofSize = 10 << 20

// ListReports handles GET /reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	reports, err := h.reportSvc.List(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]*ReportResponse, 0, len(reports))
	for _, rep := range reports {
		resp = append(resp, ToReportResponse(rep))
	}
	response.OK(w, resp)
}

// GetReport handles GET /reports/{id}
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Report not found")
		return
	}

	rep, err := h.reportSvc.Get(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, ToReportResponse(rep))
}

// CreateReport handles POST /reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	rep, err := h.reportSvc.Create(r.Context(), actor, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Created(w, ToReportResponse(rep))
}

// UpdateReport handles PATCH /reports/{id}
func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Report not found")
		return
	}

	var req UpdateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	rep, err := h.reportSvc.Update(r.Context(), actor, id, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, ToReportResponse(rep))
}

// DeleteReport handles DELETE /reports/{id}
func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Report not found")
		return
	}

	if err := h.reportSvc.Delete(r.Context(), actor, id); err != nil {
		writeDomainError(w, err)
		return
	}
	response.NoContent(w)
}

// UploadIDProof handles POST /reports/id-proof: multipart image upload,
// normalized and stored, returning the key to reference from a report.
func (h *Handler) UploadIDProof(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	// Only actors who can submit reports need to upload proofs.
	if !h.reportSvc.policy.CanAddReport(actor) {
		response.Forbidden(w, "Permission denied")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxIDProofSize)
	if err := r.ParseMultipartForm(maxIDProofSize); err != nil {
		response.BadRequest(w, "File too large or malformed form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	data, contentType, err := h.normalizer.Normalize(file)
	if err != nil {
		response.BadRequest(w, "File is not a valid image")
		return
	}

	key := fmt.Sprintf("id_proofs/%s/%s.jpg", time.Now().Format("2006/01"), uuid.New())
	if err := h.idProofs.Put(r.Context(), key, data, contentType); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file", err)
		return
	}

	response.Created(w, &UploadResponse{
		Key: key,
		URL: h.idProofs.GetURL(key),
	})
}

package admin

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/access"
	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
)

// ReportService handles policy-gated report management and the
// write-time lifecycle hooks.
type ReportService struct {
	repo   report.Repository
	users  user.Repository
	policy *access.Policy
	// now is the clock for approval stamping, replaceable in tests
	now func() time.Time
}

// NewReportService creates the report management service
func NewReportService(repo report.Repository, users user.Repository, policy *access.Policy) *ReportService {
	return &ReportService{repo: repo, users: users, policy: policy, now: time.Now}
}

// List returns the reports within the actor's visible set
func (s *ReportService) List(ctx context.Context, actor *user.User) ([]*report.Report, error) {
	return s.repo.List(ctx, s.policy.VisibleReports(actor))
}

// Get returns one report. A row outside the actor's visible set is
// reported as missing, not forbidden.
func (s *ReportService) Get(ctx context.Context, actor *user.User, id uuid.UUID) (*report.Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, report.ErrNotFound
	}
	owner, err := s.owner(ctx, rep)
	if err != nil {
		return nil, err
	}
	if !s.policy.VisibleReports(actor).Matches(rep, owner) {
		return nil, report.ErrNotFound
	}
	return rep, nil
}

// Create submits a new report. A staff submission with no owner set is
// stamped with the creating actor, so every staff-created report is
// self-owned.
func (s *ReportService) Create(ctx context.Context, actor *user.User, req *CreateReportRequest) (*report.Report, error) {
	if !s.policy.CanAddReport(actor) {
		return nil, ErrPermissionDenied
	}

	now := s.now()
	rep := &report.Report{
		ID:          uuid.New(),
		ReportName:  req.ReportName,
		ProjectName: req.ProjectName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		IDProofKey:  req.IDProofKey,
		Date:        now,
		Status:      report.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Comment != nil {
		rep.Comment = sql.NullString{String: *req.Comment, Valid: true}
	}
	if req.Staff != nil {
		staffID, err := uuid.Parse(*req.Staff)
		if err != nil {
			return nil, report.ErrNotFound
		}
		rep.StaffID = uuid.NullUUID{UUID: staffID, Valid: true}
	}

	if actor.IsSuperuser {
		// Superuser writes go straight to persistence.
		if req.Status != nil {
			rep.Status = report.Status(*req.Status)
		}
	} else {
		// Status and owner are not the submitter's to choose.
		rep.Status = report.StatusPending
		if actor.IsStaffRole() && !rep.StaffID.Valid {
			rep.StaffID = uuid.NullUUID{UUID: actor.ID, Valid: true}
		}
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Update applies a partial update under a row lock. Fields read-only
// for the actor are dropped without effect; the first transition into
// approved stamps approved_date, which is never cleared or restamped.
func (s *ReportService) Update(ctx context.Context, actor *user.User, id uuid.UUID, req *UpdateReportRequest) (*report.Report, error) {
	return s.repo.UpdateTransactional(ctx, id, func(prev *report.Report) (*report.Report, error) {
		owner, err := s.owner(ctx, prev)
		if err != nil {
			return nil, err
		}
		if !s.policy.VisibleReports(actor).Matches(prev, owner) {
			return nil, report.ErrNotFound
		}
		if !s.policy.CanChangeReport(actor, prev, owner) {
			return nil, ErrPermissionDenied
		}

		next := *prev

		if actor.IsSuperuser {
			applyAllReportFields(&next, req)
			// The stamping hook lives in the non-superuser branch:
			// a superuser flipping status to approved does not get
			// approved_date stamped automatically.
			return &next, nil
		}

		readonly := s.policy.ReportReadonlyFields(actor)
		if req.ReportName != nil && !readonly.Has(access.FieldReportName) {
			next.ReportName = *req.ReportName
		}
		if req.ProjectName != nil && !readonly.Has(access.FieldProjectName) {
			next.ProjectName = *req.ProjectName
		}
		if req.Address != nil && !readonly.Has(access.FieldAddress) {
			next.Address = *req.Address
		}
		if req.PhoneNumber != nil && !readonly.Has(access.FieldPhoneNumber) {
			next.PhoneNumber = *req.PhoneNumber
		}
		if req.IDProofKey != nil && !readonly.Has(access.FieldIDProof) {
			next.IDProofKey = *req.IDProofKey
		}
		if req.Comment != nil && !readonly.Has(access.FieldComment) {
			next.Comment = sql.NullString{String: *req.Comment, Valid: true}
		}
		if req.Status != nil && !readonly.Has(access.FieldStatus) {
			next.Status = report.Status(*req.Status)
		}
		if req.Staff != nil && !readonly.Has(access.FieldStaff) {
			staffID, err := uuid.Parse(*req.Staff)
			if err != nil {
				return nil, report.ErrNotFound
			}
			next.StaffID = uuid.NullUUID{UUID: staffID, Valid: true}
		}

		if prev.Status != report.StatusApproved &&
			next.Status == report.StatusApproved &&
			!next.ApprovedDate.Valid {
			next.ApprovedDate = sql.NullTime{Time: s.now(), Valid: true}
		}

		return &next, nil
	})
}

// Delete removes a report. Managers are denied unconditionally.
func (s *ReportService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	rep, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	owner, err := s.owner(ctx, rep)
	if err != nil {
		return err
	}
	if !s.policy.CanDeleteReport(actor, rep, owner) {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, rep.ID)
}

// Permissions describes the actor's capabilities in the reports module
func (s *ReportService) Permissions(actor *user.User) ModulePermissions {
	readonly := s.policy.ReportReadonlyFields(actor)
	fields := make([]string, 0, len(readonly))
	for f := range readonly {
		fields = append(fields, f)
	}
	return ModulePermissions{
		Visible:        s.policy.ModuleVisible(actor),
		CanAdd:         s.policy.CanAddReport(actor),
		ReadonlyFields: fields,
	}
}

// owner loads the staff user a report references, nil when unset or
// since deleted
func (s *ReportService) owner(ctx context.Context, rep *report.Report) (*user.User, error) {
	if !rep.StaffID.Valid {
		return nil, nil
	}
	return s.users.GetByID(ctx, rep.StaffID.UUID)
}

// applyAllReportFields applies every submitted field without
// mutability filtering (superuser write path)
func applyAllReportFields(next *report.Report, req *UpdateReportRequest) {
	if req.ReportName != nil {
		next.ReportName = *req.ReportName
	}
	if req.ProjectName != nil {
		next.ProjectName = *req.ProjectName
	}
	if req.Address != nil {
		next.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		next.PhoneNumber = *req.PhoneNumber
	}
	if req.IDProofKey != nil {
		next.IDProofKey = *req.IDProofKey
	}
	if req.Comment != nil {
		next.Comment = sql.NullString{String: *req.Comment, Valid: true}
	}
	if req.Status != nil {
		next.Status = report.Status(*req.Status)
	}
	if req.Staff != nil {
		if staffID, err := uuid.Parse(*req.Staff); err == nil {
			next.StaffID = uuid.NullUUID{UUID: staffID, Valid: true}
		}
	}
	if req.ApprovedDate != nil {
		if d, err := time.Parse("2006-01-02", *req.ApprovedDate); err == nil {
			next.ApprovedDate = sql.NullTime{Time: d, Valid: true}
		}
	}
}

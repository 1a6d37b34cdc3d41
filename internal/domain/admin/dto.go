package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
)

// --- Auth ---

// LoginRequest for panel login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// --- Users ---

// CreateUserRequest for user creation
type CreateUserRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=150"`
	Email       string  `json:"email" validate:"required,email"`
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Password    string  `json:"password" validate:"required,min=8"`
	Role        string  `json:"role" validate:"required,oneof=admin manager staff"`
	Manager     *string `json:"manager,omitempty" validate:"omitempty,uuid"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
}

// UpdateUserRequest for partial user updates. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Username     *string `json:"username,omitempty" validate:"omitempty,min=3,max=150"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=admin manager staff"`
	Manager      *string `json:"manager,omitempty" validate:"omitempty,uuid"`
	ClearManager bool    `json:"clear_manager,omitempty"`
	Address      *string `json:"address,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// UserResponse is the API view of a user
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        user.Role `json:"role"`
	Manager     *string   `json:"manager,omitempty"`
	Address     *string   `json:"address,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserResponse maps an entity to its API view
func ToUserResponse(u *user.User) *UserResponse {
	resp := &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
	if u.ManagerID.Valid {
		s := u.ManagerID.UUID.String()
		resp.Manager = &s
	}
	if u.Address.Valid {
		resp.Address = &u.Address.String
	}
	if u.PhoneNumber.Valid {
		resp.PhoneNumber = &u.PhoneNumber.String
	}
	return resp
}

// --- Reports ---

// CreateReportRequest for report submission
type CreateReportRequest struct {
	ReportName  string  `json:"report_name" validate:"required,max=255"`
	ProjectName string  `json:"project_name" validate:"required,max=255"`
	Address     string  `json:"address" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=15"`
	IDProofKey  string  `json:"id_proof_key" validate:"required"`
	Comment     *string `json:"comment,omitempty"`
	// Settable by superusers only; everyone else gets the defaults.
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	Staff  *string `json:"staff,omitempty" validate:"omitempty,uuid"`
}

// UpdateReportRequest for partial report updates. Nil fields are left
// untouched; fields read-only for the actor are dropped, not rejected.
type UpdateReportRequest struct {
	ReportName  *string `json:"report_name,omitempty" validate:"omitempty,max=255"`
	ProjectName *string `json:"project_name,omitempty" validate:"omitempty,max=255"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
	IDProofKey  *string `json:"id_proof_key,omitempty"`
	Comment     *string `json:"comment,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	Staff       *string `json:"staff,omitempty" validate:"omitempty,uuid"`
	// Superuser-only manual override of the approval date (YYYY-MM-DD).
	ApprovedDate *string `json:"approved_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReportResponse is the API view of a report
type ReportResponse struct {
	ID           uuid.UUID     `json:"id"`
	ReportName   string        `json:"report_name"`
	ProjectName  string        `json:"project_name"`
	Address      string        `json:"address"`
	PhoneNumber  string        `json:"phone_number"`
	IDProofKey   string        `json:"id_proof_key"`
	Comment      *string       `json:"comment,omitempty"`
	Date         string        `json:"date"`
	Status       report.Status `json:"status"`
	Staff        *string       `json:"staff,omitempty"`
	ApprovedDate *string       `json:"approved_date,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ToReportResponse maps an entity to its API view
func ToReportResponse(r *report.Report) *ReportResponse {
	resp := &ReportResponse{
		ID:          r.ID,
		ReportName:  r.ReportName,
		ProjectName: r.ProjectName,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		IDProofKey:  r.IDProofKey,
		Date:        r.Date.Format("2006-01-02"),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
	if r.Comment.Valid {
		resp.Comment = &r.Comment.String
	}
	if r.StaffID.Valid {
		s := r.StaffID.UUID.String()
		resp.Staff = &s
	}
	if r.ApprovedDate.Valid {
		d := r.ApprovedDate.Time.Format("2006-01-02")
		resp.ApprovedDate = &d
	}
	return resp
}

// --- Permissions meta ---

// ModulePermissions describes what the actor can do in one module
type ModulePermissions struct {
	Visible        bool     `json:"visible"`
	CanAdd         bool     `json:"can_add"`
	ReadonlyFields []string `json:"readonly_fields"`
}

// PermissionsResponse describes the actor's panel capabilities
type PermissionsResponse struct {
	Users   ModulePermissions `json:"users"`
	Reports ModulePermissions `json:"reports"`
}

// --- Uploads ---

// UploadResponse carries the storage key to reference from a report
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

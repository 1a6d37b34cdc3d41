package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents report workflow state (matches report_status enum)
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValidStatus checks if s is a known workflow state
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Report represents a staff report record (matches reports table)
type Report struct {
	ID          uuid.UUID `db:"id"`
	ReportName  string    `db:"report_name"`
	ProjectName string    `db:"project_name"`
	Address     string    `db:"address"`
	PhoneNumber string    `db:"phone_number"`

	// Object-storage key of the uploaded ID proof image.
	IDProofKey string `db:"id_proof_key"`

	Comment sql.NullString `db:"comment"`

	// Submission date, set once at creation.
	Date time.Time `db:"date"`

	Status Status `db:"status"`

	// Owning staff user. Weak reference: nulled when the owner is
	// deleted.
	StaffID uuid.NullUUID `db:"staff_id"`

	// Stamped on the first transition into approved, then kept even if
	// the status later changes away from approved.
	ApprovedDate sql.NullTime `db:"approved_date"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OwnedBy returns true if the report's staff reference is set to id
func (r *Report) OwnedBy(id uuid.UUID) bool {
	return r.StaffID.Valid && r.StaffID.UUID == id
}

package report

import (
	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/domain/user"
)

// Filter describes the set of reports visible to an actor. The zero
// value matches nothing; All matches everything; otherwise the set
// conditions are combined with OR.
type Filter struct {
	All bool

	// StaffID matches reports owned by one staff user.
	StaffID *uuid.UUID
	// StaffManagerID matches reports whose owner is a direct report of
	// a manager. One level only.
	StaffManagerID *uuid.UUID
}

// FilterAll matches every report
func FilterAll() Filter {
	return Filter{All: true}
}

// FilterNone matches no report
func FilterNone() Filter {
	return Filter{}
}

// FilterOwn matches the reports owned by one staff user
func FilterOwn(staffID uuid.UUID) Filter {
	return Filter{StaffID: &staffID}
}

// FilterTeam matches the reports of a manager's direct reports
func FilterTeam(managerID uuid.UUID) Filter {
	return Filter{StaffManagerID: &managerID}
}

// IsEmpty returns true if the filter can never match a row
func (f Filter) IsEmpty() bool {
	return !f.All && f.StaffID == nil && f.StaffManagerID == nil
}

// Matches reports whether r belongs to the filtered set. owner is the
// loaded staff user referenced by r, nil when the reference is unset.
func (f Filter) Matches(r *Report, owner *user.User) bool {
	if f.All {
		return true
	}
	if f.StaffID != nil && r.OwnedBy(*f.StaffID) {
		return true
	}
	if f.StaffManagerID != nil && owner != nil && r.OwnedBy(owner.ID) &&
		owner.ManagerID.Valid && owner.ManagerID.UUID == *f.StaffManagerID {
		return true
	}
	return false
}

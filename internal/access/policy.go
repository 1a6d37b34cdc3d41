// Package access implements the row-level and field-level access
// rules for the two panel entities. Every decision is a pure function
// over the actor and the current persisted record snapshot; the engine
// holds no state beyond the selected rule profile.
package access

import (
	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
)

// Policy answers visibility, operation and field-mutability questions
// for an actor.
type Policy struct {
	profile Profile
}

// NewPolicy creates a policy engine with the given rule profile
func NewPolicy(profile Profile) *Policy {
	return &Policy{profile: profile}
}

// Profile returns the active rule profile
func (p *Policy) Profile() Profile {
	return p.profile
}

// failOpen is the decision for a role outside {admin, manager, staff}
func (p *Policy) failOpen() bool {
	return p.profile == ProfileLegacy
}

// ModuleVisible reports whether the user and report modules are shown
// to the actor. Any authenticated actor sees both.
func (p *Policy) ModuleVisible(actor *user.User) bool {
	return actor != nil
}

// --- User rules ---

// VisibleUsers returns the filter scoping the user rows the actor's
// queries may return. A manager sees their direct reports plus their
// own row; the supervision graph is not walked transitively.
func (p *Policy) VisibleUsers(actor *user.User) user.Filter {
	if actor.IsSuperuser {
		return user.FilterAll()
	}
	switch actor.Role {
	case user.RoleAdmin:
		return user.FilterAll()
	case user.RoleManager:
		return user.FilterTeam(actor.ID)
	case user.RoleStaff:
		return user.FilterSelf(actor.ID)
	}
	if p.failOpen() {
		return user.FilterAll()
	}
	return user.FilterNone()
}

// CanChangeUser reports whether the actor may edit target. A nil
// target asks the list-level question.
func (p *Policy) CanChangeUser(actor, target *user.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if target == nil {
		return true
	}
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleManager:
		return actor.Manages(target) || target.ID == actor.ID
	case user.RoleStaff:
		return target.ID == actor.ID
	}
	return p.failOpen()
}

// CanDeleteUser reports whether the actor may delete target. There is
// no self-service deletion rule: anything short of a superuser is
// denied at row level.
func (p *Policy) CanDeleteUser(actor, target *user.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if target == nil {
		return true
	}
	return false
}

// CanAddUser reports whether the actor may create users. The current
// rule set reserves creation for superusers; the legacy rule set also
// allowed admins and managers.
func (p *Policy) CanAddUser(actor *user.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if p.profile == ProfileLegacy {
		return actor.Role == user.RoleAdmin || actor.Role == user.RoleManager
	}
	return false
}

// UserReadonlyFields returns the user fields the actor may not write.
// Staff and managers cannot reassign their own manager or promote
// themselves.
func (p *Policy) UserReadonlyFields(actor *user.User) FieldSet {
	if actor.IsSuperuser {
		return fieldSet()
	}
	switch actor.Role {
	case user.RoleManager, user.RoleStaff:
		return fieldSet(FieldRole, FieldManager)
	case user.RoleAdmin:
		return fieldSet()
	}
	if p.failOpen() {
		return fieldSet()
	}
	return fieldSet(FieldRole, FieldManager)
}

// ApplyUserCreateDefaults enforces creation-time field values on a new
// user record. Only the legacy rule set rewrites anything: a
// non-superuser manager creating a user forces ownership and the staff
// role.
func (p *Policy) ApplyUserCreateDefaults(actor, newUser *user.User) {
	if p.profile != ProfileLegacy || actor.IsSuperuser {
		return
	}
	if actor.Role == user.RoleManager {
		newUser.ManagerID.UUID = actor.ID
		newUser.ManagerID.Valid = true
		newUser.Role = user.RoleStaff
	}
}

// --- Report rules ---

// VisibleReports returns the filter scoping the report rows the
// actor's queries may return.
func (p *Policy) VisibleReports(actor *user.User) report.Filter {
	if actor.IsSuperuser {
		return report.FilterAll()
	}
	switch actor.Role {
	case user.RoleAdmin:
		return report.FilterAll()
	case user.RoleManager:
		return report.FilterTeam(actor.ID)
	case user.RoleStaff:
		return report.FilterOwn(actor.ID)
	}
	if p.failOpen() {
		return report.FilterAll()
	}
	return report.FilterNone()
}

// CanChangeReport reports whether the actor may edit target. owner is
// the loaded staff user referenced by target, nil when the reference
// is unset. A nil target asks the list-level question.
func (p *Policy) CanChangeReport(actor *user.User, target *report.Report, owner *user.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if target == nil {
		return true
	}
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleManager:
		return owner != nil && target.OwnedBy(owner.ID) && actor.Manages(owner)
	case user.RoleStaff:
		return target.OwnedBy(actor.ID)
	}
	return p.failOpen()
}

// CanDeleteReport reports whether the actor may delete target.
// Managers can never delete reports, under any condition.
func (p *Policy) CanDeleteReport(actor *user.User, target *report.Report, owner *user.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if target == nil {
		return true
	}
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleManager:
		return false
	case user.RoleStaff:
		return target.OwnedBy(actor.ID)
	}
	return p.failOpen()
}

// CanAddReport reports whether the actor may create reports. Only
// staff submit reports; managers review them.
func (p *Policy) CanAddReport(actor *user.User) bool {
	if actor.IsSuperuser {
		return true
	}
	return actor.Role == user.RoleStaff
}

// ReportReadonlyFields returns the report fields the actor may not
// write. Staff edit content but never self-approve or alter the
// submission date; a manager changes the workflow state but not the
// underlying claim. A superuser gets the manager's read-only set plus
// status: field-level rules do not carry the superuser override, which
// rests with CanChangeReport.
func (p *Policy) ReportReadonlyFields(actor *user.User) FieldSet {
	if actor.IsSuperuser {
		return allReportFields()
	}
	switch actor.Role {
	case user.RoleAdmin:
		return fieldSet()
	case user.RoleManager:
		s := allReportFields()
		delete(s, FieldStatus)
		return s
	case user.RoleStaff:
		return fieldSet(FieldStatus, FieldDate, FieldApprovedDate)
	}
	if p.failOpen() {
		return fieldSet()
	}
	return allReportFields()
}

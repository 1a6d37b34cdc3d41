package user

import "github.com/google/uuid"

// Filter describes the set of users visible to an actor. The zero
// value matches nothing; All matches everything; otherwise the set
// conditions are combined with OR.
type Filter struct {
	All bool

	// ID matches a single user row.
	ID *uuid.UUID
	// ManagerID matches the direct reports of a manager.
	ManagerID *uuid.UUID
}

// FilterAll matches every user
func FilterAll() Filter {
	return Filter{All: true}
}

// FilterNone matches no user
func FilterNone() Filter {
	return Filter{}
}

// FilterSelf matches exactly one user row
func FilterSelf(id uuid.UUID) Filter {
	return Filter{ID: &id}
}

// FilterTeam matches a manager's direct reports plus the manager's
// own row
func FilterTeam(managerID uuid.UUID) Filter {
	id := managerID
	return Filter{ID: &id, ManagerID: &managerID}
}

// IsEmpty returns true if the filter can never match a row
func (f Filter) IsEmpty() bool {
	return !f.All && f.ID == nil && f.ManagerID == nil
}

// Matches reports whether u belongs to the filtered set
func (f Filter) Matches(u *User) bool {
	if f.All {
		return true
	}
	if f.ID != nil && u.ID == *f.ID {
		return true
	}
	if f.ManagerID != nil && u.ManagerID.Valid && u.ManagerID.UUID == *f.ManagerID {
		return true
	}
	return false
}

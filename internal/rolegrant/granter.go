// Package rolegrant integrates with the role/permission store. The
// panel only needs two operations at user-creation time: attach a
// coarse role label and grant the fixed view/change permission set.
// Any implementation of Granter is substitutable.
package rolegrant

import (
	"context"

	"github.com/google/uuid"
)

// Permission is a coarse grant over a panel module
type Permission string

const (
	PermViewUser     Permission = "user.view"
	PermChangeUser   Permission = "user.change"
	PermViewReport   Permission = "report.view"
	PermChangeReport Permission = "report.change"
)

// DefaultPermissions is the fixed set granted to every manager and
// staff account at creation
func DefaultPermissions() []Permission {
	return []Permission{PermViewUser, PermChangeUser, PermViewReport, PermChangeReport}
}

// Granter assigns roles and permission sets to users
type Granter interface {
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
	GrantPermissions(ctx context.Context, userID uuid.UUID, perms []Permission) error
}

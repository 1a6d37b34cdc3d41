package rolegrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// repository is the table-backed Granter
type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Granter backed by the role tables
func NewRepository(db *sqlx.DB) Granter {
	return &repository{db: db}
}

// AssignRole attaches a role label to the user, replacing any previous
// one
func (r *repository) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	query := `
		INSERT INTO user_roles (user_id, role, assigned_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, assigned_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, role); err != nil {
		return fmt.Errorf("rolegrant assign role: %w", err)
	}
	return nil
}

// GrantPermissions grants the permission set to the user
func (r *repository) GrantPermissions(ctx context.Context, userID uuid.UUID, perms []Permission) error {
	query := `
		INSERT INTO user_permissions (user_id, permission, granted_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, permission) DO NOTHING
	`
	for _, perm := range perms {
		if _, err := r.db.ExecContext(ctx, query, userID, perm); err != nil {
			return fmt.Errorf("rolegrant grant %s: %w", perm, err)
		}
	}
	return nil
}

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, f Filter) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, f Filter, role Role) (int, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, username, email, first_name, last_name, password_hash, role,
	manager_id, address, phone_number, is_active, is_superuser, is_staff,
	created_at, updated_at
`

// Create creates a new user
func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, password_hash, role,
		                   manager_id, address, phone_number, is_active, is_superuser, is_staff,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.Role,
		u.ManagerID,
		u.Address,
		u.PhoneNumber,
		u.IsActive,
		u.IsSuperuser,
		u.IsStaff,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("user repository create: %w", err)
	}
	return nil
}

// GetByID returns user by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByUsername returns user by username
func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// List returns users within the filtered set
func (r *repository) List(ctx context.Context, f Filter) ([]*User, error) {
	users := []*User{}
	if f.IsEmpty() {
		return users, nil
	}

	query := `SELECT ` + userColumns + ` FROM users`
	where, args := filterClause(f, 1)
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY username`

	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists mutable user fields
func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users SET
			username = $2, email = $3, first_name = $4, last_name = $5,
			password_hash = $6, role = $7, manager_id = $8, address = $9,
			phone_number = $10, is_active = $11, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.Role,
		u.ManagerID,
		u.Address,
		u.PhoneNumber,
		u.IsActive,
	)
	if err != nil {
		return fmt.Errorf("user repository update: %w", err)
	}
	return nil
}

// Delete removes a user. Rows referencing it (users.manager_id,
// reports.staff_id) are nulled by ON DELETE SET NULL.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// CountByRole counts users with the given role within the filtered set
func (r *repository) CountByRole(ctx context.Context, f Filter, role Role) (int, error) {
	if f.IsEmpty() {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM users WHERE role = $1`
	where, args := filterClause(f, 2)
	if where != "" {
		query += ` AND (` + where + `)`
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, append([]interface{}{role}, args...)...)
	return count, err
}

// filterClause renders a Filter as an OR of positional predicates,
// numbering placeholders from argNum
func filterClause(f Filter, argNum int) (string, []interface{}) {
	if f.All {
		return "", nil
	}

	clause := ""
	args := []interface{}{}
	if f.ID != nil {
		clause += fmt.Sprintf("id = $%d", argNum)
		args = append(args, *f.ID)
		argNum++
	}
	if f.ManagerID != nil {
		if clause != "" {
			clause += " OR "
		}
		clause += fmt.Sprintf("manager_id = $%d", argNum)
		args = append(args, *f.ManagerID)
	}
	return clause, args
}

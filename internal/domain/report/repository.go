package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report data access interface
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, f Filter) ([]*Report, error)
	// UpdateTransactional loads the current persisted row under a row
	// lock, applies the mutation, and writes the result in the same
	// transaction. apply receives the previous persisted state and
	// returns the row to store.
	UpdateTransactional(ctx context.Context, id uuid.UUID, apply func(prev *Report) (*Report, error)) (*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, f Filter, status Status) (int, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const reportColumns = `
	id, report_name, project_name, address, phone_number, id_proof_key,
	comment, date, status, staff_id, approved_date, created_at, updated_at
`

// Create creates a new report
func (r *repository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (id, report_name, project_name, address, phone_number, id_proof_key,
		                     comment, date, status, staff_id, approved_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		rep.ID,
		rep.ReportName,
		rep.ProjectName,
		rep.Address,
		rep.PhoneNumber,
		rep.IDProofKey,
		rep.Comment,
		rep.Date,
		rep.Status,
		rep.StaffID,
		rep.ApprovedDate,
		rep.CreatedAt,
		rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("report repository create: %w", err)
	}
	return nil
}

// GetByID returns report by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	var rep Report
	err := r.db.GetContext(ctx, &rep, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

// List returns reports within the filtered set
func (r *repository) List(ctx context.Context, f Filter) ([]*Report, error) {
	reports := []*Report{}
	if f.IsEmpty() {
		return reports, nil
	}

	query := `SELECT ` + reportColumns + ` FROM reports`
	where, args := filterClause(f, 1)
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateTransactional applies a read-then-write mutation under a row
// lock so the previous-status read is consistent with the write it
// gates.
func (r *repository) UpdateTransactional(ctx context.Context, id uuid.UUID, apply func(prev *Report) (*Report, error)) (*Report, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var prev Report
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &prev, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next, err := apply(&prev)
	if err != nil {
		return nil, err
	}

	update := `
		UPDATE reports SET
			report_name = $2, project_name = $3, address = $4, phone_number = $5,
			id_proof_key = $6, comment = $7, status = $8, staff_id = $9,
			approved_date = $10, updated_at = NOW()
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, update,
		next.ID,
		next.ReportName,
		next.ProjectName,
		next.Address,
		next.PhoneNumber,
		next.IDProofKey,
		next.Comment,
		next.Status,
		next.StaffID,
		next.ApprovedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("report repository update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes a report
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	return err
}

// CountByStatus counts reports with the given status within the
// filtered set
func (r *repository) CountByStatus(ctx context.Context, f Filter, status Status) (int, error) {
	if f.IsEmpty() {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM reports WHERE status = $1`
	where, args := filterClause(f, 2)
	if where != "" {
		query += ` AND (` + where + `)`
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, append([]interface{}{status}, args...)...)
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
	if f.StaffID != nil {
		clause += fmt.Sprintf("staff_id = $%d", argNum)
		args = append(args, *f.StaffID)
		argNum++
	}
	if f.StaffManagerID != nil {
		if clause != "" {
			clause += " OR "
		}
		clause += fmt.Sprintf("staff_id IN (SELECT id FROM users WHERE manager_id = $%d)", argNum)
		args = append(args, *f.StaffManagerID)
	}
	return clause, args
}

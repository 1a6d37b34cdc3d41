package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/access"
	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
)

// countingUsers answers CountByRole from a fixed in-memory set
type countingUsers struct {
	user.Repository
	users []*user.User
}

func (s *countingUsers) CountByRole(_ context.Context, f user.Filter, role user.Role) (int, error) {
	n := 0
	for _, u := range s.users {
		if u.Role == role && f.Matches(u) {
			n++
		}
	}
	return n, nil
}

// countingReports answers CountByStatus from a fixed in-memory set,
// resolving owners against the user set
type countingReports struct {
	report.Repository
	reports []*report.Report
	owners  []*user.User
}

func (s *countingReports) ownerOf(r *report.Report) *user.User {
	if !r.StaffID.Valid {
		return nil
	}
	for _, u := range s.owners {
		if u.ID == r.StaffID.UUID {
			return u
		}
	}
	return nil
}

func (s *countingReports) CountByStatus(_ context.Context, f report.Filter, status report.Status) (int, error) {
	n := 0
	for _, r := range s.reports {
		if r.Status == status && f.Matches(r, s.ownerOf(r)) {
			n++
		}
	}
	return n, nil
}

func statusReport(owner *user.User, status report.Status) *report.Report {
	return &report.Report{
		ID:      uuid.New(),
		Status:  status,
		StaffID: uuid.NullUUID{UUID: owner.ID, Valid: true},
	}
}

func TestSummaryScopedByRole(t *testing.T) {
	manager := &user.User{ID: uuid.New(), Role: user.RoleManager, IsActive: true}
	teamStaff := &user.User{ID: uuid.New(), Role: user.RoleStaff, IsActive: true,
		ManagerID: uuid.NullUUID{UUID: manager.ID, Valid: true}}
	otherStaff := &user.User{ID: uuid.New(), Role: user.RoleStaff, IsActive: true}
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin, IsActive: true}

	allUsers := []*user.User{manager, teamStaff, otherStaff, admin}
	allReports := []*report.Report{
		statusReport(teamStaff, report.StatusPending),
		statusReport(teamStaff, report.StatusApproved),
		statusReport(otherStaff, report.StatusPending),
		statusReport(otherStaff, report.StatusRejected),
	}

	svc := NewService(
		&countingUsers{users: allUsers},
		&countingReports{reports: allReports, owners: allUsers},
		access.NewPolicy(access.ProfileStrict),
	)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor *user.User
		want  Summary
	}{
		{
			"admin counts everything",
			admin,
			Summary{
				Users:   UserSummary{Managers: 1, Staff: 2},
				Reports: ReportSummary{Pending: 2, Approved: 1, Rejected: 1},
			},
		},
		{
			"manager counts own team",
			manager,
			Summary{
				Users:   UserSummary{Managers: 1, Staff: 1},
				Reports: ReportSummary{Pending: 1, Approved: 1, Rejected: 0},
			},
		},
		{
			"staff counts own rows",
			teamStaff,
			Summary{
				Users:   UserSummary{Managers: 0, Staff: 1},
				Reports: ReportSummary{Pending: 1, Approved: 1, Rejected: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Summary(ctx, tt.actor)
			if err != nil {
				t.Fatalf("Summary() error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("Summary() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

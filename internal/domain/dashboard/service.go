// Package dashboard computes the per-actor summary counts shown on
// the panel landing page. Counts are scoped by the same visibility
// filters the list endpoints use and recomputed on every request.
package dashboard

import (
	"context"

	"github.com/msrpanel/msr-api/internal/access"
	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
)

// UserSummary counts visible users by role
type UserSummary struct {
	Managers int `json:"managers"`
	Staff    int `json:"staff"`
}

// ReportSummary counts visible reports by status
type ReportSummary struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Summary is the dashboard payload
type Summary struct {
	Users   UserSummary   `json:"users"`
	Reports ReportSummary `json:"reports"`
}

// Service computes dashboard summaries
type Service struct {
	users   user.Repository
	reports report.Repository
	policy  *access.Policy
}

// NewService creates the dashboard service
func NewService(users user.Repository, reports report.Repository, policy *access.Policy) *Service {
	return &Service{users: users, reports: reports, policy: policy}
}

// Summary returns the counts within the actor's visible sets
func (s *Service) Summary(ctx context.Context, actor *user.User) (*Summary, error) {
	summary := &Summary{}

	uf := s.policy.VisibleUsers(actor)
	managers, err := s.users.CountByRole(ctx, uf, user.RoleManager)
	if err != nil {
		return nil, err
	}
	staff, err := s.users.CountByRole(ctx, uf, user.RoleStaff)
	if err != nil {
		return nil, err
	}
	summary.Users = UserSummary{Managers: managers, Staff: staff}

	rf := s.policy.VisibleReports(actor)
	for _, c := range []struct {
		status report.Status
		dst    *int
	}{
		{report.StatusPending, &summary.Reports.Pending},
		{report.StatusApproved, &summary.Reports.Approved},
		{report.StatusRejected, &summary.Reports.Rejected},
	} {
		n, err := s.reports.CountByStatus(ctx, rf, c.status)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	return summary, nil
}

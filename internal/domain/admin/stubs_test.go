package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
	"github.com/msrpanel/msr-api/internal/rolegrant"
)

// userRepoStub is an in-memory user.Repository
type userRepoStub struct {
	users map[uuid.UUID]*user.User
}

func newUserRepoStub(users ...*user.User) *userRepoStub {
	s := &userRepoStub{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *userRepoStub) Create(_ context.Context, u *user.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userRepoStub) List(_ context.Context, f user.Filter) ([]*user.User, error) {
	out := make([]*user.User, 0)
	for _, u := range s.users {
		if f.Matches(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *userRepoStub) Update(_ context.Context, u *user.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.users, id)
	return nil
}

func (s *userRepoStub) CountByRole(_ context.Context, f user.Filter, role user.Role) (int, error) {
	n := 0
	for _, u := range s.users {
		if u.Role == role && f.Matches(u) {
			n++
		}
	}
	return n, nil
}

// reportRepoStub is an in-memory report.Repository backed by a
// userRepoStub for owner lookups in filters
type reportRepoStub struct {
	reports map[uuid.UUID]*report.Report
	owners  *userRepoStub
}

func newReportRepoStub(owners *userRepoStub, reports ...*report.Report) *reportRepoStub {
	s := &reportRepoStub{reports: make(map[uuid.UUID]*report.Report), owners: owners}
	for _, r := range reports {
		s.reports[r.ID] = r
	}
	return s
}

func (s *reportRepoStub) ownerOf(r *report.Report) *user.User {
	if !r.StaffID.Valid {
		return nil
	}
	return s.owners.users[r.StaffID.UUID]
}

func (s *reportRepoStub) Create(_ context.Context, r *report.Report) error {
	cp := *r
	s.reports[r.ID] = &cp
	return nil
}

func (s *reportRepoStub) GetByID(_ context.Context, id uuid.UUID) (*report.Report, error) {
	r, ok := s.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *reportRepoStub) List(_ context.Context, f report.Filter) ([]*report.Report, error) {
	out := make([]*report.Report, 0)
	for _, r := range s.reports {
		if f.Matches(r, s.ownerOf(r)) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *reportRepoStub) UpdateTransactional(_ context.Context, id uuid.UUID, apply func(prev *report.Report) (*report.Report, error)) (*report.Report, error) {
	prev, ok := s.reports[id]
	if !ok {
		return nil, report.ErrNotFound
	}
	cp := *prev
	next, err := apply(&cp)
	if err != nil {
		return nil, err
	}
	stored := *next
	stored.Date = prev.Date // submission date never changes after insert
	s.reports[id] = &stored
	out := stored
	return &out, nil
}

func (s *reportRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.reports, id)
	return nil
}

func (s *reportRepoStub) CountByStatus(_ context.Context, f report.Filter, status report.Status) (int, error) {
	n := 0
	for _, r := range s.reports {
		if r.Status == status && f.Matches(r, s.ownerOf(r)) {
			n++
		}
	}
	return n, nil
}

// granterStub records role grant calls
type granterStub struct {
	roles       map[uuid.UUID]string
	permissions map[uuid.UUID][]rolegrant.Permission
}

func newGranterStub() *granterStub {
	return &granterStub{
		roles:       make(map[uuid.UUID]string),
		permissions: make(map[uuid.UUID][]rolegrant.Permission),
	}
}

func (s *granterStub) AssignRole(_ context.Context, userID uuid.UUID, role string) error {
	s.roles[userID] = role
	return nil
}

func (s *granterStub) GrantPermissions(_ context.Context, userID uuid.UUID, perms []rolegrant.Permission) error {
	s.permissions[userID] = append(s.permissions[userID], perms...)
	return nil
}

// --- entity helpers ---

func newActor(role user.Role) *user.User {
	return &user.User{
		ID:       uuid.New(),
		Username: "u-" + uuid.NewString()[:8],
		Role:     role,
		IsActive: true,
		IsStaff:  true,
	}
}

func newSuperuser() *user.User {
	u := newActor(user.RoleAdmin)
	u.IsSuperuser = true
	return u
}

func withManager(u *user.User, manager *user.User) *user.User {
	u.ManagerID = uuid.NullUUID{UUID: manager.ID, Valid: true}
	return u
}

func pendingReport(owner *user.User) *report.Report {
	r := &report.Report{
		ID:          uuid.New(),
		ReportName:  "weekly status",
		ProjectName: "atlas",
		Address:     "12 Main St",
		PhoneNumber: "5550100",
		IDProofKey:  "id_proofs/2026/01/x.jpg",
		Status:      report.StatusPending,
	}
	if owner != nil {
		r.StaffID = uuid.NullUUID{UUID: owner.ID, Valid: true}
	}
	return r
}

func strptr(s string) *string { return &s }

package access

import (
	"testing"

	"github.com/google/uuid"

	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
)

func newUser(role user.Role) *user.User {
	return &user.User{ID: uuid.New(), Role: role, IsActive: true}
}

func newSuperuser() *user.User {
	u := newUser(user.RoleAdmin)
	u.IsSuperuser = true
	return u
}

func withManager(u *user.User, manager *user.User) *user.User {
	u.ManagerID = uuid.NullUUID{UUID: manager.ID, Valid: true}
	return u
}

func ownedReport(owner *user.User) *report.Report {
	return &report.Report{
		ID:      uuid.New(),
		Status:  report.StatusPending,
		StaffID: uuid.NullUUID{UUID: owner.ID, Valid: true},
	}
}

func TestVisibleUsers(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	manager := newUser(user.RoleManager)
	staff := withManager(newUser(user.RoleStaff), manager)
	other := newUser(user.RoleStaff)

	tests := []struct {
		name  string
		actor *user.User
		want  map[*user.User]bool
	}{
		{"superuser sees all", newSuperuser(), map[*user.User]bool{manager: true, staff: true, other: true}},
		{"admin sees all", newUser(user.RoleAdmin), map[*user.User]bool{manager: true, staff: true, other: true}},
		{"manager sees team and self", manager, map[*user.User]bool{manager: true, staff: true, other: false}},
		{"staff sees only self", staff, map[*user.User]bool{manager: false, staff: true, other: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := p.VisibleUsers(tt.actor)
			for target, want := range tt.want {
				if got := f.Matches(target); got != want {
					t.Errorf("Matches(%s) = %v, want %v", target.ID, got, want)
				}
			}
		})
	}
}

func TestVisibleUsersUnknownRole(t *testing.T) {
	actor := newUser(user.Role("auditor"))
	someone := newUser(user.RoleStaff)

	if f := NewPolicy(ProfileStrict).VisibleUsers(actor); f.Matches(someone) {
		t.Error("strict profile: unknown role must see no users")
	}
	if f := NewPolicy(ProfileLegacy).VisibleUsers(actor); !f.Matches(someone) {
		t.Error("legacy profile: unknown role falls open to all users")
	}
}

func TestManagerVisibilityIsSingleLevel(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	top := newUser(user.RoleManager)
	mid := withManager(newUser(user.RoleManager), top)
	leaf := withManager(newUser(user.RoleStaff), mid)

	f := p.VisibleUsers(top)
	if !f.Matches(mid) {
		t.Error("manager must see direct report")
	}
	if f.Matches(leaf) {
		t.Error("manager must not see reports-of-reports")
	}
}

func TestCanChangeUser(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	manager := newUser(user.RoleManager)
	staff := withManager(newUser(user.RoleStaff), manager)
	other := newUser(user.RoleStaff)

	tests := []struct {
		name   string
		actor  *user.User
		target *user.User
		want   bool
	}{
		{"superuser any row", newSuperuser(), other, true},
		{"list-level is allowed", staff, nil, true},
		{"manager edits direct report", manager, staff, true},
		{"manager edits own profile", manager, manager, true},
		{"manager denied on stranger", manager, other, false},
		{"staff edits self", staff, staff, true},
		{"staff denied on others", staff, other, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanChangeUser(tt.actor, tt.target); got != tt.want {
				t.Errorf("CanChangeUser = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	p := NewPolicy(ProfileStrict)
	manager := newUser(user.RoleManager)
	staff := withManager(newUser(user.RoleStaff), manager)

	if !p.CanDeleteUser(newSuperuser(), staff) {
		t.Error("superuser may delete any user")
	}
	if p.CanDeleteUser(manager, staff) {
		t.Error("manager has no delete grant on users")
	}
	if p.CanDeleteUser(staff, staff) {
		t.Error("no self-service deletion")
	}
}

func TestCanAddUser(t *testing.T) {
	strict := NewPolicy(ProfileStrict)
	legacy := NewPolicy(ProfileLegacy)

	if !strict.CanAddUser(newSuperuser()) {
		t.Error("superuser may always add users")
	}
	for _, role := range []user.Role{user.RoleAdmin, user.RoleManager, user.RoleStaff} {
		if strict.CanAddUser(newUser(role)) {
			t.Errorf("strict profile: role %s must not add users", role)
		}
	}
	if !legacy.CanAddUser(newUser(user.RoleAdmin)) || !legacy.CanAddUser(newUser(user.RoleManager)) {
		t.Error("legacy profile: admin and manager may add users")
	}
	if legacy.CanAddUser(newUser(user.RoleStaff)) {
		t.Error("legacy profile: staff must not add users")
	}
}

func TestUserReadonlyFields(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	for _, role := range []user.Role{user.RoleManager, user.RoleStaff} {
		fields := p.UserReadonlyFields(newUser(role))
		if !fields.Has(FieldRole) || !fields.Has(FieldManager) {
			t.Errorf("role %s must not edit role or manager", role)
		}
	}
	if fields := p.UserReadonlyFields(newSuperuser()); len(fields) != 0 {
		t.Errorf("superuser has no read-only user fields, got %v", fields)
	}
}

func TestVisibleReports(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	manager := newUser(user.RoleManager)
	staff := withManager(newUser(user.RoleStaff), manager)
	other := newUser(user.RoleStaff)

	own := ownedReport(staff)
	foreign := ownedReport(other)
	orphan := &report.Report{ID: uuid.New(), Status: report.StatusPending}

	f := p.VisibleReports(staff)
	if !f.Matches(own, staff) || f.Matches(foreign, other) || f.Matches(orphan, nil) {
		t.Error("staff must see exactly their own reports")
	}

	f = p.VisibleReports(manager)
	if !f.Matches(own, staff) {
		t.Error("manager must see direct reports' reports")
	}
	if f.Matches(foreign, other) {
		t.Error("manager must not see unrelated reports")
	}
	if f.Matches(orphan, nil) {
		t.Error("manager must not see ownerless reports")
	}

	f = p.VisibleReports(newSuperuser())
	if !f.Matches(orphan, nil) {
		t.Error("superuser sees everything")
	}
}

func TestCanChangeReport(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	manager := newUser(user.RoleManager)
	otherManager := newUser(user.RoleManager)
	staff := withManager(newUser(user.RoleStaff), manager)
	rep := ownedReport(staff)
	orphan := &report.Report{ID: uuid.New()}

	tests := []struct {
		name  string
		actor *user.User
		rep   *report.Report
		owner *user.User
		want  bool
	}{
		{"superuser", newSuperuser(), rep, staff, true},
		{"owner staff", staff, rep, staff, true},
		{"other staff", newUser(user.RoleStaff), rep, staff, false},
		{"owner's manager", manager, rep, staff, true},
		{"unrelated manager", otherManager, rep, staff, false},
		{"manager on ownerless report", manager, orphan, nil, false},
		{"list-level", staff, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanChangeReport(tt.actor, tt.rep, tt.owner); got != tt.want {
				t.Errorf("CanChangeReport = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManagerCanNeverDeleteReports(t *testing.T) {
	for _, profile := range []Profile{ProfileStrict, ProfileLegacy} {
		p := NewPolicy(profile)
		manager := newUser(user.RoleManager)
		staff := withManager(newUser(user.RoleStaff), manager)
		rep := ownedReport(staff)

		if p.CanDeleteReport(manager, rep, staff) {
			t.Errorf("profile %s: manager deleted a direct report's report", profile)
		}
	}
}

func TestStaffDeletesOwnReportOnly(t *testing.T) {
	p := NewPolicy(ProfileStrict)
	staff := newUser(user.RoleStaff)
	other := newUser(user.RoleStaff)

	if !p.CanDeleteReport(staff, ownedReport(staff), staff) {
		t.Error("staff may delete their own report")
	}
	if p.CanDeleteReport(staff, ownedReport(other), other) {
		t.Error("staff must not delete another's report")
	}
}

func TestCanAddReport(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	if !p.CanAddReport(newUser(user.RoleStaff)) {
		t.Error("staff may add reports")
	}
	if p.CanAddReport(newUser(user.RoleManager)) {
		t.Error("manager must not add reports")
	}
	if p.CanAddReport(newUser(user.RoleAdmin)) {
		t.Error("admin must not add reports")
	}
	if !p.CanAddReport(newSuperuser()) {
		t.Error("superuser may add reports")
	}
}

func TestReportReadonlyFields(t *testing.T) {
	p := NewPolicy(ProfileStrict)

	staffFields := p.ReportReadonlyFields(newUser(user.RoleStaff))
	for _, f := range []string{FieldStatus, FieldDate, FieldApprovedDate} {
		if !staffFields.Has(f) {
			t.Errorf("staff must not edit %s", f)
		}
	}
	if staffFields.Has(FieldReportName) || staffFields.Has(FieldComment) {
		t.Error("staff edits content fields")
	}

	managerFields := p.ReportReadonlyFields(newUser(user.RoleManager))
	if managerFields.Has(FieldStatus) {
		t.Error("manager edits status")
	}
	for _, f := range []string{FieldReportName, FieldProjectName, FieldDate, FieldStaff, FieldApprovedDate} {
		if !managerFields.Has(f) {
			t.Errorf("manager must not edit %s", f)
		}
	}

	// Field-level rules do not carry the superuser override.
	superFields := p.ReportReadonlyFields(newSuperuser())
	if !superFields.Has(FieldStatus) {
		t.Error("superuser status stays read-only at field level")
	}
}

func TestApplyUserCreateDefaults(t *testing.T) {
	manager := newUser(user.RoleManager)

	created := newUser(user.RoleManager)
	NewPolicy(ProfileLegacy).ApplyUserCreateDefaults(manager, created)
	if created.Role != user.RoleStaff {
		t.Errorf("legacy profile forces role=staff, got %s", created.Role)
	}
	if !created.ManagerID.Valid || created.ManagerID.UUID != manager.ID {
		t.Error("legacy profile forces manager=creator")
	}

	created = newUser(user.RoleManager)
	NewPolicy(ProfileStrict).ApplyUserCreateDefaults(manager, created)
	if created.Role != user.RoleManager || created.ManagerID.Valid {
		t.Error("strict profile must leave submitted fields untouched")
	}

	created = newUser(user.RoleManager)
	NewPolicy(ProfileLegacy).ApplyUserCreateDefaults(newSuperuser(), created)
	if created.Role != user.RoleManager || created.ManagerID.Valid {
		t.Error("superuser creation bypasses forced rewrites")
	}
}

func TestModuleVisible(t *testing.T) {
	p := NewPolicy(ProfileStrict)
	if !p.ModuleVisible(newUser(user.RoleStaff)) {
		t.Error("any authenticated actor sees the modules")
	}
	if p.ModuleVisible(nil) {
		t.Error("unauthenticated actor sees nothing")
	}
}

package rbac_test

import (
	"errors"
	"testing"

	"kpimanager/rbac"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"Admin", "Manager", "Staff"} {
		role, err := rbac.ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if string(role) != s {
			t.Fatalf("ParseRole(%q) = %q", s, role)
		}
	}
	for _, s := range []string{"", "admin", "SuperAdmin", "Intern"} {
		if _, err := rbac.ParseRole(s); !errors.Is(err, rbac.ErrUnknownRole) {
			t.Fatalf("ParseRole(%q) = %v, want ErrUnknownRole", s, err)
		}
	}
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	for _, p := range rbac.AllPermissions {
		ok, err := rbac.HasPermission(rbac.RoleAdmin, p)
		if err != nil {
			t.Fatalf("HasPermission(Admin, %s): %v", p, err)
		}
		if !ok {
			t.Errorf("Admin missing %s", p)
		}
	}
}

func TestManagerPermissions(t *testing.T) {
	granted := []rbac.Permission{
		rbac.PermKPICreate, rbac.PermKPIRead, rbac.PermKPIUpdate, rbac.PermKPIAssign,
		rbac.PermUserRead, rbac.PermUserUpdate, rbac.PermUserInvite,
		rbac.PermDepartmentRead,
		rbac.PermReportCreate, rbac.PermReportRead, rbac.PermReportExport,
		rbac.PermAnalyticsView, rbac.PermAnalyticsExport,
	}
	assertExactly(t, rbac.RoleManager, granted)
}

func TestStaffPermissions(t *testing.T) {
	granted := []rbac.Permission{rbac.PermKPIRead, rbac.PermKPIUpdate, rbac.PermReportRead}
	assertExactly(t, rbac.RoleStaff, granted)
}

// assertExactly checks that role holds the granted set and nothing else.
func assertExactly(t *testing.T, role rbac.Role, granted []rbac.Permission) {
	t.Helper()
	want := make(map[rbac.Permission]bool, len(granted))
	for _, p := range granted {
		want[p] = true
	}
	for _, p := range rbac.AllPermissions {
		ok, err := rbac.HasPermission(role, p)
		if err != nil {
			t.Fatalf("HasPermission(%s, %s): %v", role, p, err)
		}
		if ok != want[p] {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", role, p, ok, want[p])
		}
	}
}

func TestHasPermissionUnknownInputs(t *testing.T) {
	if _, err := rbac.HasPermission("Ghost", rbac.PermKPIRead); !errors.Is(err, rbac.ErrUnknownRole) {
		t.Fatalf("unknown role: got %v, want ErrUnknownRole", err)
	}
	if _, err := rbac.HasPermission(rbac.RoleAdmin, "kpi:explode"); !errors.Is(err, rbac.ErrUnknownPermission) {
		t.Fatalf("unknown permission: got %v, want ErrUnknownPermission", err)
	}
}

func TestHasAny(t *testing.T) {
	ok, err := rbac.HasAny(rbac.RoleStaff, rbac.PermKPIDelete, rbac.PermKPIRead)
	if err != nil || !ok {
		t.Fatalf("HasAny(Staff, delete|read) = %v, %v, want true", ok, err)
	}
	ok, err = rbac.HasAny(rbac.RoleStaff, rbac.PermKPIDelete, rbac.PermUserCreate)
	if err != nil || ok {
		t.Fatalf("HasAny(Staff, delete|userCreate) = %v, %v, want false", ok, err)
	}
	if _, err := rbac.HasAny(rbac.RoleStaff); !errors.Is(err, rbac.ErrNoPermissions) {
		t.Fatalf("HasAny with no permissions: got %v, want ErrNoPermissions", err)
	}
	if _, err := rbac.HasAny(rbac.RoleStaff, rbac.PermKPIRead, "bogus"); !errors.Is(err, rbac.ErrUnknownPermission) {
		t.Fatalf("HasAny with unknown permission: got %v, want ErrUnknownPermission", err)
	}
}

func TestHasAll(t *testing.T) {
	ok, err := rbac.HasAll(rbac.RoleManager, rbac.PermKPICreate, rbac.PermKPIAssign)
	if err != nil || !ok {
		t.Fatalf("HasAll(Manager, create+assign) = %v, %v, want true", ok, err)
	}
	ok, err = rbac.HasAll(rbac.RoleManager, rbac.PermKPICreate, rbac.PermKPIDelete)
	if err != nil || ok {
		t.Fatalf("HasAll(Manager, create+delete) = %v, %v, want false", ok, err)
	}
	if _, err := rbac.HasAll(rbac.RoleManager); !errors.Is(err, rbac.ErrNoPermissions) {
		t.Fatalf("HasAll with no permissions: got %v, want ErrNoPermissions", err)
	}
}

func TestAuthorize(t *testing.T) {
	staff := rbac.Actor{ID: "u1", Email: "staff@example.com", Role: rbac.RoleStaff}

	if err := rbac.Authorize(staff, rbac.PermKPIRead); err != nil {
		t.Fatalf("Authorize(staff, kpi:read): %v", err)
	}

	err := rbac.Authorize(staff, rbac.PermKPIDelete)
	var denied *rbac.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("Authorize(staff, kpi:delete) = %v, want PermissionDeniedError", err)
	}
	if denied.Permission != rbac.PermKPIDelete {
		t.Fatalf("denied permission = %s, want kpi:delete", denied.Permission)
	}

	ghost := rbac.Actor{ID: "u2", Role: "Ghost"}
	if err := rbac.Authorize(ghost, rbac.PermKPIRead); !errors.Is(err, rbac.ErrUnknownRole) {
		t.Fatalf("Authorize(ghost) = %v, want ErrUnknownRole", err)
	}
}

func TestPermissionsForRoleReturnsCopy(t *testing.T) {
	perms, err := rbac.PermissionsForRole(rbac.RoleStaff)
	if err != nil {
		t.Fatal(err)
	}
	perms[0] = "tampered"

	again, err := rbac.PermissionsForRole(rbac.RoleStaff)
	if err != nil {
		t.Fatal(err)
	}
	if again[0] != rbac.PermKPIRead {
		t.Fatalf("role permission table mutated through returned slice: %v", again)
	}
}

func TestRoleSubsetOrdering(t *testing.T) {
	staffPerms, err := rbac.PermissionsForRole(rbac.RoleStaff)
	if err != nil {
		t.Fatal(err)
	}
	managerPerms, err := rbac.PermissionsForRole(rbac.RoleManager)
	if err != nil {
		t.Fatal(err)
	}

	managerSet := make(map[rbac.Permission]bool, len(managerPerms))
	for _, p := range managerPerms {
		managerSet[p] = true
	}
	for _, p := range staffPerms {
		if !managerSet[p] {
			t.Errorf("Staff holds %s but Manager does not", p)
		}
	}
	for _, p := range managerPerms {
		if ok, err := rbac.HasPermission(rbac.RoleAdmin, p); err != nil || !ok {
			t.Errorf("Manager holds %s but Admin does not", p)
		}
	}
}

package rbac

import (
	"errors"
	"fmt"
)

// Role is one of the three closed user roles. Unknown role strings are
// rejected at the boundary with ParseRole, never defaulted.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
)

// Permission is an opaque capability token. The set is fixed at build time.
type Permission string

const (
	PermKPICreate          Permission = "kpi:create"
	PermKPIRead            Permission = "kpi:read"
	PermKPIUpdate          Permission = "kpi:update"
	PermKPIDelete          Permission = "kpi:delete"
	PermKPIAssign          Permission = "kpi:assign"
	PermUserCreate         Permission = "user:create"
	PermUserRead           Permission = "user:read"
	PermUserUpdate         Permission = "user:update"
	PermUserDelete         Permission = "user:delete"
	PermUserInvite         Permission = "user:invite"
	PermDepartmentCreate   Permission = "department:create"
	PermDepartmentRead     Permission = "department:read"
	PermDepartmentUpdate   Permission = "department:update"
	PermDepartmentDelete   Permission = "department:delete"
	PermReportCreate       Permission = "report:create"
	PermReportRead         Permission = "report:read"
	PermReportExport       Permission = "report:export"
	PermReportSchedule     Permission = "report:schedule"
	PermAnalyticsView      Permission = "analytics:view"
	PermAnalyticsExport    Permission = "analytics:export"
	PermNotificationManage Permission = "notification:manage"
	PermSystemAdmin        Permission = "system:admin"
)

// AllPermissions lists every permission in the closed set.
var AllPermissions = []Permission{
	PermKPICreate,
	PermKPIRead,
	PermKPIUpdate,
	PermKPIDelete,
	PermKPIAssign,
	PermUserCreate,
	PermUserRead,
	PermUserUpdate,
	PermUserDelete,
	PermUserInvite,
	PermDepartmentCreate,
	PermDepartmentRead,
	PermDepartmentUpdate,
	PermDepartmentDelete,
	PermReportCreate,
	PermReportRead,
	PermReportExport,
	PermReportSchedule,
	PermAnalyticsView,
	PermAnalyticsExport,
	PermNotificationManage,
	PermSystemAdmin,
}

// rolePermissions is the process-wide role to permission table. It is
// initialized once and read-only afterwards; concurrent reads are safe.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermKPICreate,
		PermKPIRead,
		PermKPIUpdate,
		PermKPIDelete,
		PermKPIAssign,
		PermUserCreate,
		PermUserRead,
		PermUserUpdate,
		PermUserDelete,
		PermUserInvite,
		PermDepartmentCreate,
		PermDepartmentRead,
		PermDepartmentUpdate,
		PermDepartmentDelete,
		PermReportCreate,
		PermReportRead,
		PermReportExport,
		PermReportSchedule,
		PermAnalyticsView,
		PermAnalyticsExport,
		PermNotificationManage,
		PermSystemAdmin,
	},
	RoleManager: {
		PermKPICreate,
		PermKPIRead,
		PermKPIUpdate,
		PermKPIAssign,
		PermUserRead,
		PermUserUpdate,
		PermUserInvite,
		PermDepartmentRead,
		PermReportCreate,
		PermReportRead,
		PermReportExport,
		PermAnalyticsView,
		PermAnalyticsExport,
	},
	RoleStaff: {
		PermKPIRead,
		PermKPIUpdate,
		PermReportRead,
	},
}

var (
	// ErrUnknownRole is returned when a role is outside the closed enumeration.
	ErrUnknownRole = errors.New("unknown role")
	// ErrUnknownPermission is returned when a permission is outside the closed enumeration.
	ErrUnknownPermission = errors.New("unknown permission")
	// ErrNoPermissions is returned when HasAny or HasAll is called with an
	// empty permission list, which is a programming error in the caller.
	ErrNoPermissions = errors.New("at least one permission required")
)

// PermissionDeniedError reports the single permission an actor is missing.
// The error never enumerates unrelated permissions.
type PermissionDeniedError struct {
	Permission Permission
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Permission)
}

// Actor is an authenticated user as seen by authorization checks. Department
// is empty for users without a department affiliation.
type Actor struct {
	ID         string
	Email      string
	Role       Role
	Department string
}

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func validPermission(p Permission) bool {
	switch p {
	case PermKPICreate, PermKPIRead, PermKPIUpdate, PermKPIDelete, PermKPIAssign,
		PermUserCreate, PermUserRead, PermUserUpdate, PermUserDelete, PermUserInvite,
		PermDepartmentCreate, PermDepartmentRead, PermDepartmentUpdate, PermDepartmentDelete,
		PermReportCreate, PermReportRead, PermReportExport, PermReportSchedule,
		PermAnalyticsView, PermAnalyticsExport, PermNotificationManage, PermSystemAdmin:
		return true
	}
	return false
}

// HasPermission reports whether the static table grants permission to role.
// A role or permission outside the closed enumerations is an error, never a
// silent false: defaulting would mask an integration bug.
func HasPermission(role Role, permission Permission) (bool, error) {
	perms, ok := rolePermissions[role]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if !validPermission(permission) {
		return false, fmt.Errorf("%w: %q", ErrUnknownPermission, permission)
	}
	for _, p := range perms {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

// HasAny reports whether role holds at least one of the given permissions.
func HasAny(role Role, permissions ...Permission) (bool, error) {
	if len(permissions) == 0 {
		return false, ErrNoPermissions
	}
	for _, p := range permissions {
		ok, err := HasPermission(role, p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// HasAll reports whether role holds every one of the given permissions.
func HasAll(role Role, permissions ...Permission) (bool, error) {
	if len(permissions) == 0 {
		return false, ErrNoPermissions
	}
	for _, p := range permissions {
		ok, err := HasPermission(role, p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// PermissionsForRole returns a copy of the role's permission set.
func PermissionsForRole(role Role) ([]Permission, error) {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out, nil
}

// Authorize is the entry point used at each API decision point. It returns
// nil when the actor's role grants the permission, a *PermissionDeniedError
// carrying the missing permission when it does not, and an ErrUnknownRole or
// ErrUnknownPermission wrapped error for inputs outside the enumerations.
func Authorize(actor Actor, permission Permission) error {
	ok, err := HasPermission(actor.Role, permission)
	if err != nil {
		return err
	}
	if !ok {
		return &PermissionDeniedError{Permission: permission}
	}
	return nil
}

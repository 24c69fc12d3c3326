package accesscontrol

type Permission string

const (
	PermDashboardRead Permission = "dashboard.read"
	PermBookingsRead  Permission = "bookings.read"
	PermPartnersRead  Permission = "partners.read"
	PermPartnersWrite Permission = "partners.write"
	PermCustomersRead Permission = "customers.read"
	PermPaymentsRead  Permission = "payments.read"
	PermExpensesRead  Permission = "expenses.read"
	PermUsersManage   Permission = "users.manage"
)

// rolePermissions is the static role grant table. Admin holds everything;
// the other roles see only the dashboard pages their team works with.
var rolePermissions = map[RoleName][]Permission{
	RoleAdmin: {
		PermDashboardRead, PermBookingsRead,
		PermPartnersRead, PermPartnersWrite,
		PermCustomersRead, PermPaymentsRead,
		PermExpensesRead, PermUsersManage,
	},
	RoleFinance: {
		PermDashboardRead, PermPaymentsRead, PermExpensesRead,
	},
	RoleOperations: {
		PermDashboardRead, PermBookingsRead,
		PermPartnersRead, PermPartnersWrite,
		PermCustomersRead,
	},
	RoleViewer: {
		PermDashboardRead,
	},
}

// PermissionsFor resolves the union of grants across all of a user's roles.
func PermissionsFor(roles []Role) map[Permission]bool {
	out := make(map[Permission]bool)
	for _, role := range roles {
		for _, p := range rolePermissions[RoleName(role.Name)] {
			out[p] = true
		}
	}
	return out
}

func HasPermission(roles []Role, perm Permission) bool {
	return PermissionsFor(roles)[perm]
}

// ValidRole reports whether name is one of the known dashboard roles.
func ValidRole(name string) bool {
	_, ok := rolePermissions[RoleName(name)]
	return ok
}

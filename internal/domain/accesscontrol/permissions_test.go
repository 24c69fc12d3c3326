package accesscontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsForUnionsRoles(t *testing.T) {
	roles := []Role{
		{Name: string(RoleFinance)},
		{Name: string(RoleViewer)},
	}

	perms := PermissionsFor(roles)

	assert.True(t, perms[PermPaymentsRead])
	assert.True(t, perms[PermExpensesRead])
	assert.True(t, perms[PermDashboardRead])
	assert.False(t, perms[PermBookingsRead])
	assert.False(t, perms[PermUsersManage])
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	roles := []Role{{Name: string(RoleAdmin)}}

	for _, p := range []Permission{
		PermDashboardRead, PermBookingsRead, PermPartnersRead, PermPartnersWrite,
		PermCustomersRead, PermPaymentsRead, PermExpensesRead, PermUsersManage,
	} {
		assert.True(t, HasPermission(roles, p), "admin missing %s", p)
	}
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	roles := []Role{{Name: "intern"}}

	assert.Empty(t, PermissionsFor(roles))
	assert.False(t, HasPermission(roles, PermDashboardRead))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("operations"))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}

package auth

import (
	"context"
	"testing"
)

func TestRolePermissions(t *testing.T) {
	perms := Permissions{}
	ctx := context.Background()

	cases := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleEmployee, PermGoalsWrite, true},
		{RoleEmployee, PermGoalsApprove, false},
		{RoleEmployee, PermAuditRead, false},
		{RoleManager, PermGoalsApprove, true},
		{RoleManager, PermPeriodsManage, false},
		{RoleAdmin, PermPeriodsManage, true},
		{RoleAdmin, PermGoalsWrite, false},
		{RoleAdmin, PermAuditRead, true},
		{"Unknown", PermGoalsRead, false},
	}

	for _, tc := range cases {
		got, err := perms.HasPermission(ctx, tc.role, tc.permission)
		if err != nil {
			t.Fatalf("HasPermission(%s, %s) returned error: %v", tc.role, tc.permission, err)
		}
		if got != tc.want {
			t.Fatalf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleManager, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("expected %s to be a valid role", role)
		}
	}
	if ValidRole("Superuser") {
		t.Fatal("expected unknown role to be invalid")
	}
}

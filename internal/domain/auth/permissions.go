package auth

import "context"

const (
	PermGoalsRead         = "goals.read"
	PermGoalsWrite        = "goals.write"
	PermGoalsApprove      = "goals.approve"
	PermRatingsRead       = "ratings.read"
	PermRatingsWrite      = "ratings.write"
	PermPeriodsManage     = "periods.manage"
	PermNotificationsRead = "notifications.read"
	PermReportsRead       = "reports.read"
	PermAuditRead         = "audit.read"
	PermMetricsRead       = "metrics.read"
)

// RolePermissions is the coarse route-level grant table. Fine-grained
// ownership, department, and state checks happen in the goals policy; a
// permission here only admits a request to the handler.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermGoalsRead,
		PermGoalsWrite,
		PermRatingsRead,
		PermRatingsWrite,
		PermNotificationsRead,
		PermReportsRead,
	},
	RoleManager: {
		PermGoalsRead,
		PermGoalsWrite,
		PermGoalsApprove,
		PermRatingsRead,
		PermRatingsWrite,
		PermNotificationsRead,
		PermReportsRead,
	},
	RoleAdmin: {
		PermGoalsRead,
		PermRatingsRead,
		PermPeriodsManage,
		PermNotificationsRead,
		PermReportsRead,
		PermAuditRead,
		PermMetricsRead,
	},
}

// Permissions answers role/permission queries from the static grant table.
type Permissions struct{}

func (Permissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true, nil
		}
	}
	return false, nil
}

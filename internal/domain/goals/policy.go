package goals

import "pms/internal/domain/auth"

// Action names an operation a principal can request against a goal.
type Action string

const (
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionSubmitProgress Action = "submit_progress"
	ActionUpdateGoal     Action = "update_goal"
	ActionMarkCompleted  Action = "mark_completed"
	ActionSubmitRating   Action = "submit_rating"
	ActionViewGoal       Action = "view_goal"
)

const (
	ReasonInsufficientRole  = "insufficient role"
	ReasonNotOwner          = "not owner"
	ReasonIllegalTransition = "illegal transition"
	ReasonUnknownAction     = "unknown action"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// Policy decides whether a principal may perform an action on a goal.
// Rules are evaluated in order and the first matching rule wins. Admins
// bypass ownership and department checks for reads only; writes always go
// through the role and ownership rules so the approval chain of custody is
// preserved.
type Policy struct {
	// ScopeByDepartment restricts manager decisions to goals owned by
	// employees in the manager's own department.
	ScopeByDepartment bool
}

func (p Policy) Authorize(principal auth.Principal, action Action, g Goal) Decision {
	switch action {
	case ActionApprove, ActionReject:
		if principal.Role != auth.RoleManager {
			return Deny(ReasonInsufficientRole)
		}
		if p.ScopeByDepartment && principal.Department != g.OwnerDepartment {
			return Deny(ReasonInsufficientRole)
		}
		return Allow()

	case ActionSubmitProgress, ActionUpdateGoal:
		if principal.ID != g.OwnerID {
			return Deny(ReasonNotOwner)
		}
		return Allow()

	case ActionMarkCompleted:
		if principal.ID != g.OwnerID {
			return Deny(ReasonNotOwner)
		}
		if check := ValidateTransition(g.Status, StatusCompleted); !check.Legal {
			return Deny(ReasonIllegalTransition)
		}
		return Allow()

	case ActionSubmitRating:
		if principal.Role == auth.RoleManager {
			if p.ScopeByDepartment && principal.Department != g.OwnerDepartment {
				return Deny(ReasonInsufficientRole)
			}
			return Allow()
		}
		if principal.ID != g.OwnerID {
			return Deny(ReasonNotOwner)
		}
		return Allow()

	case ActionViewGoal:
		if principal.Role == auth.RoleAdmin {
			return Allow()
		}
		if principal.ID == g.OwnerID {
			return Allow()
		}
		if principal.Role == auth.RoleManager {
			if p.ScopeByDepartment && principal.Department != g.OwnerDepartment {
				return Deny(ReasonInsufficientRole)
			}
			return Allow()
		}
		return Deny(ReasonNotOwner)
	}

	return Deny(ReasonUnknownAction)
}

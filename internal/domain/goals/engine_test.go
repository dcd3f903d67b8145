package goals

import (
	"errors"
	"testing"
	"time"

	"pms/internal/domain/auth"
)

func testEngine(at time.Time) Engine {
	engine := NewEngine(Policy{ScopeByDepartment: true})
	engine.Now = func() time.Time { return at }
	return engine
}

func TestRequestTransitionEmployeeCannotApprove(t *testing.T) {
	engine := testEngine(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	employee := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}

	_, err := engine.RequestTransition(employee, testGoal(StatusPending), StatusApproved)
	var denial *Denial
	if !errors.As(err, &denial) {
		t.Fatalf("expected a denial, got %v", err)
	}
	if denial.Kind != DenialForbidden {
		t.Fatalf("expected kind %q, got %q", DenialForbidden, denial.Kind)
	}
	if denial.Reason != ReasonInsufficientRole {
		t.Fatalf("expected reason %q, got %q", ReasonInsufficientRole, denial.Reason)
	}
}

func TestRequestTransitionManagerApproves(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	engine := testEngine(now)
	manager := auth.Principal{ID: "mgr-1", Role: auth.RoleManager, Department: "engineering"}

	applied, err := engine.RequestTransition(manager, testGoal(StatusPending), StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied.From != StatusPending || applied.To != StatusApproved {
		t.Fatalf("unexpected transition: %+v", applied)
	}
	if applied.AppliedBy != "mgr-1" {
		t.Fatalf("expected appliedBy mgr-1, got %s", applied.AppliedBy)
	}
	if !applied.AppliedAt.Equal(now) {
		t.Fatalf("expected appliedAt %v, got %v", now, applied.AppliedAt)
	}
	if applied.GoalID != "goal-1" {
		t.Fatalf("expected goal id goal-1, got %s", applied.GoalID)
	}
}

func TestRequestTransitionTerminalGoal(t *testing.T) {
	engine := testEngine(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	principals := []auth.Principal{
		{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"},
		{ID: "mgr-1", Role: auth.RoleManager, Department: "engineering"},
		{ID: "admin-1", Role: auth.RoleAdmin, Department: "ops"},
	}

	for _, principal := range principals {
		for _, to := range []GoalStatus{StatusPending, StatusApproved, StatusCompleted} {
			_, err := engine.RequestTransition(principal, testGoal(StatusRejected), to)
			var denial *Denial
			if !errors.As(err, &denial) {
				t.Fatalf("expected a denial for %s -> %s, got %v", principal.Role, to, err)
			}
			if denial.Kind != DenialInvalidTransition {
				t.Fatalf("expected kind %q, got %q", DenialInvalidTransition, denial.Kind)
			}
			if denial.Reason != ReasonTerminalState {
				t.Fatalf("expected reason %q, got %q", ReasonTerminalState, denial.Reason)
			}
		}
	}
}

func TestRequestTransitionOwnerCompletes(t *testing.T) {
	engine := testEngine(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	owner := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}

	applied, err := engine.RequestTransition(owner, testGoal(StatusApproved), StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied.From != StatusApproved || applied.To != StatusCompleted {
		t.Fatalf("unexpected transition: %+v", applied)
	}

	other := auth.Principal{ID: "emp-2", Role: auth.RoleEmployee, Department: "engineering"}
	_, err = engine.RequestTransition(other, testGoal(StatusApproved), StatusCompleted)
	var denial *Denial
	if !errors.As(err, &denial) || denial.Kind != DenialForbidden {
		t.Fatalf("expected forbidden denial for non-owner, got %v", err)
	}
}

func TestRequestTransitionIllegalEdge(t *testing.T) {
	engine := testEngine(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	manager := auth.Principal{ID: "mgr-1", Role: auth.RoleManager, Department: "engineering"}

	_, err := engine.RequestTransition(manager, testGoal(StatusPending), StatusCompleted)
	var denial *Denial
	if !errors.As(err, &denial) {
		t.Fatalf("expected a denial, got %v", err)
	}
	if denial.Kind != DenialInvalidTransition || denial.Reason != ReasonNoSuchEdge {
		t.Fatalf("unexpected denial: %+v", denial)
	}
}

func TestRequestRatingInsideWindow(t *testing.T) {
	period := testPeriod()
	inside := period.Start.Add(24 * time.Hour)
	engine := testEngine(inside)
	owner := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}

	if err := engine.RequestRating(owner, testGoal(StatusApproved), inside, period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestRatingPastWindow(t *testing.T) {
	period := testPeriod()
	past := period.End.Add(time.Second)
	engine := testEngine(past)
	owner := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}

	err := engine.RequestRating(owner, testGoal(StatusApproved), past, period)
	var denial *Denial
	if !errors.As(err, &denial) {
		t.Fatalf("expected a denial, got %v", err)
	}
	if denial.Kind != DenialNotEligible {
		t.Fatalf("expected kind %q, got %q", DenialNotEligible, denial.Kind)
	}
}

func TestRequestRatingUnapprovedGoal(t *testing.T) {
	period := testPeriod()
	inside := period.Start.Add(24 * time.Hour)
	engine := testEngine(inside)
	owner := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}

	for _, status := range []GoalStatus{StatusPending, StatusCompleted} {
		err := engine.RequestRating(owner, testGoal(status), inside, period)
		var denial *Denial
		if !errors.As(err, &denial) || denial.Kind != DenialNotEligible {
			t.Fatalf("expected not-eligible denial for %s goal, got %v", status, err)
		}
	}
}

func TestRequestRatingInvalidPeriodFailsLoudly(t *testing.T) {
	engine := testEngine(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	owner := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}
	inverted := RatingPeriod{
		Start: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := engine.RequestRating(owner, testGoal(StatusApproved), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), inverted)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	var denial *Denial
	if errors.As(err, &denial) {
		t.Fatal("a contract violation must not surface as a denial")
	}
}

func TestAuthorizeHelperWrapsUnknownAction(t *testing.T) {
	engine := testEngine(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	owner := auth.Principal{ID: "emp-1", Role: auth.RoleEmployee, Department: "engineering"}

	err := engine.Authorize(owner, Action("archive"), testGoal(StatusPending))
	var denial *Denial
	if !errors.As(err, &denial) {
		t.Fatalf("expected a denial, got %v", err)
	}
	if denial.Kind != DenialUnknownAction {
		t.Fatalf("expected kind %q, got %q", DenialUnknownAction, denial.Kind)
	}
}

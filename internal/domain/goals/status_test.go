package goals

import "testing"

func TestValidateTransitionLegalEdges(t *testing.T) {
	cases := []struct {
		from GoalStatus
		to   GoalStatus
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusCompleted},
	}
	for _, tc := range cases {
		check := ValidateTransition(tc.from, tc.to)
		if !check.Legal {
			t.Fatalf("expected %s -> %s to be legal, got reason %q", tc.from, tc.to, check.Reason)
		}
	}
}

func TestValidateTransitionIsTotal(t *testing.T) {
	all := []GoalStatus{StatusPending, StatusApproved, StatusRejected, StatusCompleted}
	legal := map[edge]bool{
		{StatusPending, StatusApproved}:   true,
		{StatusPending, StatusRejected}:   true,
		{StatusApproved, StatusCompleted}: true,
	}
	for _, from := range all {
		for _, to := range all {
			check := ValidateTransition(from, to)
			if legal[edge{from, to}] != check.Legal {
				t.Fatalf("%s -> %s: legal = %v, want %v", from, to, check.Legal, legal[edge{from, to}])
			}
			if !check.Legal && check.Reason == "" {
				t.Fatalf("%s -> %s: illegal transition must carry a reason", from, to)
			}
		}
	}
}

func TestValidateTransitionNoSelfLoops(t *testing.T) {
	check := ValidateTransition(StatusApproved, StatusApproved)
	if check.Legal {
		t.Fatal("expected approved -> approved to be illegal")
	}
	if check.Reason != ReasonNoSuchEdge {
		t.Fatalf("expected reason %q, got %q", ReasonNoSuchEdge, check.Reason)
	}
}

func TestValidateTransitionTerminalStates(t *testing.T) {
	for _, from := range []GoalStatus{StatusRejected, StatusCompleted} {
		for _, to := range []GoalStatus{StatusPending, StatusApproved, StatusRejected, StatusCompleted} {
			check := ValidateTransition(from, to)
			if check.Legal {
				t.Fatalf("expected %s -> %s to be illegal", from, to)
			}
			if check.Reason != ReasonTerminalState {
				t.Fatalf("%s -> %s: expected reason %q, got %q", from, to, ReasonTerminalState, check.Reason)
			}
		}
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	check := ValidateTransition(StatusPending, GoalStatus("archived"))
	if check.Legal {
		t.Fatal("expected transition to unknown status to be illegal")
	}
	if check.Reason != ReasonNoSuchEdge {
		t.Fatalf("expected reason %q, got %q", ReasonNoSuchEdge, check.Reason)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !StatusRejected.Terminal() || !StatusCompleted.Terminal() {
		t.Fatal("rejected and completed must be terminal")
	}
	if StatusPending.Terminal() || StatusApproved.Terminal() {
		t.Fatal("pending and approved must not be terminal")
	}
	if !StatusPending.Valid() || GoalStatus("archived").Valid() {
		t.Fatal("Valid misclassified a status")
	}
}

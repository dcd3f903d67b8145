package goals

// GoalStatus is the lifecycle state of a goal. A goal starts pending and
// only moves along the edges in legalEdges; rejected and completed are
// terminal.
type GoalStatus string

const (
	StatusPending   GoalStatus = "pending"
	StatusApproved  GoalStatus = "approved"
	StatusRejected  GoalStatus = "rejected"
	StatusCompleted GoalStatus = "completed"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s GoalStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

type edge struct {
	from GoalStatus
	to   GoalStatus
}

var legalEdges = map[edge]bool{
	{StatusPending, StatusApproved}:   true,
	{StatusPending, StatusRejected}:   true,
	{StatusApproved, StatusCompleted}: true,
}

const (
	ReasonTerminalState = "terminal state"
	ReasonNoSuchEdge    = "no such edge"
)

type TransitionCheck struct {
	Legal  bool
	Reason string
}

// ValidateTransition reports whether current -> requested is a legal edge.
// It is total over all status pairs, including unknown values and
// self-loops, and has no side effects.
func ValidateTransition(current, requested GoalStatus) TransitionCheck {
	if current.Terminal() {
		return TransitionCheck{Reason: ReasonTerminalState}
	}
	if !legalEdges[edge{current, requested}] {
		return TransitionCheck{Reason: ReasonNoSuchEdge}
	}
	return TransitionCheck{Legal: true}
}

package goals

import (
	"time"

	"pms/internal/domain/auth"
)

// Engine is the single entry point collaborators call to validate goal
// mutations end to end: edge legality, then authorization, then rating
// eligibility where relevant. Every decision is a pure synchronous function
// of its inputs; the engine never persists anything and never blocks. The
// caller commits an approved transition under its own concurrency control
// and re-invokes the engine if the commit loses a race.
type Engine struct {
	Policy Policy
	Now    func() time.Time
}

func NewEngine(policy Policy) Engine {
	return Engine{Policy: policy, Now: time.Now}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// AppliedTransition is an approved status change, ready for the caller to
// persist.
type AppliedTransition struct {
	GoalID    string     `json:"goalId"`
	From      GoalStatus `json:"from"`
	To        GoalStatus `json:"to"`
	AppliedBy string     `json:"appliedBy"`
	AppliedAt time.Time  `json:"appliedAt"`
}

// transitionAction maps a legal edge to the action the caller must be
// authorized for.
func transitionAction(from, to GoalStatus) (Action, bool) {
	switch {
	case from == StatusPending && to == StatusApproved:
		return ActionApprove, true
	case from == StatusPending && to == StatusRejected:
		return ActionReject, true
	case from == StatusApproved && to == StatusCompleted:
		return ActionMarkCompleted, true
	}
	return "", false
}

// RequestTransition validates the requested status change end to end. The
// returned error is a *Denial for business refusals; any other error is a
// defect in the inputs.
func (e Engine) RequestTransition(principal auth.Principal, g Goal, requested GoalStatus) (AppliedTransition, error) {
	if check := ValidateTransition(g.Status, requested); !check.Legal {
		return AppliedTransition{}, &Denial{Kind: DenialInvalidTransition, Reason: check.Reason}
	}

	action, ok := transitionAction(g.Status, requested)
	if !ok {
		return AppliedTransition{}, &Denial{Kind: DenialUnknownAction, Reason: ReasonUnknownAction}
	}

	if decision := e.Policy.Authorize(principal, action, g); !decision.Allowed {
		return AppliedTransition{}, denialFromDecision(decision)
	}

	return AppliedTransition{
		GoalID:    g.ID,
		From:      g.Status,
		To:        requested,
		AppliedBy: principal.ID,
		AppliedAt: e.now(),
	}, nil
}

// RequestRating validates a rating submission against g at the given
// instant. A period with start after end fails loudly before any decision
// is computed.
func (e Engine) RequestRating(principal auth.Principal, g Goal, at time.Time, period RatingPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}
	if decision := e.Policy.Authorize(principal, ActionSubmitRating, g); !decision.Allowed {
		return denialFromDecision(decision)
	}
	if !CanSubmitRating(g, at, period) {
		return &Denial{Kind: DenialNotEligible, Reason: "outside rating window or goal not approved"}
	}
	return nil
}

// Authorize exposes the policy verdict for actions that do not change
// status, such as reads and descriptive updates.
func (e Engine) Authorize(principal auth.Principal, action Action, g Goal) error {
	decision := e.Policy.Authorize(principal, action, g)
	if decision.Allowed {
		return nil
	}
	return denialFromDecision(decision)
}

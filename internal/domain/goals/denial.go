package goals

type DenialKind string

const (
	DenialInvalidTransition DenialKind = "invalid_transition"
	DenialForbidden         DenialKind = "forbidden"
	DenialNotEligible       DenialKind = "not_eligible"
	DenialUnknownAction     DenialKind = "unknown_action"
)

// Denial is a structured, non-exceptional refusal of a requested action.
// It satisfies error so services and handlers can route it through normal
// error flow and recover the kind with errors.As. A denial is a terminal
// business outcome, never a defect, and is not retryable.
type Denial struct {
	Kind   DenialKind `json:"kind"`
	Reason string     `json:"reason"`
}

func (d *Denial) Error() string {
	return string(d.Kind) + ": " + d.Reason
}

func denialFromDecision(decision Decision) *Denial {
	kind := DenialForbidden
	if decision.Reason == ReasonUnknownAction {
		kind = DenialUnknownAction
	}
	return &Denial{Kind: kind, Reason: decision.Reason}
}

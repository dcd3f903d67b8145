package goals

import (
	"errors"
	"time"
)

// ErrInvalidPeriod marks a rating period whose start lies after its end.
// That is a caller contract violation, not a denial, and surfaces as a hard
// error before any decision is computed.
var ErrInvalidPeriod = errors.New("rating period start is after end")

// RatingPeriod is the configured window during which rating submission is
// allowed. It is owned by the surrounding system and read fresh per
// decision, never cached or mutated here.
type RatingPeriod struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p RatingPeriod) Validate() error {
	if p.Start.After(p.End) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains reports whether t falls inside the window, boundaries included.
func (p RatingPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// CanSubmitRating reports whether a rating may be submitted against g at
// the given instant. Both conjuncts are required: the goal must currently
// be approved and the instant must fall inside the window. A goal
// completed mid-window becomes ineligible immediately.
func CanSubmitRating(g Goal, now time.Time, period RatingPeriod) bool {
	return g.Status == StatusApproved && period.Contains(now)
}

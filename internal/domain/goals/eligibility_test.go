package goals

import (
	"errors"
	"testing"
	"time"
)

func testPeriod() RatingPeriod {
	return RatingPeriod{
		ID:    "period-1",
		Name:  "H1 2026",
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC),
	}
}

func TestCanSubmitRatingClosedInterval(t *testing.T) {
	period := testPeriod()
	goal := testGoal(StatusApproved)

	for _, at := range []time.Time{
		period.Start,
		period.Start.Add(30 * 24 * time.Hour),
		period.End,
	} {
		if !CanSubmitRating(goal, at, period) {
			t.Fatalf("expected rating at %v to be eligible", at)
		}
	}

	for _, at := range []time.Time{
		period.Start.Add(-time.Second),
		period.End.Add(time.Second),
	} {
		if CanSubmitRating(goal, at, period) {
			t.Fatalf("expected rating at %v to be ineligible", at)
		}
	}
}

func TestCanSubmitRatingStatusDominates(t *testing.T) {
	period := testPeriod()
	inside := period.Start.Add(24 * time.Hour)

	for _, status := range []GoalStatus{StatusPending, StatusRejected, StatusCompleted} {
		if CanSubmitRating(testGoal(status), inside, period) {
			t.Fatalf("expected %s goal to be ineligible even inside the window", status)
		}
	}
}

func TestRatingPeriodValidate(t *testing.T) {
	if err := testPeriod().Validate(); err != nil {
		t.Fatalf("unexpected error for well-formed period: %v", err)
	}

	inverted := RatingPeriod{
		Start: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := inverted.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	instant := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	point := RatingPeriod{Start: instant, End: instant}
	if err := point.Validate(); err != nil {
		t.Fatalf("a zero-length window is valid, got %v", err)
	}
	if !point.Contains(instant) {
		t.Fatal("a zero-length window must contain its own instant")
	}
}

package goals

import (
	"context"
	"time"
)

// StoreAPI is the persistence port the goals service owns. Implementations
// must make CompareAndSetStatus atomic per goal so that of two writers
// deciding against the same snapshot at most one commits.
type StoreAPI interface {
	GetGoal(ctx context.Context, goalID string) (Goal, error)
	ListGoals(ctx context.Context, ownerID, department string, limit, offset int) ([]Goal, error)
	CountGoals(ctx context.Context, ownerID, department string) (int, error)
	CreateGoal(ctx context.Context, ownerID string, details GoalDetails) (string, error)
	UpdateGoalDetails(ctx context.Context, goalID string, details GoalDetails) error
	UpdateGoalProgress(ctx context.Context, goalID string, progress float64) error

	// CompareAndSetStatus applies from -> to only if the stored status
	// still equals from. It returns false when a concurrent writer got
	// there first.
	CompareAndSetStatus(ctx context.Context, goalID string, from, to GoalStatus, feedback, actorID string, at time.Time) (bool, error)

	GetRating(ctx context.Context, goalID, periodID string) (Rating, error)
	UpsertEmployeeScore(ctx context.Context, goalID, periodID string, score float64, feedback string, at time.Time) error
	UpsertManagerScore(ctx context.Context, goalID, periodID string, score float64, feedback string, at time.Time) error

	ActivePeriod(ctx context.Context, at time.Time) (RatingPeriod, error)
	CreatePeriod(ctx context.Context, period RatingPeriod) (string, error)
	ListPeriods(ctx context.Context) ([]RatingPeriod, error)
}

package goals

import (
	"context"

	"pms/internal/domain/auth"
)

// casRetries bounds the optimistic-concurrency loop. Each retry re-reads
// the goal and re-runs the full engine decision against the fresh status.
const casRetries = 3

type Service struct {
	Store  StoreAPI
	Engine Engine
}

func NewService(store StoreAPI, engine Engine) *Service {
	return &Service{Store: store, Engine: engine}
}

// Transition validates and commits a status change. The commit is a
// compare-and-set keyed on the status the decision was computed against;
// when a concurrent writer wins the race the goal is re-read and the
// engine re-invoked, so a transition never lands on a stale snapshot.
func (s *Service) Transition(ctx context.Context, principal auth.Principal, goalID string, requested GoalStatus, feedback string) (AppliedTransition, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		g, err := s.Store.GetGoal(ctx, goalID)
		if err != nil {
			return AppliedTransition{}, err
		}

		applied, err := s.Engine.RequestTransition(principal, g, requested)
		if err != nil {
			return AppliedTransition{}, err
		}

		committed, err := s.Store.CompareAndSetStatus(ctx, goalID, applied.From, applied.To, feedback, applied.AppliedBy, applied.AppliedAt)
		if err != nil {
			return AppliedTransition{}, err
		}
		if committed {
			return applied, nil
		}
	}
	return AppliedTransition{}, ErrConflict
}

// SubmitRating records a score for the active rating period. Employees
// write the employee score of their own goal; managers write the manager
// score. Neither write ever touches the other role's column.
func (s *Service) SubmitRating(ctx context.Context, principal auth.Principal, goalID string, score float64, feedback string) (Rating, error) {
	now := s.Engine.now()

	period, err := s.Store.ActivePeriod(ctx, now)
	if err != nil {
		return Rating{}, err
	}

	g, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Rating{}, err
	}

	if err := s.Engine.RequestRating(principal, g, now, period); err != nil {
		return Rating{}, err
	}

	if principal.Role == auth.RoleManager {
		err = s.Store.UpsertManagerScore(ctx, goalID, period.ID, score, feedback, now)
	} else {
		err = s.Store.UpsertEmployeeScore(ctx, goalID, period.ID, score, feedback, now)
	}
	if err != nil {
		return Rating{}, err
	}

	return s.Store.GetRating(ctx, goalID, period.ID)
}

func (s *Service) GetRating(ctx context.Context, principal auth.Principal, goalID string) (Rating, error) {
	g, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Rating{}, err
	}
	if err := s.Engine.Authorize(principal, ActionViewGoal, g); err != nil {
		return Rating{}, err
	}

	period, err := s.Store.ActivePeriod(ctx, s.Engine.now())
	if err != nil {
		return Rating{}, err
	}
	return s.Store.GetRating(ctx, goalID, period.ID)
}

func (s *Service) GetGoal(ctx context.Context, principal auth.Principal, goalID string) (Goal, error) {
	g, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	if err := s.Engine.Authorize(principal, ActionViewGoal, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// ListGoals scopes the listing by role: employees see their own goals,
// managers their department, admins everything.
func (s *Service) ListGoals(ctx context.Context, principal auth.Principal, limit, offset int) ([]Goal, int, error) {
	ownerID := ""
	department := ""
	switch principal.Role {
	case auth.RoleManager:
		department = principal.Department
	case auth.RoleAdmin:
	default:
		ownerID = principal.ID
	}

	total, err := s.Store.CountGoals(ctx, ownerID, department)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.Store.ListGoals(ctx, ownerID, department, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CreateGoal registers a new pending goal owned by the calling employee.
func (s *Service) CreateGoal(ctx context.Context, principal auth.Principal, details GoalDetails) (Goal, error) {
	id, err := s.Store.CreateGoal(ctx, principal.ID, details)
	if err != nil {
		return Goal{}, err
	}
	return s.Store.GetGoal(ctx, id)
}

func (s *Service) UpdateGoal(ctx context.Context, principal auth.Principal, goalID string, details GoalDetails) (Goal, error) {
	g, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	if err := s.Engine.Authorize(principal, ActionUpdateGoal, g); err != nil {
		return Goal{}, err
	}
	if err := s.Store.UpdateGoalDetails(ctx, goalID, details); err != nil {
		return Goal{}, err
	}
	return s.Store.GetGoal(ctx, goalID)
}

func (s *Service) UpdateProgress(ctx context.Context, principal auth.Principal, goalID string, progress float64) (Goal, error) {
	if progress < 0 || progress > 100 {
		return Goal{}, ErrProgressRange
	}
	g, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	if err := s.Engine.Authorize(principal, ActionSubmitProgress, g); err != nil {
		return Goal{}, err
	}
	if err := s.Store.UpdateGoalProgress(ctx, goalID, progress); err != nil {
		return Goal{}, err
	}
	return s.Store.GetGoal(ctx, goalID)
}

// CreatePeriod registers a rating window. An inverted window is rejected
// before it can ever reach a decision.
func (s *Service) CreatePeriod(ctx context.Context, period RatingPeriod) (RatingPeriod, error) {
	if err := period.Validate(); err != nil {
		return RatingPeriod{}, err
	}
	id, err := s.Store.CreatePeriod(ctx, period)
	if err != nil {
		return RatingPeriod{}, err
	}
	period.ID = id
	return period, nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]RatingPeriod, error) {
	return s.Store.ListPeriods(ctx)
}

package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const goalColumns = `
    g.id, g.owner_id, e.department, g.title, g.description, g.category,
    g.priority, g.tags, g.status, g.progress, g.feedback, g.due_date,
    g.created_at, g.updated_at`

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.OwnerID, &g.OwnerDepartment, &g.Title, &g.Description,
		&g.Category, &g.Priority, &g.Tags, &g.Status, &g.Progress, &g.Feedback,
		&g.DueDate, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	g, err := scanGoal(s.DB.QueryRow(ctx, `
    SELECT`+goalColumns+`
    FROM goals g
    JOIN employees e ON g.owner_id = e.id
    WHERE g.id = $1
  `, goalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, ownerID, department string, limit, offset int) ([]Goal, error) {
	query := `
    SELECT` + goalColumns + `
    FROM goals g
    JOIN employees e ON g.owner_id = e.id
    WHERE 1=1
  `
	args := []any{}
	if ownerID != "" {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND g.owner_id = $%d", len(args))
	}
	if department != "" {
		args = append(args, department)
		query += fmt.Sprintf(" AND e.department = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY g.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) CountGoals(ctx context.Context, ownerID, department string) (int, error) {
	query := "SELECT COUNT(1) FROM goals g JOIN employees e ON g.owner_id = e.id WHERE 1=1"
	args := []any{}
	if ownerID != "" {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND g.owner_id = $%d", len(args))
	}
	if department != "" {
		args = append(args, department)
		query += fmt.Sprintf(" AND e.department = $%d", len(args))
	}
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CreateGoal(ctx context.Context, ownerID string, details GoalDetails) (string, error) {
	tags := details.Tags
	if tags == nil {
		tags = []string{}
	}
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (owner_id, title, description, category, priority, tags, due_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, ownerID, details.Title, details.Description, details.Category, details.Priority, tags, details.DueDate, StatusPending).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateGoalDetails(ctx context.Context, goalID string, details GoalDetails) error {
	tags := details.Tags
	if tags == nil {
		tags = []string{}
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET title = $1, description = $2, category = $3, priority = $4, tags = $5, due_date = $6, updated_at = now()
    WHERE id = $7
  `, details.Title, details.Description, details.Category, details.Priority, tags, details.DueDate, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Store) UpdateGoalProgress(ctx context.Context, goalID string, progress float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET progress = $1, updated_at = now()
    WHERE id = $2
  `, progress, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Store) CompareAndSetStatus(ctx context.Context, goalID string, from, to GoalStatus, feedback, actorID string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET status = $1,
        feedback = CASE WHEN $2 <> '' THEN $2 ELSE feedback END,
        status_changed_by = $3,
        status_changed_at = $4,
        updated_at = now()
    WHERE id = $5 AND status = $6
  `, to, feedback, actorID, at, goalID, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) GetRating(ctx context.Context, goalID, periodID string) (Rating, error) {
	var rating Rating
	err := s.DB.QueryRow(ctx, `
    SELECT id, goal_id, period_id, employee_score, manager_score, feedback, submitted_at, updated_at
    FROM ratings
    WHERE goal_id = $1 AND period_id = $2
  `, goalID, periodID).Scan(&rating.ID, &rating.GoalID, &rating.PeriodID,
		&rating.EmployeeScore, &rating.ManagerScore, &rating.Feedback,
		&rating.SubmittedAt, &rating.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rating{}, ErrRatingNotFound
	}
	if err != nil {
		return Rating{}, err
	}
	return rating, nil
}

func (s *Store) UpsertEmployeeScore(ctx context.Context, goalID, periodID string, score float64, feedback string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO ratings (goal_id, period_id, employee_score, feedback, submitted_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$5)
    ON CONFLICT (goal_id, period_id) DO UPDATE
    SET employee_score = EXCLUDED.employee_score,
        feedback = CASE WHEN EXCLUDED.feedback <> '' THEN EXCLUDED.feedback ELSE ratings.feedback END,
        updated_at = EXCLUDED.updated_at
  `, goalID, periodID, score, feedback, at)
	return err
}

func (s *Store) UpsertManagerScore(ctx context.Context, goalID, periodID string, score float64, feedback string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO ratings (goal_id, period_id, manager_score, feedback, submitted_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$5)
    ON CONFLICT (goal_id, period_id) DO UPDATE
    SET manager_score = EXCLUDED.manager_score,
        feedback = CASE WHEN EXCLUDED.feedback <> '' THEN EXCLUDED.feedback ELSE ratings.feedback END,
        updated_at = EXCLUDED.updated_at
  `, goalID, periodID, score, feedback, at)
	return err
}

func (s *Store) ActivePeriod(ctx context.Context, at time.Time) (RatingPeriod, error) {
	var period RatingPeriod
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, start_at, end_at
    FROM rating_periods
    WHERE start_at <= $1 AND end_at >= $1
    ORDER BY start_at DESC
    LIMIT 1
  `, at).Scan(&period.ID, &period.Name, &period.Start, &period.End)
	if errors.Is(err, pgx.ErrNoRows) {
		return RatingPeriod{}, ErrNoActivePeriod
	}
	if err != nil {
		return RatingPeriod{}, err
	}
	return period, nil
}

func (s *Store) CreatePeriod(ctx context.Context, period RatingPeriod) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO rating_periods (name, start_at, end_at)
    VALUES ($1,$2,$3)
    RETURNING id
  `, period.Name, period.Start, period.End).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListPeriods(ctx context.Context) ([]RatingPeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, start_at, end_at
    FROM rating_periods
    ORDER BY start_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RatingPeriod
	for rows.Next() {
		var period RatingPeriod
		if err := rows.Scan(&period.ID, &period.Name, &period.Start, &period.End); err != nil {
			return nil, err
		}
		out = append(out, period)
	}
	return out, rows.Err()
}

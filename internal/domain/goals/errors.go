package goals

import "errors"

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrNoActivePeriod = errors.New("no active rating period")
	ErrConflict       = errors.New("goal was modified concurrently")
	ErrProgressRange  = errors.New("progress must be between 0 and 100")
)

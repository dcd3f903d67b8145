package notifications

const (
	TypeGoalApproved    = "goal_approved"
	TypeGoalRejected    = "goal_rejected"
	TypeGoalCompleted   = "goal_completed"
	TypeRatingSubmitted = "rating_submitted"
)

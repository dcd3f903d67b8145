package goals

import "time"

type Goal struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"ownerId"`
	OwnerDepartment string     `json:"ownerDepartment"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Priority        string     `json:"priority"`
	Tags            []string   `json:"tags"`
	Status          GoalStatus `json:"status"`
	Progress        float64    `json:"progress"`
	Feedback        string     `json:"feedback"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Rating holds at most one score per role for a goal within one rating
// period. A role only ever writes its own score column.
type Rating struct {
	ID            string    `json:"id"`
	GoalID        string    `json:"goalId"`
	PeriodID      string    `json:"periodId"`
	EmployeeScore *float64  `json:"employeeScore,omitempty"`
	ManagerScore  *float64  `json:"managerScore,omitempty"`
	Feedback      string    `json:"feedback"`
	SubmittedAt   time.Time `json:"submittedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GoalDetails carries the descriptive fields an owner may edit. Status and
// progress move through their own operations.
type GoalDetails struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

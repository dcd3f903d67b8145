package reports

import "fmt"

// Summary aggregates goal lifecycle and rating outcomes for one department
// or the whole organisation.
type Summary struct {
	GoalsTotal           int            `json:"goalsTotal"`
	GoalsByStatus        map[string]int `json:"goalsByStatus"`
	CompletionRate       float64        `json:"completionRate"`
	ScoreDistribution    map[string]int `json:"scoreDistribution"`
	AverageEmployeeScore float64        `json:"averageEmployeeScore"`
	AverageManagerScore  float64        `json:"averageManagerScore"`
}

func buildSummary(statuses []string, employeeScores, managerScores []float64) Summary {
	summary := Summary{
		GoalsByStatus:     map[string]int{},
		ScoreDistribution: map[string]int{},
	}

	completed := 0
	for _, status := range statuses {
		summary.GoalsTotal++
		summary.GoalsByStatus[status]++
		if status == "completed" {
			completed++
		}
	}
	if summary.GoalsTotal > 0 {
		summary.CompletionRate = float64(completed) / float64(summary.GoalsTotal)
	}

	for _, score := range append(append([]float64{}, employeeScores...), managerScores...) {
		key := fmt.Sprintf("%d", int(score+0.5))
		summary.ScoreDistribution[key]++
	}
	summary.AverageEmployeeScore = average(employeeScores)
	summary.AverageManagerScore = average(managerScores)
	return summary
}

func average(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, score := range scores {
		total += score
	}
	return total / float64(len(scores))
}

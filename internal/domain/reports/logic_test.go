package reports

import "testing"

func TestBuildSummary(t *testing.T) {
	statuses := []string{"pending", "approved", "approved", "completed", "rejected"}
	employeeScores := []float64{3.2, 4.1}
	managerScores := []float64{4.9}

	summary := buildSummary(statuses, employeeScores, managerScores)
	if summary.GoalsTotal != 5 {
		t.Fatalf("expected 5 goals, got %d", summary.GoalsTotal)
	}
	if summary.GoalsByStatus["approved"] != 2 || summary.GoalsByStatus["completed"] != 1 {
		t.Fatalf("unexpected status counts: %+v", summary.GoalsByStatus)
	}
	if summary.CompletionRate != 0.2 {
		t.Fatalf("expected completion rate 0.2, got %v", summary.CompletionRate)
	}
	if summary.ScoreDistribution["3"] != 1 || summary.ScoreDistribution["4"] != 1 || summary.ScoreDistribution["5"] != 1 {
		t.Fatalf("unexpected score distribution: %+v", summary.ScoreDistribution)
	}
	if summary.AverageManagerScore != 4.9 {
		t.Fatalf("expected manager average 4.9, got %v", summary.AverageManagerScore)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := buildSummary(nil, nil, nil)
	if summary.GoalsTotal != 0 || summary.CompletionRate != 0 {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}
	if summary.AverageEmployeeScore != 0 || summary.AverageManagerScore != 0 {
		t.Fatalf("averages over no scores must be zero: %+v", summary)
	}
	if len(summary.ScoreDistribution) != 0 {
		t.Fatalf("expected empty distribution, got %+v", summary.ScoreDistribution)
	}
}

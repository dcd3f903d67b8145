package reports

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jung-kurt/gofpdf"
)

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// Summary aggregates goals and ratings, optionally scoped to one
// department.
func (s *Service) Summary(ctx context.Context, department string) (Summary, error) {
	statusQuery := `
    SELECT g.status
    FROM goals g
    JOIN employees e ON g.owner_id = e.id
  `
	scoreQuery := `
    SELECT r.employee_score, r.manager_score
    FROM ratings r
    JOIN goals g ON r.goal_id = g.id
    JOIN employees e ON g.owner_id = e.id
  `
	var args []any
	if department != "" {
		statusQuery += " WHERE e.department = $1"
		scoreQuery += " WHERE e.department = $1"
		args = append(args, department)
	}

	rows, err := s.DB.Query(ctx, statusQuery, args...)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return Summary{}, err
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	scoreRows, err := s.DB.Query(ctx, scoreQuery, args...)
	if err != nil {
		return Summary{}, err
	}
	defer scoreRows.Close()

	var employeeScores, managerScores []float64
	for scoreRows.Next() {
		var employee, manager *float64
		if err := scoreRows.Scan(&employee, &manager); err != nil {
			return Summary{}, err
		}
		if employee != nil {
			employeeScores = append(employeeScores, *employee)
		}
		if manager != nil {
			managerScores = append(managerScores, *manager)
		}
	}
	if err := scoreRows.Err(); err != nil {
		return Summary{}, err
	}

	return buildSummary(statuses, employeeScores, managerScores), nil
}

// SummaryPDF renders the summary as a one-page PDF.
func (s *Service) SummaryPDF(ctx context.Context, department string) ([]byte, error) {
	summary, err := s.Summary(ctx, department)
	if err != nil {
		return nil, err
	}

	title := "Performance Summary"
	if department != "" {
		title += " - " + department
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Goals: %d (completion rate %.0f%%)", summary.GoalsTotal, summary.CompletionRate*100))
	pdf.Ln(7)

	statuses := make([]string, 0, len(summary.GoalsByStatus))
	for status := range summary.GoalsByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		pdf.Cell(0, 8, fmt.Sprintf("  %s: %d", status, summary.GoalsByStatus[status]))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.Cell(0, 8, fmt.Sprintf("Average self score: %.2f", summary.AverageEmployeeScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average manager score: %.2f", summary.AverageManagerScore))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

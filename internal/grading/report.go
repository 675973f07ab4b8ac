package grading

import (
	"fmt"
	"strings"
)

// StudentReport renders a human-readable report for the student: header,
// total score line, one block per sub-question, overall feedback, and a
// review notice when the result is flagged.
func StudentReport(r *GradeResult) string {
	var b strings.Builder
	rule := strings.Repeat("-", 60)

	b.WriteString("GRADING REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Assignment: %s\n", r.AssignmentID)
	fmt.Fprintf(&b, "Student:    %s\n", r.StudentID)
	fmt.Fprintf(&b, "Graded:     %s\n", r.GradedAt.Format("2006-01-02 15:04"))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "SCORE: %g/%g (%.1f%%) - %s\n", r.TotalScore, r.TotalPossible, r.Percentage, r.LetterGrade())
	b.WriteString(rule + "\n\n")

	for _, qg := range r.QuestionGrades {
		status := "✗"
		if qg.IsCorrect {
			status = "✓"
		}
		fmt.Fprintf(&b, "Q%s: %s %g/%g\n", qg.QuestionID, status, qg.PointsEarned, qg.PointsPossible)
		fmt.Fprintf(&b, "  Your answer: %s\n", qg.StudentAnswer)
		if !qg.IsCorrect {
			fmt.Fprintf(&b, "  Correct answer: %s\n", qg.CorrectAnswer)
		}
		fmt.Fprintf(&b, "  %s\n\n", qg.Feedback)
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "OVERALL FEEDBACK:\n%s\n", r.OverallFeedback)
	if r.NeedsReview {
		b.WriteString("\nThis submission has been flagged for manual review.\n")
	}
	return b.String()
}

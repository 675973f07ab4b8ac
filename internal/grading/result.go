package grading

import (
	"fmt"
	"time"
)

// QuestionGrade is the scoring outcome for one sub-question.
type QuestionGrade struct {
	QuestionID     string  `json:"question_id"`
	PointsEarned   float64 `json:"points_earned"`
	PointsPossible float64 `json:"points_possible"`
	IsCorrect      bool    `json:"is_correct"`
	StudentAnswer  string  `json:"student_answer"`
	CorrectAnswer  string  `json:"correct_answer"`
	Feedback       string  `json:"feedback"`
	// ReviewNote is internal; it never reaches the student report.
	ReviewNote string `json:"review_note,omitempty"`
}

// GradeResult is the complete scored report for one submission. It copies
// every field it needs from the key and submission, so it stays valid after
// both are gone.
type GradeResult struct {
	ID              string          `json:"id"`
	StudentID       string          `json:"student_id"`
	AssignmentID    string          `json:"assignment_id"`
	TotalScore      float64         `json:"total_score"`
	TotalPossible   float64         `json:"total_possible"`
	Percentage      float64         `json:"percentage"`
	QuestionGrades  []QuestionGrade `json:"question_grades"`
	OverallFeedback string          `json:"overall_feedback"`
	NeedsReview     bool            `json:"needs_review"`
	ReviewReasons   []string        `json:"review_reasons,omitempty"`
	GradedAt        time.Time       `json:"graded_at"`
	GradedBy        string          `json:"graded_by"`
}

// LetterGrade derives the letter from the percentage. Always computed,
// never stored, so a scale change recomputes everywhere at once.
func (r *GradeResult) LetterGrade() string {
	switch {
	case r.Percentage >= 90:
		return "A"
	case r.Percentage >= 80:
		return "B"
	case r.Percentage >= 70:
		return "C"
	case r.Percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// Passed reports whether the percentage clears the given threshold.
func (r *GradeResult) Passed(passingPercentage float64) bool {
	return r.Percentage >= passingPercentage
}

// Accuracy is the unweighted share of correct sub-questions, as a
// percentage. Distinct from Percentage, which is point weighted.
func (r *GradeResult) Accuracy() float64 {
	if len(r.QuestionGrades) == 0 {
		return 0
	}
	correct := 0
	for _, qg := range r.QuestionGrades {
		if qg.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(r.QuestionGrades)) * 100
}

// IncorrectQuestions returns the sub-question grades marked wrong.
func (r *GradeResult) IncorrectQuestions() []QuestionGrade {
	var out []QuestionGrade
	for _, qg := range r.QuestionGrades {
		if !qg.IsCorrect {
			out = append(out, qg)
		}
	}
	return out
}

// GradebookRow is the flat export shape consumed by gradebook tooling.
type GradebookRow struct {
	StudentID    string  `json:"student_id"`
	AssignmentID string  `json:"assignment_id"`
	Score        float64 `json:"score"`
	Possible     float64 `json:"possible"`
	Percentage   string  `json:"percentage"`
	LetterGrade  string  `json:"letter_grade"`
	NeedsReview  string  `json:"needs_review"`
}

// GradebookRow flattens the result into one gradebook line.
func (r *GradeResult) GradebookRow() GradebookRow {
	needs := "No"
	if r.NeedsReview {
		needs = "Yes"
	}
	return GradebookRow{
		StudentID:    r.StudentID,
		AssignmentID: r.AssignmentID,
		Score:        r.TotalScore,
		Possible:     r.TotalPossible,
		Percentage:   fmt.Sprintf("%.2f%%", r.Percentage),
		LetterGrade:  r.LetterGrade(),
		NeedsReview:  needs,
	}
}

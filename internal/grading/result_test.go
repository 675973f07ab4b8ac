package grading

import (
	"strings"
	"testing"
)

func TestLetterGrade(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{100, "A"}, {90, "A"}, {89.99, "B"}, {80, "B"},
		{79.5, "C"}, {70, "C"}, {65, "D"}, {60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		r := GradeResult{Percentage: c.pct}
		if got := r.LetterGrade(); got != c.want {
			t.Errorf("LetterGrade(%g) = %s, want %s", c.pct, got, c.want)
		}
	}
}

func TestAccuracyVersusPercentage(t *testing.T) {
	// One correct 1-pointer and one wrong 9-pointer: accuracy 50%, score 10%.
	r := GradeResult{
		Percentage: 10,
		QuestionGrades: []QuestionGrade{
			{QuestionID: "1a", IsCorrect: true, PointsEarned: 1, PointsPossible: 1},
			{QuestionID: "1b", IsCorrect: false, PointsPossible: 9},
		},
	}
	if got := r.Accuracy(); got != 50 {
		t.Errorf("Accuracy = %g, want 50", got)
	}
	if r.Passed(60) {
		t.Error("10%% should not pass a 60%% bar")
	}
	if got := r.IncorrectQuestions(); len(got) != 1 || got[0].QuestionID != "1b" {
		t.Errorf("IncorrectQuestions = %v", got)
	}
}

func TestAccuracyEmpty(t *testing.T) {
	r := GradeResult{}
	if got := r.Accuracy(); got != 0 {
		t.Errorf("Accuracy of empty result = %g", got)
	}
}

func TestGradebookRow(t *testing.T) {
	r := GradeResult{
		StudentID:     "s42",
		AssignmentID:  "HW3",
		TotalScore:    8.5,
		TotalPossible: 10,
		Percentage:    85,
		NeedsReview:   true,
	}
	row := r.GradebookRow()
	if row.Percentage != "85.00%" {
		t.Errorf("Percentage = %q, want 85.00%%", row.Percentage)
	}
	if row.LetterGrade != "B" {
		t.Errorf("LetterGrade = %q", row.LetterGrade)
	}
	if row.NeedsReview != "Yes" {
		t.Errorf("NeedsReview = %q", row.NeedsReview)
	}
	if row.Score != 8.5 || row.Possible != 10 {
		t.Errorf("row = %+v", row)
	}

	r.NeedsReview = false
	if got := r.GradebookRow().NeedsReview; got != "No" {
		t.Errorf("NeedsReview = %q, want No", got)
	}
}

func TestStudentReport(t *testing.T) {
	r := GradeResult{
		StudentID:     "s42",
		AssignmentID:  "HW3",
		TotalScore:    3,
		TotalPossible: 4,
		Percentage:    75,
		QuestionGrades: []QuestionGrade{
			{QuestionID: "1a", IsCorrect: true, PointsEarned: 1, PointsPossible: 1,
				StudentAnswer: "True", Feedback: "Correct!"},
			{QuestionID: "2a", IsCorrect: false, PointsPossible: 2,
				StudentAnswer: "0.3", CorrectAnswer: "1/4",
				Feedback: "Incorrect. Your answer: 0.3. Correct answer: 1/4"},
		},
		OverallFeedback: "Areas for improvement:\n- Question 2a: Incorrect. Your answer: 0.3. Correct answer: 1/4\n",
		NeedsReview:     true,
	}
	report := StudentReport(&r)

	for _, want := range []string{
		"s42",
		"HW3",
		"3/4",
		"(75.0%)",
		"C",
		"1a",
		"2a",
		"1/4",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	// The correct answer is shown only under wrong questions.
	if n := strings.Count(report, "Correct answer:"); n != 1 {
		t.Errorf("report shows %d correct-answer lines, want 1:\n%s", n, report)
	}
	if !strings.Contains(report, "flagged for manual review") {
		t.Errorf("report missing review notice:\n%s", report)
	}
}

package grading

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
	"github.com/AhmedHAlshaer/mathgrader/internal/submission"
)

// Default confidence thresholds. Policy, not precision: both are
// overridable per engine.
const (
	DefaultExtractionThreshold = 0.5
	DefaultComparisonThreshold = 0.7
)

// Engine orchestrates per-sub-question comparison, applies grading rules,
// and aggregates into a complete GradeResult. It holds no mutable state
// beyond configuration, so one Engine may grade concurrently.
type Engine struct {
	cmp                 *Comparator
	extractionThreshold float64
	comparisonThreshold float64
	gradedBy            string
}

type EngineOption func(*Engine)

// WithComparator substitutes the answer comparator.
func WithComparator(c *Comparator) EngineOption { return func(e *Engine) { e.cmp = c } }

// WithExtractionThreshold sets the minimum extraction confidence for
// auto-scoring an answer.
func WithExtractionThreshold(t float64) EngineOption {
	return func(e *Engine) { e.extractionThreshold = t }
}

// WithComparisonThreshold sets the comparator confidence below which a
// grade carries an internal review note.
func WithComparisonThreshold(t float64) EngineOption {
	return func(e *Engine) { e.comparisonThreshold = t }
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		cmp:                 NewComparator(),
		extractionThreshold: DefaultExtractionThreshold,
		comparisonThreshold: DefaultComparisonThreshold,
		gradedBy:            "mathgrader",
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Grade scores one submission against a key.
func (e *Engine) Grade(sub submission.Submission, key answerkey.AnswerKey) GradeResult {
	var grades []QuestionGrade
	total := key.BasePoints

	for _, q := range key.Questions {
		for _, sq := range q.SubQuestions {
			qg := e.gradeSubQuestion(sq, sub.GetAnswer(sq.ID))
			grades = append(grades, qg)
			total += qg.PointsEarned
		}
	}
	if total < 0 {
		total = 0
	}

	pct := 0.0
	if key.TotalPoints > 0 {
		pct = total / key.TotalPoints * 100
	}

	needsReview := false
	var reasons []string
	for _, qg := range grades {
		if qg.ReviewNote != "" {
			needsReview = true
			reasons = append(reasons, fmt.Sprintf("%s: %s", qg.QuestionID, qg.ReviewNote))
		}
	}

	return GradeResult{
		ID:              uuid.NewString(),
		StudentID:       sub.StudentID,
		AssignmentID:    sub.AssignmentID,
		TotalScore:      total,
		TotalPossible:   key.TotalPoints,
		Percentage:      pct,
		QuestionGrades:  grades,
		OverallFeedback: overallFeedback(grades),
		NeedsReview:     needsReview,
		ReviewReasons:   reasons,
		GradedAt:        time.Now(),
		GradedBy:        e.gradedBy,
	}
}

// GradeBatch grades submissions sequentially with per-item progress.
// Each submission is independent; a degenerate one cannot affect the rest.
func (e *Engine) GradeBatch(subs []submission.Submission, key answerkey.AnswerKey) []GradeResult {
	results := make([]GradeResult, 0, len(subs))
	for i, sub := range subs {
		log.Printf("grading: [%d/%d] %s", i+1, len(subs), sub.StudentID)
		results = append(results, e.Grade(sub, key))
	}
	return results
}

func (e *Engine) gradeSubQuestion(sq answerkey.SubQuestion, ans *submission.StudentAnswer) QuestionGrade {
	qg := QuestionGrade{
		QuestionID:     sq.ID,
		PointsPossible: sq.Points,
		CorrectAnswer:  sq.Sol.Value,
	}

	if ans == nil || ans.RawText == "" {
		qg.Feedback = "No answer provided."
		return qg
	}
	qg.StudentAnswer = ans.ParsedValue

	if ans.Confidence < e.extractionThreshold {
		qg.StudentAnswer = ans.RawText
		qg.Feedback = "Could not reliably extract answer. Flagged for manual review."
		qg.ReviewNote = "low-confidence extraction"
		return qg
	}

	correct, confidence := e.cmp.Compare(ans.ParsedValue, sq.Sol.Value, sq.Type, sq.Sol.EquivalentForms)
	if confidence < e.comparisonThreshold {
		qg.ReviewNote = "answer comparison uncertain"
	}

	qg.IsCorrect = correct
	qg.PointsEarned = applyRule(correct, sq.Rule, sq.Points)
	if correct {
		qg.Feedback = "Correct!"
	} else {
		qg.Feedback = fmt.Sprintf("Incorrect. Your answer: %s. Correct answer: %s", ans.ParsedValue, sq.Sol.Value)
	}
	return qg
}

// applyRule maps a correctness outcome to earned points under the
// sub-question's rule. Partial credit currently scores as all-or-nothing;
// the kind is kept distinct for a future qualitative pass.
func applyRule(correct bool, rule answerkey.GradingRule, maxPoints float64) float64 {
	switch rule.Kind {
	case answerkey.RulePerItemPenalty:
		pts := rule.PointsIncorrect
		if correct {
			pts = rule.PointsCorrect
		}
		if pts < rule.MinimumScore {
			pts = rule.MinimumScore
		}
		return pts
	case answerkey.RulePartialCredit:
		fallthrough
	default:
		if correct {
			return maxPoints
		}
		return 0
	}
}

func overallFeedback(grades []QuestionGrade) string {
	var incorrect []QuestionGrade
	for _, qg := range grades {
		if !qg.IsCorrect {
			incorrect = append(incorrect, qg)
		}
	}
	if len(incorrect) == 0 {
		return "Excellent work! All answers are correct."
	}
	var b strings.Builder
	b.WriteString("Areas for improvement:\n")
	for _, qg := range incorrect {
		fmt.Fprintf(&b, "- Question %s: %s\n", qg.QuestionID, qg.Feedback)
	}
	return b.String()
}

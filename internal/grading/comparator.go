package grading

import (
	"regexp"
	"strings"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
)

// DefaultTolerance is the absolute tolerance for numeric comparison.
const DefaultTolerance = 1e-6

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize trims, lowercases, and collapses internal whitespace runs.
// Applied to both sides before any comparison.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return reSpaces.ReplaceAllString(s, " ")
}

// strategy decides equivalence of two already-normalized answers and
// reports a confidence in [0,1] for that decision.
type strategy interface {
	Compare(student, correct string) (bool, float64)
}

// Comparator is a stateless semantic answer comparator. It routes by
// answer type to one strategy per type from a fixed dispatch table.
type Comparator struct {
	strategies map[answerkey.AnswerType]strategy
	fallback   strategy
}

type ComparatorOption func(*comparatorConfig)

type comparatorConfig struct {
	tolerance float64
}

// WithTolerance overrides the numeric comparison tolerance.
func WithTolerance(tol float64) ComparatorOption {
	return func(c *comparatorConfig) { c.tolerance = tol }
}

// NewComparator installs the built-in per-type strategies.
func NewComparator(opts ...ComparatorOption) *Comparator {
	cfg := &comparatorConfig{tolerance: DefaultTolerance}
	for _, o := range opts {
		o(cfg)
	}
	numeric := numericStrategy{tol: cfg.tolerance}
	manual := manualStrategy{}
	return &Comparator{
		strategies: map[answerkey.AnswerType]strategy{
			answerkey.TypeTrueFalse:      booleanStrategy{},
			answerkey.TypeNumeric:        numeric,
			answerkey.TypeProbability:    probabilityStrategy{numeric: numeric, tol: cfg.tolerance},
			answerkey.TypeBigO:           bigOStrategy{tol: cfg.tolerance},
			answerkey.TypeMultipleChoice: multipleChoiceStrategy{},
			answerkey.TypeProof:          manual,
			answerkey.TypeFreeResponse:   manual,
			answerkey.TypeGraphing:       manual,
		},
		fallback: manual,
	}
}

// Compare reports whether the student answer is equivalent to the correct
// one under the declared answer type, with a confidence for the verdict.
func (c *Comparator) Compare(student, correct string, typ answerkey.AnswerType, equivalentForms []string) (bool, float64) {
	s := Normalize(student)
	k := Normalize(correct)

	if s == "" {
		return false, 1.0
	}
	if s == k {
		return true, 1.0
	}
	for _, form := range equivalentForms {
		if s == Normalize(form) {
			return true, 1.0
		}
	}

	st, ok := c.strategies[typ]
	if !ok {
		st = c.fallback
	}
	return st.Compare(s, k)
}

// --- strategies ---

var (
	trueWords  = map[string]bool{"true": true, "t": true, "1": true, "yes": true, "y": true}
	falseWords = map[string]bool{"false": true, "f": true, "0": true, "no": true, "n": true}
)

type booleanStrategy struct{}

func (booleanStrategy) Compare(student, correct string) (bool, float64) {
	sv, sOK := mapBool(student)
	cv, cOK := mapBool(correct)
	if !sOK || !cOK {
		return false, 0.5
	}
	return sv == cv, 1.0
}

func mapBool(s string) (val, ok bool) {
	if trueWords[s] {
		return true, true
	}
	if falseWords[s] {
		return false, true
	}
	return false, false
}

type numericStrategy struct{ tol float64 }

func (s numericStrategy) Compare(student, correct string) (bool, float64) {
	se, errS := ParseExpr(student)
	ce, errC := ParseExpr(correct)
	if errS != nil || errC != nil {
		return false, 0.5
	}
	equal, exact, err := Equivalent(se, ce, s.tol)
	if err != nil {
		return false, 0.5
	}
	switch {
	case equal && exact:
		return true, 1.0
	case equal:
		return true, 0.95
	default:
		return false, 0.9
	}
}

type probabilityStrategy struct {
	numeric numericStrategy
	tol     float64
}

func (s probabilityStrategy) Compare(student, correct string) (bool, float64) {
	// A percent-form key means the student's value is on the 0..1 scale
	// and must be lifted by 100 before comparing.
	if strings.HasSuffix(correct, "%") {
		sv, errS := evalConst(strings.TrimSuffix(student, "%"))
		cv, errC := evalConst(strings.TrimSuffix(correct, "%"))
		if errS == nil && errC == nil {
			if abs(sv*100-cv) < s.tol {
				return true, 0.95
			}
		}
	}
	return s.numeric.Compare(strings.TrimSuffix(student, "%"), strings.TrimSuffix(correct, "%"))
}

func evalConst(s string) (float64, error) {
	e, err := ParseExpr(s)
	if err != nil {
		return 0, err
	}
	return e.eval(nil)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

type bigOStrategy struct{ tol float64 }

func (s bigOStrategy) Compare(student, correct string) (bool, float64) {
	si := extractBigO(student)
	ci := extractBigO(correct)
	if si == "" || ci == "" {
		return false, 0.5
	}
	si = normalizeBigO(si)
	ci = normalizeBigO(ci)
	if si == ci {
		return true, 1.0
	}
	se, errS := ParseExpr(si)
	ce, errC := ParseExpr(ci)
	if errS == nil && errC == nil {
		if equal, _, err := Equivalent(se, ce, s.tol); err == nil && equal {
			return true, 0.95
		}
	}
	return false, 0.8
}

type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) Compare(student, correct string) (bool, float64) {
	if student == "" || correct == "" {
		return student == correct, 1.0
	}
	return student[0] == correct[0], 1.0
}

// manualStrategy covers proofs, free responses, and graphs: never
// auto-graded with certainty, always surfaced for review.
type manualStrategy struct{}

func (manualStrategy) Compare(string, string) (bool, float64) { return false, 0.3 }

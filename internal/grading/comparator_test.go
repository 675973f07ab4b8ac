package grading

import (
	"testing"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
)

func TestCompareReflexive(t *testing.T) {
	cmp := NewComparator()
	types := []answerkey.AnswerType{
		answerkey.TypeTrueFalse,
		answerkey.TypeNumeric,
		answerkey.TypeProbability,
		answerkey.TypeBigO,
		answerkey.TypeMultipleChoice,
	}
	for _, typ := range types {
		for _, v := range []string{"True", "0.25", "O(n^2)", "B"} {
			ok, conf := cmp.Compare(v, v, typ, nil)
			if !ok || conf != 1.0 {
				t.Errorf("Compare(%q, %q, %s) = (%v, %g), want (true, 1.0)", v, v, typ, ok, conf)
			}
		}
	}
}

func TestCompareEmptyStudentAnswer(t *testing.T) {
	cmp := NewComparator()
	ok, conf := cmp.Compare("   ", "42", answerkey.TypeNumeric, nil)
	if ok || conf != 1.0 {
		t.Fatalf("empty answer = (%v, %g), want confident incorrect", ok, conf)
	}
}

func TestCompareEquivalentForms(t *testing.T) {
	cmp := NewComparator()
	ok, conf := cmp.Compare("0.25", "1/4", answerkey.TypeNumeric, []string{"0.25"})
	if !ok || conf != 1.0 {
		t.Fatalf("listed form = (%v, %g), want (true, 1.0)", ok, conf)
	}
}

func TestCompareBoolean(t *testing.T) {
	cmp := NewComparator()
	cases := []struct {
		student, correct string
		ok               bool
		conf             float64
	}{
		{"T", "True", true, 1.0},
		{"yes", "true", true, 1.0},
		{"1", "True", true, 1.0},
		{"False", "True", false, 1.0},
		{"n", "False", true, 1.0},
		{"maybe", "True", false, 0.5},
	}
	for _, c := range cases {
		ok, conf := cmp.Compare(c.student, c.correct, answerkey.TypeTrueFalse, nil)
		if ok != c.ok || conf != c.conf {
			t.Errorf("Compare(%q, %q) = (%v, %g), want (%v, %g)",
				c.student, c.correct, ok, conf, c.ok, c.conf)
		}
	}
}

func TestCompareNumeric(t *testing.T) {
	cmp := NewComparator()
	cases := []struct {
		student, correct string
		ok               bool
		minConf          float64
	}{
		{"0.25", "1/4", true, 1.0},  // exact rational match
		{"1/4", "0.25", true, 1.0},  // and symmetric
		{"2^3", "8", true, 1.0},
		{"0.3333", "1/3", false, 0.9}, // outside default tolerance
		{"5", "7", false, 0.9},
		{"@!", "7", false, 0.5}, // unparseable falls to low confidence
	}
	for _, c := range cases {
		ok, conf := cmp.Compare(c.student, c.correct, answerkey.TypeNumeric, nil)
		if ok != c.ok || conf < c.minConf {
			t.Errorf("Compare(%q, %q) = (%v, %g), want (%v, >=%g)",
				c.student, c.correct, ok, conf, c.ok, c.minConf)
		}
	}
}

func TestCompareNumericTolerance(t *testing.T) {
	cmp := NewComparator(WithTolerance(0.01))
	ok, conf := cmp.Compare("0.333", "1/3", answerkey.TypeNumeric, nil)
	if !ok {
		t.Fatal("0.333 vs 1/3 should pass a 0.01 tolerance")
	}
	if conf != 0.95 {
		t.Errorf("tolerance match confidence = %g, want 0.95", conf)
	}
}

func TestCompareProbability(t *testing.T) {
	cmp := NewComparator()

	// Decimal student answer against a percent-form key.
	ok, conf := cmp.Compare("0.25", "25%", answerkey.TypeProbability, nil)
	if !ok || conf != 0.95 {
		t.Fatalf("0.25 vs 25%% = (%v, %g), want (true, 0.95)", ok, conf)
	}

	// Fraction against decimal on the same scale.
	ok, _ = cmp.Compare("1/2", "0.5", answerkey.TypeProbability, nil)
	if !ok {
		t.Fatal("1/2 vs 0.5 should compare equal")
	}

	ok, _ = cmp.Compare("0.3", "25%", answerkey.TypeProbability, nil)
	if ok {
		t.Fatal("0.3 vs 25% should not compare equal")
	}
}

func TestCompareBigO(t *testing.T) {
	cmp := NewComparator()
	cases := []struct {
		student, correct string
		ok               bool
		minConf          float64
	}{
		{"O(n^2)", "O(n**2)", true, 1.0},  // same after normalization
		{"n^2", "O(n^2)", true, 1.0},      // wrapper optional
		{"O(n*n)", "O(n^2)", true, 0.95},  // algebraically equal
		{"O(n)", "O(n^2)", false, 0.8},
		{"O(n log(n))", "O(nlog(n))", true, 1.0},
	}
	for _, c := range cases {
		ok, conf := cmp.Compare(c.student, c.correct, answerkey.TypeBigO, nil)
		if ok != c.ok || conf < c.minConf {
			t.Errorf("Compare(%q, %q) = (%v, %g), want (%v, >=%g)",
				c.student, c.correct, ok, conf, c.ok, c.minConf)
		}
	}
}

func TestCompareMultipleChoice(t *testing.T) {
	cmp := NewComparator()
	ok, conf := cmp.Compare("b) the second option", "B", answerkey.TypeMultipleChoice, nil)
	if !ok || conf != 1.0 {
		t.Fatalf("choice letter = (%v, %g), want (true, 1.0)", ok, conf)
	}
	ok, _ = cmp.Compare("c", "B", answerkey.TypeMultipleChoice, nil)
	if ok {
		t.Fatal("c vs B should not match")
	}
}

func TestCompareManualTypes(t *testing.T) {
	cmp := NewComparator()
	for _, typ := range []answerkey.AnswerType{
		answerkey.TypeProof,
		answerkey.TypeFreeResponse,
		answerkey.TypeGraphing,
	} {
		ok, conf := cmp.Compare("my attempt", "the model answer", typ, nil)
		if ok || conf != 0.3 {
			t.Errorf("%s = (%v, %g), want (false, 0.3) for manual review", typ, ok, conf)
		}
	}
}

func TestCompareUnknownTypeFallsBack(t *testing.T) {
	cmp := NewComparator()
	ok, conf := cmp.Compare("anything", "else", answerkey.AnswerType("mystery"), nil)
	if ok || conf != 0.3 {
		t.Fatalf("unknown type = (%v, %g), want manual fallback", ok, conf)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  The   Quick\tFox "); got != "the quick fox" {
		t.Fatalf("Normalize = %q", got)
	}
}

package grading

import (
	"math"
	"testing"
)

func mustParse(t *testing.T, s string) Expr {
	t.Helper()
	e, err := ParseExpr(s)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", s, err)
	}
	return e
}

func TestEvalConstants(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"1/4", 0.25},
		{"2^10", 1024},
		{"2**3", 8},
		{"-3 + 5", 2},
		{"2(3+4)", 14},
		{"6 ÷ 2", 3},
		{"3 × 4", 12},
		{"2^-1", 0.5},
		{"(1+2)*(3+4)", 21},
	}
	for _, c := range cases {
		e := mustParse(t, c.in)
		got, err := e.eval(nil)
		if err != nil {
			t.Errorf("eval(%q): %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("eval(%q) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "1 +", "(1", "2 @ 3", "."} {
		if _, err := ParseExpr(in); err == nil {
			t.Errorf("ParseExpr(%q) succeeded, want error", in)
		}
	}
}

func TestEquivalentConstants(t *testing.T) {
	cases := []struct {
		a, b  string
		equal bool
		exact bool
	}{
		{"0.25", "1/4", true, true},
		{"1/3", "0.333333", true, false}, // within tolerance, not exact
		{"0.5", "0.6", false, false},
		{"2^3", "8", true, true},
		{"1/10", "0.1", true, true}, // exact rationals, no float drift
	}
	for _, c := range cases {
		equal, exact, err := Equivalent(mustParse(t, c.a), mustParse(t, c.b), 1e-3)
		if err != nil {
			t.Errorf("Equivalent(%q, %q): %v", c.a, c.b, err)
			continue
		}
		if equal != c.equal || exact != c.exact {
			t.Errorf("Equivalent(%q, %q) = (%v, %v), want (%v, %v)",
				c.a, c.b, equal, exact, c.equal, c.exact)
		}
	}
}

func TestEquivalentVariables(t *testing.T) {
	cases := []struct {
		a, b  string
		equal bool
	}{
		{"(x+1)^2", "x^2 + 2x + 1", true},
		{"x^2", "x*x", true},
		{"2x + 3y", "3y + 2x", true},
		{"x^2", "x^3", false},
		{"n*n", "n^2", true},
	}
	for _, c := range cases {
		equal, _, err := Equivalent(mustParse(t, c.a), mustParse(t, c.b), DefaultTolerance)
		if err != nil {
			t.Errorf("Equivalent(%q, %q): %v", c.a, c.b, err)
			continue
		}
		if equal != c.equal {
			t.Errorf("Equivalent(%q, %q) = %v, want %v", c.a, c.b, equal, c.equal)
		}
	}
}

func TestEquivalentTooFewSamples(t *testing.T) {
	// Every sample point divides by zero once shifted, leaving no evidence.
	a := mustParse(t, "1/(x-x)")
	b := mustParse(t, "0")
	if _, _, err := Equivalent(a, b, DefaultTolerance); err == nil {
		t.Fatal("want error when no sample point is evaluable")
	}
}

func TestVars(t *testing.T) {
	e := mustParse(t, "2x + y^2 - x")
	vars := Vars(e)
	if len(vars) != 2 {
		t.Fatalf("Vars = %v, want x and y", vars)
	}
}

func TestNormalizeBigO(t *testing.T) {
	cases := []struct{ in, want string }{
		{"N ^ 2", "n**2"},
		{"n log(n)", "nlogn"},
		{"2^n", "2**n"},
	}
	for _, c := range cases {
		if got := normalizeBigO(c.in); got != c.want {
			t.Errorf("normalizeBigO(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractBigO(t *testing.T) {
	if got := extractBigO("O(n^2)"); got != "n^2" {
		t.Errorf("extractBigO(O(n^2)) = %q", got)
	}
	if got := extractBigO("  n log n "); got != "n log n" {
		t.Errorf("extractBigO without wrapper = %q, want trimmed text", got)
	}
}

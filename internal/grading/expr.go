package grading

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Small algebraic expression engine backing the numeric comparison strategy.
// Accepts +, -, *, /, ^ (also **), parentheses, decimal and fraction
// literals, unicode ×/÷, implicit multiplication (2x, 3(x+1)), and free
// variables. Equivalence of two expressions is decided by exact rational
// arithmetic when both are constant, and by multi-point sampling when free
// variables are involved.

type Expr interface {
	eval(vars map[string]float64) (float64, error)
	collectVars(set map[string]struct{})
}

type numLit struct {
	text string // original literal, kept for exact rational evaluation
	val  float64
}

type varRef string

type binary struct {
	op   byte // + - * / ^
	l, r Expr
}

type negate struct{ x Expr }

func (n numLit) eval(map[string]float64) (float64, error) { return n.val, nil }
func (n numLit) collectVars(map[string]struct{})          {}

func (v varRef) eval(vars map[string]float64) (float64, error) {
	val, ok := vars[string(v)]
	if !ok {
		return 0, fmt.Errorf("unbound variable %q", string(v))
	}
	return val, nil
}
func (v varRef) collectVars(set map[string]struct{}) { set[string(v)] = struct{}{} }

func (n negate) eval(vars map[string]float64) (float64, error) {
	x, err := n.x.eval(vars)
	if err != nil {
		return 0, err
	}
	return -x, nil
}
func (n negate) collectVars(set map[string]struct{}) { n.x.collectVars(set) }

func (b binary) eval(vars map[string]float64) (float64, error) {
	l, err := b.l.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := b.r.eval(vars)
	if err != nil {
		return 0, err
	}
	var out float64
	switch b.op {
	case '+':
		out = l + r
	case '-':
		out = l - r
	case '*':
		out = l * r
	case '/':
		if r == 0 {
			return 0, errors.New("division by zero")
		}
		out = l / r
	case '^':
		out = math.Pow(l, r)
	default:
		return 0, fmt.Errorf("unknown operator %q", b.op)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, errors.New("expression does not evaluate to a finite value")
	}
	return out, nil
}
func (b binary) collectVars(set map[string]struct{}) {
	b.l.collectVars(set)
	b.r.collectVars(set)
}

// Vars returns the free variables of e.
func Vars(e Expr) []string {
	set := map[string]struct{}{}
	e.collectVars(set)
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// --- tokenizer ---

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func tokenize(s string) ([]token, error) {
	s = strings.ReplaceAll(s, "×", "*")
	s = strings.ReplaceAll(s, "÷", "/")
	s = strings.ReplaceAll(s, "**", "^")

	var toks []token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.':
			j := i
			seenDot := false
			for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9' || runes[j] == '.' && !seenDot) {
				if runes[j] == '.' {
					seenDot = true
				}
				j++
			}
			text := string(runes[i:j])
			if text == "." {
				return nil, errors.New("bare decimal point")
			}
			toks = append(toks, token{tokNum, text})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		case r == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case strings.ContainsRune("+-*/^", r):
			toks = append(toks, token{tokOp, string(r)})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	if len(toks) == 0 {
		return nil, errors.New("empty expression")
	}
	return toks, nil
}

// --- recursive-descent parser ---

type exprParser struct {
	toks []token
	pos  int
}

// ParseExpr parses s into an expression tree.
func ParseExpr(s string) (Expr, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("trailing input at %q", p.toks[p.pos].text)
	}
	return e, nil
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binary{op: t.text[0], l: left, r: right}
	}
}

func (p *exprParser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok {
			return left, nil
		}
		switch {
		case t.kind == tokOp && (t.text == "*" || t.text == "/"):
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = binary{op: t.text[0], l: left, r: right}
		case t.kind == tokNum || t.kind == tokIdent || t.kind == tokLParen:
			// Implicit multiplication: "2x", "3(x+1)", "x(x-1)".
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = binary{op: '*', l: left, r: right}
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseUnary() (Expr, error) {
	t, ok := p.peek()
	if ok && t.kind == tokOp && t.text == "-" {
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negate{x}, nil
	}
	if ok && t.kind == tokOp && t.text == "+" {
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *exprParser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if ok && t.kind == tokOp && t.text == "^" {
		p.pos++
		// Right associative; exponent may carry a unary sign.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binary{op: '^', l: base, r: exp}, nil
	}
	return base, nil
}

func (p *exprParser) parseAtom() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, errors.New("unexpected end of expression")
	}
	switch t.kind {
	case tokNum:
		p.pos++
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", t.text)
		}
		return numLit{text: t.text, val: v}, nil
	case tokIdent:
		p.pos++
		return varRef(t.text), nil
	case tokLParen:
		p.pos++
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		t, ok := p.peek()
		if !ok || t.kind != tokRParen {
			return nil, errors.New("missing closing parenthesis")
		}
		p.pos++
		return e, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", t.text)
	}
}

// --- equivalence ---

// evalRat evaluates a constant expression in exact rational arithmetic.
// Fails on free variables and non-integer exponents.
func evalRat(e Expr) (*big.Rat, error) {
	switch n := e.(type) {
	case numLit:
		r, ok := new(big.Rat).SetString(n.text)
		if !ok {
			return nil, fmt.Errorf("bad literal %q", n.text)
		}
		return r, nil
	case varRef:
		return nil, fmt.Errorf("free variable %q", string(n))
	case negate:
		x, err := evalRat(n.x)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	case binary:
		l, err := evalRat(n.l)
		if err != nil {
			return nil, err
		}
		r, err := evalRat(n.r)
		if err != nil {
			return nil, err
		}
		switch n.op {
		case '+':
			return l.Add(l, r), nil
		case '-':
			return l.Sub(l, r), nil
		case '*':
			return l.Mul(l, r), nil
		case '/':
			if r.Sign() == 0 {
				return nil, errors.New("division by zero")
			}
			return l.Quo(l, r), nil
		case '^':
			if !r.IsInt() {
				return nil, errors.New("non-integer exponent")
			}
			exp := r.Num().Int64()
			if exp > 64 || exp < -64 {
				return nil, errors.New("exponent out of range")
			}
			out := big.NewRat(1, 1)
			base := new(big.Rat).Set(l)
			neg := exp < 0
			if neg {
				exp = -exp
			}
			for i := int64(0); i < exp; i++ {
				out.Mul(out, base)
			}
			if neg {
				if out.Sign() == 0 {
					return nil, errors.New("division by zero")
				}
				out.Inv(out)
			}
			return out, nil
		}
	}
	return nil, errors.New("unsupported expression")
}

// samplePoints keeps sampling away from 0, 1, and integer coincidences.
var samplePoints = []float64{0.531, 1.372, 2.719, 3.141, 5.874}

// Equivalent reports whether a and b denote the same value. exact is true
// when equality held under exact arithmetic (or at every sample to within
// 1e-9), false when it relied on the floating-point tolerance tol.
func Equivalent(a, b Expr, tol float64) (equal, exact bool, err error) {
	vars := map[string]struct{}{}
	a.collectVars(vars)
	b.collectVars(vars)

	if len(vars) == 0 {
		ra, errA := evalRat(a)
		rb, errB := evalRat(b)
		if errA == nil && errB == nil {
			if ra.Cmp(rb) == 0 {
				return true, true, nil
			}
			// Exact values differ; still allow the numeric tolerance.
		}
		fa, errA := a.eval(nil)
		fb, errB := b.eval(nil)
		if errA != nil {
			return false, false, errA
		}
		if errB != nil {
			return false, false, errB
		}
		if fa == fb {
			return true, true, nil
		}
		if math.Abs(fa-fb) < tol {
			return true, false, nil
		}
		return false, false, nil
	}

	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}

	valid := 0
	allTight := true
	for _, base := range samplePoints {
		assign := make(map[string]float64, len(names))
		for vi, name := range names {
			// Spread variables apart so x and y never alias.
			assign[name] = base + float64(vi)*0.7713
		}
		fa, errA := a.eval(assign)
		fb, errB := b.eval(assign)
		if errA != nil || errB != nil {
			continue
		}
		valid++
		d := math.Abs(fa - fb)
		scale := math.Max(1, math.Max(math.Abs(fa), math.Abs(fb)))
		if d/scale >= tol {
			return false, false, nil
		}
		if d/scale >= 1e-9 {
			allTight = false
		}
	}
	if valid < 3 {
		return false, false, errors.New("too few evaluable sample points")
	}
	return true, allTight, nil
}

package answerkey

import (
	"errors"
	"testing"

	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
)

type fakeReader struct {
	docs map[string]string
}

func (f *fakeReader) ReadText(path string) (string, error) {
	text, ok := f.docs[path]
	if !ok {
		return "", docio.ErrDocumentNotFound
	}
	return text, nil
}

const sampleKey = `Homework #3
Discrete Structures

Give 2 points for completing the assignment.

1. Determine whether each statement is true or false.

   a) Every integer is rational. True or false?
      Answer: True

   b) The empty set has nonzero cardinality. True or false?
      Answer: False

2. What is P(heads) for a fair coin? (2 points)
   Answer: 1/2.
`

func TestParseKey(t *testing.T) {
	r := &fakeReader{docs: map[string]string{"hw3.pdf": sampleKey}}
	p := NewParser(r)

	key, err := p.Parse("hw3.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if key.AssignmentID != "HW3" {
		t.Errorf("AssignmentID = %q, want HW3", key.AssignmentID)
	}
	if key.Course != "CSCI-C241" {
		t.Errorf("Course = %q, want default CSCI-C241", key.Course)
	}
	if key.BasePoints != 2 {
		t.Errorf("BasePoints = %g, want 2", key.BasePoints)
	}
	if len(key.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(key.Questions))
	}

	q1 := key.Questions[0]
	if len(q1.SubQuestions) != 2 {
		t.Fatalf("question 1: got %d sub-questions, want 2", len(q1.SubQuestions))
	}
	a := q1.SubQuestions[0]
	if a.ID != "1a" || a.Sol.Value != "True" || a.Type != TypeTrueFalse {
		t.Errorf("1a = {ID:%s Sol:%q Type:%s}, want {1a True true_false}", a.ID, a.Sol.Value, a.Type)
	}
	if a.Points != 1 {
		t.Errorf("1a points = %g, want default 1", a.Points)
	}
	b := q1.SubQuestions[1]
	if b.ID != "1b" || b.Sol.Value != "False" {
		t.Errorf("1b = {ID:%s Sol:%q}, want {1b False}", b.ID, b.Sol.Value)
	}

	q2 := key.Questions[1]
	if len(q2.SubQuestions) != 1 {
		t.Fatalf("question 2: got %d sub-questions, want 1", len(q2.SubQuestions))
	}
	s := q2.SubQuestions[0]
	if s.ID != "2" {
		t.Errorf("single-part sub-question ID = %q, want 2", s.ID)
	}
	if s.Points != 2 {
		t.Errorf("question 2 points = %g, want 2", s.Points)
	}
	if s.Type != TypeProbability {
		t.Errorf("question 2 type = %s, want probability", s.Type)
	}
	if s.Sol.Value != "1/2" {
		t.Errorf("question 2 solution = %q, want 1/2 (trailing period stripped)", s.Sol.Value)
	}

	// base 2 + question 1 (1+1) + question 2 (2)
	if key.TotalPoints != 6 {
		t.Errorf("TotalPoints = %g, want 6", key.TotalPoints)
	}
	if got := key.SubQuestionIDs(); len(got) != 3 || got[0] != "1a" || got[2] != "2" {
		t.Errorf("SubQuestionIDs = %v", got)
	}
}

func TestParseMissingDocument(t *testing.T) {
	p := NewParser(&fakeReader{docs: map[string]string{}})
	_, err := p.Parse("gone.pdf")
	if !errors.Is(err, docio.ErrDocumentNotFound) {
		t.Fatalf("want ErrDocumentNotFound, got %v", err)
	}
}

func TestParseNoQuestionMarkers(t *testing.T) {
	p := NewParser(&fakeReader{docs: map[string]string{"prose.pdf": "Just some prose without structure."}})
	key, err := p.Parse("prose.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(key.Questions) != 0 {
		t.Fatalf("got %d questions, want 0", len(key.Questions))
	}
	if key.AssignmentID != "Unknown" {
		t.Errorf("AssignmentID = %q, want Unknown", key.AssignmentID)
	}
	if key.TotalPoints != 0 {
		t.Errorf("TotalPoints = %g, want 0", key.TotalPoints)
	}
}

func TestEquivalentForms(t *testing.T) {
	forms := equivalentForms("1/4")
	if len(forms) == 0 || forms[0] != "0.25" {
		t.Fatalf("equivalentForms(1/4) = %v, want [0.25]", forms)
	}
	forms = equivalentForms("True")
	want := map[string]bool{"True": true, "true": true, "TRUE": true, "T": true}
	for _, f := range forms {
		if !want[f] {
			t.Errorf("unexpected boolean form %q", f)
		}
	}
	if len(forms) != 4 {
		t.Errorf("got %d boolean forms, want 4", len(forms))
	}
	if forms := equivalentForms("x + y"); len(forms) != 0 {
		t.Errorf("symbolic answer grew forms %v, want none", forms)
	}
}

func TestExtractGradingRule(t *testing.T) {
	rule := extractGradingRule("Grading: +1 correct, -1 incorrect, minimum 0\n\nmore text")
	if rule.Kind != RulePerItemPenalty {
		t.Fatalf("kind = %s, want per_item_penalty", rule.Kind)
	}
	if rule.PointsCorrect != 1 || rule.PointsIncorrect != -1 || rule.MinimumScore != 0 {
		t.Errorf("rule = %+v", rule)
	}

	rule = extractGradingRule("Grading note: partial credit for correct setup")
	if rule.Kind != RulePartialCredit {
		t.Errorf("kind = %s, want partial_credit", rule.Kind)
	}

	rule = extractGradingRule("no note here")
	if rule.Kind != RuleAllOrNothing || rule.PointsCorrect != 1 {
		t.Errorf("default rule = %+v", rule)
	}
}

func TestInferType(t *testing.T) {
	cases := []struct {
		text string
		want AnswerType
	}{
		{"Is the statement true or false?", TypeTrueFalse},
		{"Compute P(A and B).", TypeProbability},
		{"Give the running time in O( ) notation.", TypeBigO},
		{"Prove that the sum is even.", TypeProof},
		{"Explain your reasoning.", TypeFreeResponse},
		{"Compute 7 * 6.", TypeNumeric},
	}
	for _, c := range cases {
		if got := inferType(c.text); got != c.want {
			t.Errorf("inferType(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

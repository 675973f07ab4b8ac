package answerkey

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
)

// Parser turns raw answer-key text into a hierarchical AnswerKey.
// Parsing is fault tolerant: missing structure degrades into defaults
// (1 point, all-or-nothing, empty solution) instead of failing.
type Parser struct {
	reader docio.TextReader
	cache  *Cache
	course string
}

type ParserOption func(*Parser)

// WithCache enables the on-disk parse cache.
func WithCache(c *Cache) ParserOption { return func(p *Parser) { p.cache = c } }

// WithCourse overrides the course code stamped on parsed keys.
func WithCourse(course string) ParserOption { return func(p *Parser) { p.course = course } }

func NewParser(r docio.TextReader, opts ...ParserOption) *Parser {
	p := &Parser{reader: r, course: "CSCI-C241"}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse extracts an AnswerKey from the document at path. A fresh cache entry
// short-circuits the parse; a stale or corrupt one is silently ignored.
func (p *Parser) Parse(path string) (AnswerKey, error) {
	if p.cache != nil {
		if key, ok := p.cache.Load(path); ok {
			return key, nil
		}
	}

	text, err := p.reader.ReadText(path)
	if err != nil {
		return AnswerKey{}, err
	}

	key := p.parseText(text)

	if p.cache != nil {
		if err := p.cache.Save(path, key); err != nil {
			log.Printf("answerkey: cache write failed for %s: %v", path, err)
		}
	}
	return key, nil
}

func (p *Parser) parseText(text string) AnswerKey {
	key := AnswerKey{
		AssignmentID: extractAssignmentID(text),
		Course:       p.course,
		BasePoints:   extractBasePoints(text),
	}

	blocks := splitQuestions(text)
	if len(blocks) == 0 {
		log.Printf("answerkey: no question markers found (assignment %s)", key.AssignmentID)
	}
	for _, b := range blocks {
		key.Questions = append(key.Questions, parseQuestion(b.number, b.text))
	}

	total := key.BasePoints
	for _, q := range key.Questions {
		total += q.TotalPoints
	}
	key.TotalPoints = total
	return key
}

func extractAssignmentID(text string) string {
	if m := reAssignmentID.FindStringSubmatch(text); m != nil {
		return "HW" + m[1]
	}
	return "Unknown"
}

func extractBasePoints(text string) float64 {
	if m := reBasePoints.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	return 0
}

type questionBlock struct {
	number int
	text   string
}

// splitQuestions slices the text into blocks, one per line-leading question
// marker, each spanning to the next marker or end of text.
func splitQuestions(text string) []questionBlock {
	idx := reQuestion.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]questionBlock, 0, len(idx))
	for i, m := range idx {
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		blocks = append(blocks, questionBlock{number: num, text: text[m[0]:end]})
	}
	return blocks
}

func parseQuestion(num int, text string) Question {
	subs := parseSubQuestions(num, text)
	if len(subs) == 0 {
		// No a)/b) structure: the whole question is one gradable part.
		subs = []SubQuestion{{
			ID:     strconv.Itoa(num),
			Text:   clip(text, 200),
			Points: extractPoints(text),
			Type:   inferType(text),
			Rule:   extractGradingRule(text),
			Sol:    extractSolution(text),
		}}
	}
	q := Question{
		Number:       num,
		Text:         clip(text, 300),
		SubQuestions: subs,
	}
	for _, sq := range subs {
		q.TotalPoints += sq.Points
	}
	return q
}

// parseSubQuestions requires at least two letter markers before committing to
// a multi-part reading; a lone "a)" is more likely prose than structure.
func parseSubQuestions(num int, text string) []SubQuestion {
	idx := reSubQuestion.FindAllStringSubmatchIndex(text, -1)
	if len(idx) < 2 {
		return nil
	}
	subs := make([]SubQuestion, 0, len(idx))
	for i, m := range idx {
		letter := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		subs = append(subs, SubQuestion{
			ID:     fmt.Sprintf("%d%s", num, letter),
			Text:   clip(body, 150),
			Points: extractPoints(body),
			Type:   inferType(body),
			Rule:   extractGradingRule(body),
			Sol:    extractSolution(body),
		})
	}
	return subs
}

func extractPoints(text string) float64 {
	if m := rePoints.FindStringSubmatch(text); m != nil {
		val := m[1]
		if val == "" {
			val = m[2]
		}
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			return v
		}
	}
	return 1.0
}

func extractSolution(text string) Solution {
	m := reSolution.FindStringSubmatch(text)
	if m == nil {
		return Solution{Value: ""}
	}
	answer := m[1]
	if answer == "" {
		answer = m[2]
	}
	answer = strings.TrimSpace(answer)
	// Multi-line captures keep only their first line; later lines are working.
	if i := strings.IndexByte(answer, '\n'); i >= 0 {
		answer = strings.TrimSpace(answer[:i])
	}
	answer = strings.TrimSuffix(answer, ".")
	return Solution{
		Value:           answer,
		EquivalentForms: equivalentForms(answer),
	}
}

// equivalentForms pre-computes the cheap equivalences: a simple fraction's
// decimal expansion and boolean case variants. The comparator handles the rest.
func equivalentForms(answer string) []string {
	var forms []string

	if strings.Contains(answer, "/") {
		parts := strings.Split(strings.ReplaceAll(answer, " ", ""), "/")
		if len(parts) == 2 {
			num, errN := strconv.ParseFloat(parts[0], 64)
			den, errD := strconv.ParseFloat(parts[1], 64)
			if errN == nil && errD == nil && den != 0 {
				dec := strconv.FormatFloat(num/den, 'f', 6, 64)
				dec = strings.TrimRight(dec, "0")
				dec = strings.TrimSuffix(dec, ".")
				forms = append(forms, dec)
			}
		}
	}

	switch strings.ToLower(answer) {
	case "true", "t":
		forms = append(forms, "True", "true", "TRUE", "T")
	case "false", "f":
		forms = append(forms, "False", "false", "FALSE", "F")
	}
	return forms
}

func extractGradingRule(text string) GradingRule {
	def := GradingRule{
		Kind:          RuleAllOrNothing,
		PointsCorrect: 1,
	}
	m := reGradingNote.FindStringSubmatch(text)
	if m == nil {
		return def
	}
	note := strings.ToLower(strings.TrimSpace(m[1]))

	// "+1 correct, -1 incorrect" style penalty rules
	if strings.Contains(note, "+1") && strings.Contains(note, "-1") {
		minScore := 0.0
		if mm := reMinScore.FindStringSubmatch(note); mm != nil {
			minScore, _ = strconv.ParseFloat(mm[1], 64)
		}
		return GradingRule{
			Kind:            RulePerItemPenalty,
			PointsCorrect:   1,
			PointsIncorrect: -1,
			MinimumScore:    minScore,
			Notes:           note,
		}
	}

	if strings.Contains(note, "partial") {
		return GradingRule{
			Kind:          RulePartialCredit,
			PointsCorrect: 1,
			Notes:         note,
		}
	}
	return def
}

// inferType guesses the answer type from keyword cues, in priority order.
func inferType(text string) AnswerType {
	lower := strings.ToLower(text)
	switch {
	case reBoolCue.MatchString(lower):
		return TypeTrueFalse
	case reProbCue.MatchString(lower):
		return TypeProbability
	case reBigOCue.MatchString(lower) || strings.Contains(lower, "big-o"):
		return TypeBigO
	case strings.Contains(lower, "prove") || strings.Contains(lower, "proof") || strings.Contains(lower, "show that"):
		return TypeProof
	case strings.Contains(lower, "explain") || strings.Contains(lower, "describe"):
		return TypeFreeResponse
	default:
		return TypeNumeric
	}
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = s[:n]
	}
	return strings.TrimSpace(s)
}

package submission

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
)

// Extraction patterns for student documents.
var (
	// Line-leading answer marker: "1a)", "2.", "(3b):", "1 - a". The letter
	// accepts either case; ids are lowercased when the block is recorded.
	reAnswerMarker = regexp.MustCompile(`(?m)^[ \t]*\(?(\d+)[ \t]*[.\-]?[ \t]*([a-zA-Z])?[.):]?[ \t]*`)

	// Student-id candidates in a file name, tried in order.
	reStudentToken    = regexp.MustCompile(`(?i)student[_\-]?(\w+)`)
	reSubmissionToken = regexp.MustCompile(`(?i)submission[_\-]?(\w+)`)
	reDigitRun        = regexp.MustCompile(`(\d{3,})`)
	reLastSegment     = regexp.MustCompile(`[_\-](\w+)$`)
)

// answerPrefixes are stripped from the front of a normalized answer.
var answerPrefixes = []string{"answer:", "ans:", "solution:", "="}

// Parser extracts one StudentAnswer per expected sub-question from a
// student document, with a confidence score per extraction.
type Parser struct {
	reader docio.TextReader
}

func NewParser(r docio.TextReader) *Parser { return &Parser{reader: r} }

// Parse reads the document at path and maps its answers onto the key's
// expected sub-question ids. studentID may be empty; it is then derived
// from the file name.
func (p *Parser) Parse(path string, key answerkey.AnswerKey, studentID string) (Submission, error) {
	if studentID == "" {
		studentID = deriveStudentID(path)
	}

	text, err := p.reader.ReadText(path)
	if err != nil {
		return Submission{}, err
	}

	found := findAnswerBlocks(text)
	expected := key.SubQuestionIDs()

	answers := make([]StudentAnswer, 0, len(expected))
	for _, id := range expected {
		blk, ok := found[id]
		if !ok {
			// Placeholder keeps one record per expected id, in key order.
			answers = append(answers, StudentAnswer{
				QuestionID:   id,
				Confidence:   0,
				ParsingNotes: "no answer marker found",
			})
			continue
		}
		answers = append(answers, StudentAnswer{
			QuestionID:  id,
			RawText:     blk.firstLine,
			ParsedValue: normalizeAnswer(blk.firstLine),
			Confidence:  blk.confidence,
		})
	}

	return Submission{
		StudentID:    strings.TrimSpace(studentID),
		AssignmentID: key.AssignmentID,
		FilePath:     path,
		Answers:      answers,
		SubmittedAt:  time.Now(),
	}, nil
}

// ParseBatch processes every document in dir. A failure on one document is
// logged and skipped; the batch never aborts on a single bad file.
func (p *Parser) ParseBatch(dir string, key answerkey.AnswerKey) ([]Submission, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var subs []Submission
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		sub, err := p.Parse(path, key, "")
		if err != nil {
			log.Printf("submission: skipping %s: %v", e.Name(), err)
			continue
		}
		subs = append(subs, sub)
	}
	log.Printf("submission: parsed %d submissions from %s", len(subs), dir)
	return subs, nil
}

func deriveStudentID(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, re := range []*regexp.Regexp{reStudentToken, reSubmissionToken, reDigitRun, reLastSegment} {
		if m := re.FindStringSubmatch(stem); m != nil {
			return m[1]
		}
	}
	return stem
}

type answerBlock struct {
	firstLine  string
	confidence float64
}

// findAnswerBlocks locates every line-leading answer marker and captures the
// run of text up to the next marker as that marker's payload. Only the
// payload's first line is the candidate answer; later lines are scratch work.
func findAnswerBlocks(text string) map[string]answerBlock {
	out := make(map[string]answerBlock)
	idx := reAnswerMarker.FindAllStringSubmatchIndex(text, -1)
	for i, m := range idx {
		num := text[m[2]:m[3]]
		letter := ""
		if m[4] >= 0 {
			letter = text[m[4]:m[5]]
		}
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		payload := strings.TrimSpace(text[m[1]:end])
		if payload == "" {
			continue
		}

		id := strings.ToLower(num + letter)
		firstLine := payload
		if j := strings.IndexByte(payload, '\n'); j >= 0 {
			firstLine = strings.TrimSpace(payload[:j])
		}
		out[id] = answerBlock{
			firstLine:  firstLine,
			confidence: extractionConfidence(payload),
		}
	}
	return out
}

// extractionConfidence starts at 1.0 and deducts for signals that the
// captured payload is not a clean answer, clamped to [0,1].
func extractionConfidence(payload string) float64 {
	if payload == "" {
		return 0
	}
	c := 1.0
	if len(payload) > 200 {
		c -= 0.2
	}
	if strings.Contains(payload, "?") {
		// Question marks suggest the student copied the prompt.
		c -= 0.3
	}
	if strings.Count(payload, "\n") > 2 {
		c -= 0.2
	}
	if len(payload) < 2 {
		c -= 0.3
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// normalizeAnswer trims, strips recognized answer-prefix labels, and drops
// trailing punctuation.
func normalizeAnswer(raw string) string {
	text := strings.TrimSpace(raw)
	for _, prefix := range answerPrefixes {
		if strings.HasPrefix(strings.ToLower(text), prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
	}
	return strings.TrimRight(text, ".,;:")
}

package submission

import "time"

// StudentAnswer is one extracted answer. RawText is exactly what the student
// wrote; ParsedValue is the normalized interpretation; Confidence in [0,1]
// says how much the extraction can be trusted.
type StudentAnswer struct {
	QuestionID   string  `json:"question_id"`
	RawText      string  `json:"raw_text"`
	ParsedValue  string  `json:"parsed_value"`
	Confidence   float64 `json:"confidence"`
	ParsingNotes string  `json:"parsing_notes,omitempty"`
}

// Submission is one student's full set of answers, one StudentAnswer per
// expected sub-question id in key order (placeholders fill the gaps).
type Submission struct {
	StudentID    string          `json:"student_id"`
	StudentName  string          `json:"student_name,omitempty"`
	AssignmentID string          `json:"assignment_id"`
	FilePath     string          `json:"file_path"`
	Answers      []StudentAnswer `json:"answers"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// GetAnswer finds the answer for a sub-question id, or nil.
func (s *Submission) GetAnswer(questionID string) *StudentAnswer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

// LowConfidenceAnswers returns every answer below the threshold.
func (s *Submission) LowConfidenceAnswers(threshold float64) []StudentAnswer {
	var out []StudentAnswer
	for _, a := range s.Answers {
		if a.Confidence < threshold {
			out = append(out, a)
		}
	}
	return out
}

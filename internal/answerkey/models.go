package answerkey

// AnswerType tags a sub-question with the comparison logic it needs.
type AnswerType string

const (
	TypeTrueFalse      AnswerType = "true_false"
	TypeNumeric        AnswerType = "numeric"
	TypeProbability    AnswerType = "probability"
	TypeBigO           AnswerType = "big_o"
	TypeProof          AnswerType = "proof"
	TypeMultipleChoice AnswerType = "multiple_choice"
	TypeFreeResponse   AnswerType = "free_response"
	TypeGraphing       AnswerType = "graphing"
)

// RuleKind selects the scoring policy for a sub-question.
type RuleKind string

const (
	// RuleAllOrNothing awards full points on a correct answer, zero otherwise.
	RuleAllOrNothing RuleKind = "all_or_nothing"
	// RulePerItemPenalty awards PointsCorrect or PointsIncorrect, floored at MinimumScore.
	RulePerItemPenalty RuleKind = "per_item_penalty"
	// RulePartialCredit is recognized at parse time but currently scores as
	// all-or-nothing. Kept distinct so richer scoring can slot in later.
	RulePartialCredit RuleKind = "partial_credit"
)

// GradingRule is the scoring policy attached to a sub-question at parse time.
type GradingRule struct {
	Kind            RuleKind `json:"kind"`
	PointsCorrect   float64  `json:"points_correct"`
	PointsIncorrect float64  `json:"points_incorrect"`
	MinimumScore    float64  `json:"minimum_score"`
	Notes           string   `json:"notes,omitempty"`
}

// Solution holds the canonical correct answer plus any equivalent forms
// computed at parse time (fraction decimals, boolean case variants).
type Solution struct {
	Value           string   `json:"value"`
	EquivalentForms []string `json:"equivalent_forms,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
}

// SubQuestion is the smallest independently gradable unit, e.g. "1a".
type SubQuestion struct {
	ID     string      `json:"id"`
	Text   string      `json:"text,omitempty"`
	Points float64     `json:"points"`
	Type   AnswerType  `json:"type"`
	Rule   GradingRule `json:"rule"`
	Sol    Solution    `json:"solution"`
}

// Question is a numbered problem; TotalPoints is the sum of its sub-questions.
type Question struct {
	Number       int           `json:"number"`
	Text         string        `json:"text,omitempty"`
	SubQuestions []SubQuestion `json:"sub_questions"`
	TotalPoints  float64       `json:"total_points"`
}

// AnswerKey is the full parsed key for one assignment.
// TotalPoints == BasePoints + sum of question totals.
type AnswerKey struct {
	AssignmentID string     `json:"assignment_id"`
	Course       string     `json:"course,omitempty"`
	TotalPoints  float64    `json:"total_points"`
	BasePoints   float64    `json:"base_points"`
	Questions    []Question `json:"questions"`
}

// SubQuestionIDs flattens the question tree into sub-question ids in key order.
func (k *AnswerKey) SubQuestionIDs() []string {
	ids := make([]string, 0, 2*len(k.Questions))
	for _, q := range k.Questions {
		for _, sq := range q.SubQuestions {
			ids = append(ids, sq.ID)
		}
	}
	return ids
}

// FindSubQuestion looks up a sub-question by id.
func (k *AnswerKey) FindSubQuestion(id string) (SubQuestion, bool) {
	for _, q := range k.Questions {
		for _, sq := range q.SubQuestions {
			if sq.ID == id {
				return sq, true
			}
		}
	}
	return SubQuestion{}, false
}

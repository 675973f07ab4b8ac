package answerkey

import "regexp"

// Extraction patterns, named so each heuristic stays independently testable
// and replaceable without touching parse orchestration.
var (
	// "HW 10", "Homework #3", "Assignment 2"
	reAssignmentID = regexp.MustCompile(`(?i)(?:HW|Homework|Assignment)\s*#?\s*(\d+)`)

	// "Give 18 points for completing ..."
	reBasePoints = regexp.MustCompile(`(?i)give\s+(\d+)\s+points?\s+for\s+complet`)

	// Line-leading question marker: "1.", "Problem 2.", "Question 3.", "Q4."
	reQuestion = regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:Problem|Question|Q)?\s*(\d+)\.\s+`)

	// Line-leading sub-question marker: "a)", "(b)", "c.", "d:"
	reSubQuestion = regexp.MustCompile(`(?:^|\n)[ \t]*\(?([a-z])\)?[.):]\s+`)

	// "(5 points)", "[5]", or bare "5 pts" with the keyword required
	rePoints = regexp.MustCompile(`(?i)(?:[\[(]\s*(\d+(?:\.\d+)?)\s*(?:points?|pts?)?\s*[\])])|(?:\b(\d+(?:\.\d+)?)\s*(?:points|pts)\b)`)

	// "Answer: 1/4", "Solution: x = 5", or a line-leading "= 42"
	reSolution = regexp.MustCompile(`(?im)(?:answer|solution|ans|sol)\s*[:=][ \t]*(.[^\n]*)|^[ \t]*=[ \t]*(.[^\n]*)`)

	// "Grading: +1 correct, -1 incorrect, min 0", running until a blank line
	reGradingNote = regexp.MustCompile(`(?is)grading\s*(?:note)?:?\s*(.+?)(?:\n[ \t]*\n|\z)`)

	// "min 0" / "minimum 2" inside a grading note
	reMinScore = regexp.MustCompile(`(?i)min(?:imum)?\s*(\d+)`)

	// Type-inference cues
	reBoolCue = regexp.MustCompile(`(?i)\b(?:true|false)\b`)
	reProbCue = regexp.MustCompile(`(?i)p\s*\(`)
	reBigOCue = regexp.MustCompile(`(?i)o\s*\(`)
)

package interview

import (
	"strings"
	"unicode"

	"github.com/abhishek622/interviewPrep/pkg/model"
)

const (
	scorePrefix    = "SCORE:"
	feedbackPrefix = "FEEDBACK:"

	DefaultScore    = 50
	DefaultFeedback = "Good effort! Continue practicing to improve your interview skills."
)

// ParseEvaluation reads a two-line "SCORE: n" / "FEEDBACK: text" reply.
// Lines are matched independently, so a broken score line never discards
// the feedback line. Later lines override earlier ones.
func ParseEvaluation(text string) model.AnswerEvaluation {
	ev := model.AnswerEvaluation{Score: DefaultScore, Feedback: DefaultFeedback}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, scorePrefix):
			if score, ok := parseScore(strings.TrimPrefix(line, scorePrefix)); ok {
				ev.Score = score
			}
		case strings.HasPrefix(line, feedbackPrefix):
			fb := strings.TrimSpace(strings.TrimPrefix(line, feedbackPrefix))
			if fb == "" {
				fb = DefaultFeedback
			}
			ev.Feedback = fb
		}
	}
	return ev
}

// parseScore keeps the decimal digits of s, including non-ASCII ones such
// as fullwidth "８". Two or more digits: the first two are the score ("123"
// is 12). A single digit is read as tens ("7" is 70).
func parseScore(s string) (int, bool) {
	var digits []int
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, digitValue(r))
		}
	}
	switch len(digits) {
	case 0:
		return 0, false
	case 1:
		return clampScore(digits[0] * 10), true
	}
	return clampScore(digits[0]*10 + digits[1]), true
}

// digitValue returns the value of a Unicode decimal digit. Every script's
// digits occupy runs of ten consecutive code points starting at zero.
func digitValue(r rune) int {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

func clampScore(s int) int {
	return min(max(s, 0), 100)
}

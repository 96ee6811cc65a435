package interview

import (
	"fmt"
	"strings"

	"github.com/abhishek622/interviewPrep/pkg/model"
)

const (
	FeedbackTooBrief      = "Answer is too brief. Provide more detailed explanations with specific examples and reasoning."
	FeedbackGoodStart     = "Good start! Add more depth with specific examples and explain your thought process in more detail."
	FeedbackWellStructure = "Well-structured answer with good detail. Consider adding more specific examples or discussing trade-offs."
	FeedbackComprehensive = "Comprehensive and detailed response. Excellent use of examples and thorough explanations!"
)

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// FallbackEvaluation scores an answer on length alone.
func FallbackEvaluation(answer string) model.AnswerEvaluation {
	switch n := WordCount(answer); {
	case n < 20:
		return model.AnswerEvaluation{Score: 35, Feedback: FeedbackTooBrief}
	case n < 50:
		return model.AnswerEvaluation{Score: 65, Feedback: FeedbackGoodStart}
	case n < 100:
		return model.AnswerEvaluation{Score: 80, Feedback: FeedbackWellStructure}
	default:
		return model.AnswerEvaluation{Score: 90, Feedback: FeedbackComprehensive}
	}
}

type Rating struct {
	Label     string
	Level     string
	Readiness string
}

var ratingBands = []struct {
	min float64
	Rating
}{
	{85, Rating{"Excellent Candidate", "Senior", "90%"}},
	{75, Rating{"Strong Candidate", "Mid-Senior", "80%"}},
	{65, Rating{"Good Candidate", "Mid", "70%"}},
	{50, Rating{"Developing Candidate", "Entry-Mid", "60%"}},
}

var lowestRating = Rating{"Needs Improvement", "Entry", "40%"}

func RatingFor(avg float64) Rating {
	for _, b := range ratingBands {
		if avg >= b.min {
			return b.Rating
		}
	}
	return lowestRating
}

// PositiveAverage averages only scores above zero. Zero-score entries still
// count as completed questions in the report.
// TODO: confirm with product whether zero scores should be averaged in.
func PositiveAverage(history []model.HistoryEntry) float64 {
	var sum, n int
	for _, h := range history {
		if h.Score > 0 {
			sum += h.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// FallbackSummary renders the markdown report used when no remote summary
// is available.
func FallbackSummary(cfg model.SessionConfig, history []model.HistoryEntry) string {
	avg := PositiveAverage(history)
	r := RatingFor(avg)
	role := string(cfg.Role)

	depth := "Continue providing comprehensive, well-structured answers"
	if avg < 70 {
		depth = "Focus on providing more detailed explanations with specific examples"
	}
	precision := "Maintain high technical standards while expanding on complex topics"
	if avg < 60 {
		precision = "Work on technical accuracy and include more specific details"
	}
	structure := "Organize technical responses with clear problem-solving steps"
	if cfg.Mode == model.ModeBehavioral {
		structure = "Use structured approaches like STAR method for behavioral questions"
	}

	var b strings.Builder
	b.WriteString("## 🎯 FINAL PERFORMANCE SUMMARY\n\n")
	fmt.Fprintf(&b, "**Overall Rating:** %s\n\n", r.Label)
	fmt.Fprintf(&b, "**Final Score:** %.0f/100\n\n", avg)
	fmt.Fprintf(&b, "**Performance Level:** %s level performance demonstrated\n\n", r.Level)
	fmt.Fprintf(&b, "**Interview Readiness:** %s\n\n", r.Readiness)

	b.WriteString("## ✅ AREAS OF STRENGTH\n\n")
	fmt.Fprintf(&b, "• **Consistent Participation:** Completed %d interview questions with dedication\n\n", len(history))
	b.WriteString("• **Communication Skills:** Demonstrated ability to articulate responses clearly and professionally\n\n")
	fmt.Fprintf(&b, "• **%s Knowledge:** Showed understanding of %s concepts and practices\n\n", role, strings.ToLower(role))

	b.WriteString("## 🎯 AREAS FOR IMPROVEMENT\n\n")
	fmt.Fprintf(&b, "• **Answer Depth:** %s\n\n", depth)
	fmt.Fprintf(&b, "• **Technical Precision:** %s\n\n", precision)
	fmt.Fprintf(&b, "• **Response Structure:** %s\n\n", structure)

	b.WriteString("## 📚 SUGGESTED RESOURCES\n\n")
	fmt.Fprintf(&b, "• **%s Fundamentals:** Study core concepts and best practices specific to your target role\n\n", role)
	b.WriteString("• **Interview Practice:** Continue with mock interviews and domain-specific practice questions\n\n")
	b.WriteString("• **Technical Communication:** Practice explaining complex concepts clearly to different audiences\n\n")

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*Keep practicing and focus on the improvement areas identified above. Your performance shows great potential for growth in the %s role!*", role)
	return b.String()
}

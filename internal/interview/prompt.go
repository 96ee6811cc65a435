package interview

import (
	"fmt"
	"strings"

	"github.com/abhishek622/interviewPrep/pkg/model"
)

const (
	questionSystemPrompt = "You are an expert technical interviewer. Generate interview questions that are practical, relevant, and appropriate for the specified role and difficulty level."
	evaluateSystemPrompt = "You are an expert interview evaluator. Provide constructive, specific feedback with scores based on technical accuracy, communication clarity, and practical relevance."
	summarySystemPrompt  = "You are an expert career coach and technical interviewer. Provide comprehensive, actionable feedback that helps candidates improve their interview performance."
)

// sampling settings per operation
const (
	questionMaxTokens   = 200
	questionTemperature = 0.7
	evaluateMaxTokens   = 200
	evaluateTemperature = 0.3
	summaryMaxTokens    = 600
	summaryTemperature  = 0.4
)

// recentQuestionContext is how many previous questions are shown to the model.
const recentQuestionContext = 2

const technicalRequirements = `
Requirements:
- Focus on practical, hands-on scenarios from the role's key topics
- Include real-world applications and problem-solving
- Appropriate for the specified difficulty level
- Encourage detailed explanations and examples
- Avoid repeating similar concepts from previous questions
- Make it specific to the role and technical domain

Generate only the question:
`

const behavioralRequirements = `
Requirements:
- Use STAR method framework (Situation, Task, Action, Result)
- Focus on professional scenarios relevant to the role and topics listed
- Encourage specific examples with measurable outcomes
- Appropriate for the specified experience level
- Different from previous behavioral questions asked
- Connect to the role's typical challenges and responsibilities

Generate only the question:
`

func buildQuestionPrompt(cfg model.SessionConfig, topics, asked []string, questionNumber int) string {
	previous := "None"
	if len(asked) > 0 {
		previous = strings.Join(asked[max(len(asked)-recentQuestionContext, 0):], ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s-level %s interview question for a %s position.\n\n",
		strings.ToLower(string(cfg.Difficulty)), strings.ToLower(string(cfg.Mode)), cfg.Role)
	fmt.Fprintf(&b, "Question #%d\n\n", questionNumber)
	fmt.Fprintf(&b, "Relevant Topics: %s\n", strings.Join(topics, ", "))
	fmt.Fprintf(&b, "Previous Questions: %s\n", previous)

	if cfg.Mode == model.ModeTechnical {
		b.WriteString(technicalRequirements)
	} else {
		b.WriteString(behavioralRequirements)
	}
	return b.String()
}

func buildEvaluationPrompt(cfg model.SessionConfig, question, answer string) string {
	return fmt.Sprintf(`Evaluate this %s interview answer for a %s position:

QUESTION: %s
ANSWER: %s

CONTEXT:
- Role: %s
- Domain: %s
- Difficulty Level: %s
- Interview Type: %s

EVALUATION CRITERIA:
- Technical accuracy and depth of knowledge
- Problem-solving approach and methodology
- Use of appropriate examples and explanations
- Communication clarity and structure
- Consideration of edge cases, alternatives, or trade-offs
- Relevance to real-world scenarios

Provide evaluation in this exact format:
SCORE: [number 0-100]
FEEDBACK: [1-2 sentences of constructive feedback, including what they did well and one specific suggestion for improvement]

Be encouraging but honest.
`, strings.ToLower(string(cfg.Mode)), cfg.Role, question, answer,
		cfg.Role, cfg.DomainLabel(), cfg.Difficulty, cfg.Mode)
}

// MeanScore averages every entry, zero scores included.
func MeanScore(history []model.HistoryEntry) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum int
	for _, h := range history {
		sum += h.Score
	}
	return float64(sum) / float64(len(history))
}

func buildSummaryPrompt(cfg model.SessionConfig, history []model.HistoryEntry, clip func(string) string) string {
	var transcript strings.Builder
	for i, qa := range history {
		fmt.Fprintf(&transcript, "Q%d: %s\nAnswer: %s\nScore: %d/100\nFeedback: %s\n\n",
			i+1, qa.Question, clip(qa.Answer), qa.Score, qa.Feedback)
	}
	avg := MeanScore(history)

	return fmt.Sprintf(`Based on this %s interview session, provide a brief, actionable final summary report as specified:

INTERVIEW CONTEXT:
- Role: %s
- Domain: %s
- Interview Type: %s
- Difficulty Level: %s
- Questions Answered: %d
- Average Score: %.1f/100

INTERVIEW TRANSCRIPT:
%s
Generate a concise report following this exact format:

## 🎯 FINAL PERFORMANCE SUMMARY

**Overall Rating:** [e.g., Good Candidate]

**Final Score:** %.0f/100

## ✅ KEY STRENGTHS

• **[Strength 1]:** [Briefly state a strength with an example]

• **[Strength 2]:** [Briefly state a second strength]

## 🎯 KEY AREAS FOR IMPROVEMENT

• **[Area 1]:** [Briefly state an area to improve]

• **[Area 2]:** [Briefly state a second area to improve]

## 📚 ACTION PLAN

• **Next Steps:** [1-2 actionable steps for improvement]
`, cfg.Role, cfg.Role, cfg.DomainLabel(), cfg.Mode, cfg.Difficulty, len(history), avg,
		transcript.String(), avg)
}

package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantScore    int
		wantFeedback string
	}{
		{
			name:         "two digit score",
			input:        "SCORE: 85\nFEEDBACK: Clear and well structured.",
			wantScore:    85,
			wantFeedback: "Clear and well structured.",
		},
		{
			name:         "single digit is tens",
			input:        "SCORE: 7",
			wantScore:    70,
			wantFeedback: DefaultFeedback,
		},
		{
			name:      "only first two digits",
			input:     "SCORE: 123",
			wantScore: 12,
		},
		{
			name:      "hundred reads as ten",
			input:     "SCORE: 100",
			wantScore: 10,
		},
		{
			name:      "fullwidth digits",
			input:     "SCORE: ８５",
			wantScore: 85,
		},
		{
			name:      "arabic-indic digits",
			input:     "SCORE: ٧٢",
			wantScore: 72,
		},
		{
			name:      "digits mixed with text",
			input:     "SCORE: [7/10 overall, 5]",
			wantScore: 71,
		},
		{
			name:         "no digits keeps default",
			input:        "SCORE: abc\nFEEDBACK: Try again.",
			wantScore:    DefaultScore,
			wantFeedback: "Try again.",
		},
		{
			name:      "bad score line keeps earlier score",
			input:     "SCORE: 64\nSCORE: n/a",
			wantScore: 64,
		},
		{
			name:         "empty feedback gets default",
			input:        "SCORE: 40\nFEEDBACK:   ",
			wantScore:    40,
			wantFeedback: DefaultFeedback,
		},
		{
			name:         "no recognised lines",
			input:        "The answer was fine.",
			wantScore:    DefaultScore,
			wantFeedback: DefaultFeedback,
		},
		{
			name:         "indented prefix is not matched",
			input:        "  SCORE: 99\n  FEEDBACK: indented",
			wantScore:    DefaultScore,
			wantFeedback: DefaultFeedback,
		},
		{
			name:         "crlf line endings",
			input:        "SCORE: 55\r\nFEEDBACK: Good pacing.\r\n",
			wantScore:    55,
			wantFeedback: "Good pacing.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEvaluation(tt.input)
			assert.Equal(t, tt.wantScore, got.Score)
			want := tt.wantFeedback
			if want == "" {
				want = DefaultFeedback
			}
			assert.Equal(t, want, got.Feedback)
		})
	}
}

func TestParseScoreAlwaysInRange(t *testing.T) {
	for _, s := range []string{"0", "00", "09", "99", "999999", "-5", "5.5"} {
		score, ok := parseScore(s)
		assert.True(t, ok, s)
		assert.GreaterOrEqual(t, score, 0, s)
		assert.LessOrEqual(t, score, 100, s)
	}
}

func TestDigitValue(t *testing.T) {
	for want, r := range []rune{'０', '１', '２', '３', '４', '５', '６', '７', '８', '９'} {
		assert.Equal(t, want, digitValue(r), string(r))
	}
	assert.Equal(t, 7, digitValue('7'))
	assert.Equal(t, 3, digitValue('३'))
}

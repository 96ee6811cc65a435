package interview

import (
	"time"

	"github.com/abhishek622/interviewPrep/pkg/model"
)

func Band(score int) model.ScoreBand {
	switch {
	case score >= 70:
		return model.ScoreBandGreen
	case score >= 50:
		return model.ScoreBandYellow
	default:
		return model.ScoreBandRed
	}
}

// Analyze computes the score breakdown shown next to the summary. Unlike the
// report rating it averages every entry.
func Analyze(history []model.HistoryEntry) model.Analytics {
	a := model.Analytics{
		Answered: len(history),
		AvgScore: MeanScore(history),
		Scores:   make([]int, 0, len(history)),
	}
	for _, h := range history {
		a.Scores = append(a.Scores, h.Score)
		switch {
		case h.Score >= 80:
			a.Distribution.Excellent++
		case h.Score >= 60:
			a.Distribution.Good++
		case h.Score >= 40:
			a.Distribution.Fair++
		default:
			a.Distribution.NeedsWork++
		}
	}

	switch {
	case a.AvgScore >= 70:
		a.Performance = "Excellent"
	case a.AvgScore >= 50:
		a.Performance = "Good"
	default:
		a.Performance = "Practice"
	}
	return a
}

func BuildExport(cfg model.SessionConfig, history []model.HistoryEntry, now time.Time) model.Export {
	qs := history
	if qs == nil {
		qs = []model.HistoryEntry{}
	}
	return model.Export{
		Date:      now,
		Role:      cfg.Role,
		Mode:      cfg.Mode,
		AvgScore:  MeanScore(history),
		Questions: qs,
	}
}

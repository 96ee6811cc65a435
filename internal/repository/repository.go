package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
)

var ErrReportNotFound = errors.New("report not found")

// ReportRepository stores finished interview reports.
type ReportRepository interface {
	SaveReport(ctx context.Context, r *model.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error)
	ListReports(ctx context.Context, limit, offset int) ([]model.Report, int, error)
}

func encodeQuestions(q []model.HistoryEntry) ([]byte, error) {
	if q == nil {
		q = []model.HistoryEntry{}
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	return b, nil
}

func decodeQuestions(b []byte) ([]model.HistoryEntry, error) {
	out := []model.HistoryEntry{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return out, nil
}

func domainArg(d *model.Domain) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

func domainValue(s *string) *model.Domain {
	if s == nil {
		return nil
	}
	d := model.Domain(*s)
	return &d
}

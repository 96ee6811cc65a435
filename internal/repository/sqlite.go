package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
)

// SQLiteReportRepository keeps reports in a local file for single-user setups.
type SQLiteReportRepository struct {
	db *sql.DB
}

func NewSQLiteReportRepository(db *sql.DB) *SQLiteReportRepository {
	return &SQLiteReportRepository{db: db}
}

func (r *SQLiteReportRepository) SaveReport(ctx context.Context, rep *model.Report) error {
	questions, err := encodeQuestions(rep.Questions)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO reports (report_id, session_id, role, domain, mode, difficulty, avg_score, summary, questions, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = r.db.ExecContext(ctx, q,
		rep.ReportID.String(), rep.SessionID.String(), string(rep.Role), domainArg(rep.Domain),
		string(rep.Mode), string(rep.Difficulty), rep.AvgScore, rep.Summary, string(questions), rep.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	const q = `
SELECT report_id, session_id, role, domain, mode, difficulty, avg_score, summary, questions, created_at
FROM reports
WHERE report_id = ?
`
	rep, err := scanSQLiteReport(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return rep, nil
}

func (r *SQLiteReportRepository) ListReports(ctx context.Context, limit, offset int) ([]model.Report, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	const q = `
SELECT report_id, session_id, role, domain, mode, difficulty, avg_score, summary, questions, created_at
FROM reports
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	out := []model.Report{}
	for rows.Next() {
		rep, err := scanSQLiteReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reports: %w", err)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteReport(row rowScanner) (*model.Report, error) {
	var (
		rep                    model.Report
		reportID, sessionID    string
		role, mode, difficulty string
		domain                 sql.NullString
		questions              string
	)
	if err := row.Scan(&reportID, &sessionID, &role, &domain, &mode, &difficulty,
		&rep.AvgScore, &rep.Summary, &questions, &rep.CreatedAt); err != nil {
		return nil, err
	}

	var err error
	if rep.ReportID, err = uuid.Parse(reportID); err != nil {
		return nil, fmt.Errorf("parse report id: %w", err)
	}
	if rep.SessionID, err = uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	rep.Role = model.Role(role)
	if domain.Valid {
		rep.Domain = domainValue(&domain.String)
	}
	rep.Mode = model.InterviewMode(mode)
	rep.Difficulty = model.Difficulty(difficulty)

	if rep.Questions, err = decodeQuestions([]byte(questions)); err != nil {
		return nil, err
	}
	return &rep, nil
}

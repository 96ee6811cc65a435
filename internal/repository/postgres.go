package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReportRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReportRepository(db *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

func (r *PostgresReportRepository) SaveReport(ctx context.Context, rep *model.Report) error {
	questions, err := encodeQuestions(rep.Questions)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO reports (report_id, session_id, role, domain, mode, difficulty, avg_score, summary, questions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10)
`
	_, err = r.db.Exec(ctx, q,
		rep.ReportID, rep.SessionID, string(rep.Role), domainArg(rep.Domain),
		string(rep.Mode), string(rep.Difficulty), rep.AvgScore, rep.Summary, questions, rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *PostgresReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	const q = `
SELECT report_id, session_id, role, domain, mode, difficulty, avg_score, summary, questions, created_at
FROM reports
WHERE report_id = $1
`
	rep, err := scanReport(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return rep, nil
}

func (r *PostgresReportRepository) ListReports(ctx context.Context, limit, offset int) ([]model.Report, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	const q = `
SELECT report_id, session_id, role, domain, mode, difficulty, avg_score, summary, questions, created_at
FROM reports
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	out := []model.Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
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

func scanReport(row pgx.Row) (*model.Report, error) {
	var (
		rep                    model.Report
		role, mode, difficulty string
		domain                 *string
		questions              []byte
	)
	if err := row.Scan(&rep.ReportID, &rep.SessionID, &role, &domain, &mode, &difficulty,
		&rep.AvgScore, &rep.Summary, &questions, &rep.CreatedAt); err != nil {
		return nil, err
	}
	rep.Role = model.Role(role)
	rep.Domain = domainValue(domain)
	rep.Mode = model.InterviewMode(mode)
	rep.Difficulty = model.Difficulty(difficulty)

	qs, err := decodeQuestions(questions)
	if err != nil {
		return nil, err
	}
	rep.Questions = qs
	return &rep, nil
}

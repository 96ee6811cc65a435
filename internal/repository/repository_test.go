package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhishek622/interviewPrep/internal/database"
	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *SQLiteReportRepository {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, database.DialectSQLite))
	return NewSQLiteReportRepository(db)
}

func newPostgresRepo(t *testing.T) *PostgresReportRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := database.Connect(context.Background(), dsn, 4, time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.MigratePool(pool))
	return NewPostgresReportRepository(pool)
}

func sampleReport(created time.Time, domain *model.Domain) *model.Report {
	return &model.Report{
		ReportID:   uuid.New(),
		SessionID:  uuid.New(),
		Role:       model.RoleDataAnalyst,
		Domain:     domain,
		Mode:       model.ModeBehavioral,
		Difficulty: model.DifficultyHard,
		AvgScore:   72.5,
		Summary:    "## Summary\nSolid.",
		Questions: []model.HistoryEntry{{
			QuestionNumber: 1,
			Question:       "Tell me about a conflict.",
			Answer:         "I listened first.",
			Score:          72,
			Feedback:       "Add the outcome.",
			WordCount:      3,
			Timestamp:      created,
		}},
		CreatedAt: created,
	}
}

func exerciseRepository(t *testing.T, repo ReportRepository) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	backend := model.DomainBackend

	older := sampleReport(base, nil)
	newer := sampleReport(base.Add(time.Hour), &backend)
	require.NoError(t, repo.SaveReport(ctx, older))
	require.NoError(t, repo.SaveReport(ctx, newer))

	got, err := repo.GetReport(ctx, newer.ReportID)
	require.NoError(t, err)
	assert.Equal(t, newer.SessionID, got.SessionID)
	assert.Equal(t, model.RoleDataAnalyst, got.Role)
	require.NotNil(t, got.Domain)
	assert.Equal(t, model.DomainBackend, *got.Domain)
	assert.Equal(t, 72.5, got.AvgScore)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "I listened first.", got.Questions[0].Answer)
	assert.True(t, newer.CreatedAt.Equal(got.CreatedAt))

	got, err = repo.GetReport(ctx, older.ReportID)
	require.NoError(t, err)
	assert.Nil(t, got.Domain)

	list, total, err := repo.ListReports(ctx, 1, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 2)
	require.Len(t, list, 1)

	_, err = repo.GetReport(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestSQLiteReportRepository(t *testing.T) {
	repo := newSQLiteRepo(t)
	exerciseRepository(t, repo)

	list, total, err := repo.ListReports(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt), "newest first")
}

func TestPostgresReportRepository(t *testing.T) {
	exerciseRepository(t, newPostgresRepo(t))
}

func TestEmptyQuestionsRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	rep := sampleReport(time.Now().UTC(), nil)
	rep.Questions = nil
	require.NoError(t, repo.SaveReport(context.Background(), rep))

	got, err := repo.GetReport(context.Background(), rep.ReportID)
	require.NoError(t, err)
	assert.NotNil(t, got.Questions)
	assert.Empty(t, got.Questions)
}

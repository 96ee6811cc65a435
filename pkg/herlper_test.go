package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportFilename(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 59, 0, time.UTC)

	assert.Equal(t, "interview_report_Software_Engineer_20240309_1405.json", ReportFilename("Software Engineer", at))
	assert.Equal(t, "interview_report_ML_Engineer_20240309_1405.json", ReportFilename(" ML Engineer ", at))
	assert.Equal(t, "interview_report_interview_20240309_1405.json", ReportFilename("", at))
}

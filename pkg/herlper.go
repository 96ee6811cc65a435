package pkg

import (
	"strings"
	"time"
)

// ReportFilename names a downloaded session export, e.g.
// interview_report_Software_Engineer_20240309_1405.json.
func ReportFilename(role string, at time.Time) string {
	slug := strings.ReplaceAll(strings.TrimSpace(role), " ", "_")
	if slug == "" {
		slug = "interview"
	}
	return "interview_report_" + slug + "_" + at.Format("20060102_1504") + ".json"
}

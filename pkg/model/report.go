package model

import (
	"time"

	"github.com/google/uuid"
)

// Export is the downloadable transcript of a session. Field names are a
// contract with report consumers.
type Export struct {
	Date      time.Time      `json:"date"`
	Role      Role           `json:"role"`
	Mode      InterviewMode  `json:"mode"`
	AvgScore  float64        `json:"avg_score"`
	Questions []HistoryEntry `json:"questions"`
}

type ScoreBand string

const (
	ScoreBandGreen  ScoreBand = "green"
	ScoreBandYellow ScoreBand = "yellow"
	ScoreBandRed    ScoreBand = "red"
)

type Distribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	NeedsWork int `json:"needs_work"`
}

type Analytics struct {
	Answered     int          `json:"answered"`
	AvgScore     float64      `json:"avg_score"`
	Performance  string       `json:"performance"`
	Distribution Distribution `json:"distribution"`
	Scores       []int        `json:"scores"`
}

// Report is a finished session as stored by the report repository.
type Report struct {
	ReportID   uuid.UUID      `json:"report_id" db:"report_id"`
	SessionID  uuid.UUID      `json:"session_id" db:"session_id"`
	Role       Role           `json:"role" db:"role"`
	Domain     *Domain        `json:"domain" db:"domain"`
	Mode       InterviewMode  `json:"mode" db:"mode"`
	Difficulty Difficulty     `json:"difficulty" db:"difficulty"`
	AvgScore   float64        `json:"avg_score" db:"avg_score"`
	Summary    string         `json:"summary" db:"summary"`
	Questions  []HistoryEntry `json:"questions" db:"questions"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

type FinishRes struct {
	SessionID uuid.UUID  `json:"session_id"`
	Summary   string     `json:"summary"`
	Analytics Analytics  `json:"analytics"`
	Export    Export     `json:"export"`
	ReportID  *uuid.UUID `json:"report_id,omitempty"`
}

type ListReportsQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

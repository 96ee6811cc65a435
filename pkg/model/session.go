package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusFinished SessionStatus = "finished"
)

// Session is the persisted state of one interview run. Each session owns its
// own questions log; nothing here is shared across sessions.
type Session struct {
	SessionID       uuid.UUID      `json:"session_id"`
	Config          SessionConfig  `json:"config"`
	Status          SessionStatus  `json:"status"`
	TotalQuestions  int            `json:"total_questions"`
	QuestionCount   int            `json:"question_count"`
	CurrentQuestion string         `json:"current_question"`
	CurrentAnswered bool           `json:"current_answered"`
	QuestionsAsked  []string       `json:"questions_asked"`
	History         []HistoryEntry `json:"history"`
	Summary         string         `json:"summary,omitempty"`
	ReportID        *uuid.UUID     `json:"report_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type StartSessionReq struct {
	Role           Role          `json:"role" binding:"required"`
	Domain         Domain        `json:"domain" binding:"omitempty,oneof=General Frontend Backend 'Machine Learning' 'System Design'"`
	Mode           InterviewMode `json:"mode" binding:"required,oneof=Technical Behavioral"`
	Difficulty     Difficulty    `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	TotalQuestions int           `json:"total_questions"`
}

type SubmitAnswerReq struct {
	Answer string `json:"answer"`
}

type QuestionRes struct {
	SessionID      uuid.UUID `json:"session_id"`
	QuestionNumber int       `json:"question_number"`
	TotalQuestions int       `json:"total_questions"`
	Question       string    `json:"question"`
	IsLast         bool      `json:"is_last"`
}

type AnswerRes struct {
	SessionID uuid.UUID    `json:"session_id"`
	Entry     HistoryEntry `json:"entry"`
	Band      ScoreBand    `json:"band"`
}

type TopicsRes struct {
	Role            Role          `json:"role"`
	ResolvedRole    Role          `json:"resolved_role"`
	Mode            InterviewMode `json:"mode"`
	Topics          []string      `json:"topics"`
	SampleQuestions []string      `json:"sample_questions"`
}

type CatalogRes struct {
	Roles        []Role          `json:"roles"`
	Domains      []Domain        `json:"domains"`
	Modes        []InterviewMode `json:"modes"`
	Difficulties []Difficulty    `json:"difficulties"`
}

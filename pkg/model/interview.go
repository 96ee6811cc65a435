package model

import "time"

type Role string

const (
	RoleSoftwareEngineer   Role = "Software Engineer"
	RoleProductManager     Role = "Product Manager"
	RoleDataAnalyst        Role = "Data Analyst"
	RoleFrontendDeveloper  Role = "Frontend Developer"
	RoleBackendDeveloper   Role = "Backend Developer"
	RoleFullStackDeveloper Role = "Full Stack Developer"
	RoleDevOpsEngineer     Role = "DevOps Engineer"
	RoleMLEngineer         Role = "ML Engineer"
	RoleQAEngineer         Role = "QA Engineer"
	RoleSystemArchitect    Role = "System Architect"
	RoleSystemDesign       Role = "System Design"
)

// DefaultRole is used for topic lookups whenever a role is not in the catalog.
const DefaultRole = RoleSoftwareEngineer

var Roles = []Role{
	RoleSoftwareEngineer,
	RoleProductManager,
	RoleDataAnalyst,
	RoleFrontendDeveloper,
	RoleBackendDeveloper,
	RoleFullStackDeveloper,
	RoleDevOpsEngineer,
	RoleMLEngineer,
	RoleQAEngineer,
	RoleSystemArchitect,
	RoleSystemDesign,
}

type Domain string

const (
	DomainGeneral         Domain = "General"
	DomainFrontend        Domain = "Frontend"
	DomainBackend         Domain = "Backend"
	DomainMachineLearning Domain = "Machine Learning"
	DomainSystemDesign    Domain = "System Design"
)

var Domains = []Domain{DomainGeneral, DomainFrontend, DomainBackend, DomainMachineLearning, DomainSystemDesign}

// NormalizeDomain maps the "General" sentinel (and blank input) to nil.
func NormalizeDomain(d Domain) *Domain {
	if d == "" || d == DomainGeneral {
		return nil
	}
	return &d
}

type InterviewMode string

const (
	ModeTechnical  InterviewMode = "Technical"
	ModeBehavioral InterviewMode = "Behavioral"
)

var Modes = []InterviewMode{ModeTechnical, ModeBehavioral}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// SessionConfig is fixed for the lifetime of one interview run.
type SessionConfig struct {
	Role       Role          `json:"role"`
	Domain     *Domain       `json:"domain"`
	Mode       InterviewMode `json:"mode"`
	Difficulty Difficulty    `json:"difficulty"`
}

// DomainLabel renders the domain for prompts, "General" when unset.
func (c SessionConfig) DomainLabel() string {
	if c.Domain == nil {
		return string(DomainGeneral)
	}
	return string(*c.Domain)
}

type AnswerEvaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type HistoryEntry struct {
	QuestionNumber int       `json:"question_number"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Score          int       `json:"score"`
	Feedback       string    `json:"feedback"`
	WordCount      int       `json:"word_count"`
	Timestamp      time.Time `json:"timestamp"`
}

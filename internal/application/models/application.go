package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the pipeline state of a job application.
type ApplicationStatus string

const (
	StatusApplied    ApplicationStatus = "APPLIED"
	StatusViewed     ApplicationStatus = "VIEWED"
	StatusInProgress ApplicationStatus = "IN_PROGRESS"
	StatusRejected   ApplicationStatus = "REJECTED"
	StatusGhosted    ApplicationStatus = "GHOSTED"
	StatusCompleted  ApplicationStatus = "COMPLETED"
)

// Statuses lists every valid status, in pipeline order first.
var Statuses = []ApplicationStatus{
	StatusApplied,
	StatusViewed,
	StatusInProgress,
	StatusCompleted,
	StatusRejected,
	StatusGhosted,
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusViewed, StatusInProgress,
		StatusRejected, StatusGhosted, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable form used in UIs.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusApplied:
		return "Applied"
	case StatusViewed:
		return "Viewed"
	case StatusInProgress:
		return "In Progress"
	case StatusRejected:
		return "Rejected"
	case StatusGhosted:
		return "Ghosted"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// CanTransitionTo reports whether next is a permitted status change.
//
// The pipeline only moves forward: APPLIED → VIEWED → IN_PROGRESS → COMPLETED.
// REJECTED and GHOSTED are reachable from any non-terminal state, and it is
// always legal to stay on the current status. COMPLETED is terminal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusCompleted:
		return false
	case StatusViewed:
		return next != StatusApplied
	case StatusInProgress:
		return next != StatusApplied && next != StatusViewed
	default:
		return true
	}
}

// ApplicationProgress is the interview stage, meaningful only while the
// application status is IN_PROGRESS.
type ApplicationProgress string

const (
	ProgressInitialInterview   ApplicationProgress = "INITIAL_INTERVIEW"
	ProgressTechnicalInterview ApplicationProgress = "TECHNICAL_INTERVIEW"
	ProgressTechnicalExam      ApplicationProgress = "TECHNICAL_EXAM"
	ProgressFinalInterview     ApplicationProgress = "FINAL_INTERVIEW"
	ProgressJobOffer           ApplicationProgress = "JOB_OFFER"
)

func (p ApplicationProgress) IsValid() bool {
	switch p {
	case ProgressInitialInterview, ProgressTechnicalInterview,
		ProgressTechnicalExam, ProgressFinalInterview, ProgressJobOffer:
		return true
	}
	return false
}

// Label returns the human-readable form used in UIs.
func (p ApplicationProgress) Label() string {
	switch p {
	case ProgressInitialInterview:
		return "Initial Interview"
	case ProgressTechnicalInterview:
		return "Technical Interview"
	case ProgressTechnicalExam:
		return "Technical Exam"
	case ProgressFinalInterview:
		return "Final Interview"
	case ProgressJobOffer:
		return "Job Offer"
	}
	return string(p)
}

// JobApplication is the aggregate root for one tracked application.
//
// Invariants:
//   - Company and JobPosition are non-empty and at most 255 characters
//   - JobLink is non-empty and at most 1000 characters
//   - Status IN_PROGRESS implies Progress and InterviewDate are set
//   - Status COMPLETED implies DateCompleted is set
//   - Any other status implies Progress, InterviewDate and DateCompleted are nil
//   - DateApplied and CreatedAt are immutable after creation
//   - HasForm never transitions from true back to false
//
// All writes go through the lifecycle validator, which both checks and
// normalizes these fields; stores persist records as given.
type JobApplication struct {
	ID            uuid.UUID            `json:"id"`
	Company       string               `json:"company"`
	JobPosition   string               `json:"jobPosition"`
	JobLink       string               `json:"jobLink"`
	Status        ApplicationStatus    `json:"status"`
	Progress      *ApplicationProgress `json:"progress,omitempty"`
	InterviewDate *time.Time           `json:"interviewDate,omitempty"`
	DateCompleted *time.Time           `json:"dateCompleted,omitempty"`
	HasForm       bool                 `json:"hasForm"`
	DateApplied   time.Time            `json:"dateApplied"`
	DateUpdated   time.Time            `json:"dateUpdated"`
	CreatedAt     time.Time            `json:"createdAt"`
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp accepts both RFC 3339 timestamps and bare YYYY-MM-DD dates on
// input, matching what clients send for dateApplied and interviewDate.
type Timestamp struct {
	time.Time
}

const dateOnly = "2006-01-02"

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(dateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// CreateRequest is the payload for creating a job application.
type CreateRequest struct {
	Company     string     `json:"company"`
	JobPosition string     `json:"jobPosition"`
	JobLink     string     `json:"jobLink"`
	DateApplied *Timestamp `json:"dateApplied"`
}

func (r *CreateRequest) Normalize() {
	if r == nil {
		return
	}
	r.Company = strings.TrimSpace(r.Company)
	r.JobPosition = strings.TrimSpace(r.JobPosition)
	r.JobLink = strings.TrimSpace(r.JobLink)
}

// UpdateRequest is the payload for editing a job application. Company,
// position and link are always resubmitted; the lifecycle fields are
// optional and validated against the current record.
type UpdateRequest struct {
	Company       string               `json:"company"`
	JobPosition   string               `json:"jobPosition"`
	JobLink       string               `json:"jobLink"`
	Status        *ApplicationStatus   `json:"status,omitempty"`
	Progress      *ApplicationProgress `json:"progress,omitempty"`
	InterviewDate *Timestamp           `json:"interviewDate,omitempty"`
	DateCompleted *Timestamp           `json:"dateCompleted,omitempty"`
	HasForm       *bool                `json:"hasForm,omitempty"`
}

func (r *UpdateRequest) Normalize() {
	if r == nil {
		return
	}
	r.Company = strings.TrimSpace(r.Company)
	r.JobPosition = strings.TrimSpace(r.JobPosition)
	r.JobLink = strings.TrimSpace(r.JobLink)
}

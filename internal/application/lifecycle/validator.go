// Package lifecycle is the single authority for job application writes. It
// validates candidate records field by field, collecting every failure
// instead of failing fast, and normalizes state-dependent fields so that
// illegal combinations never reach a store.
package lifecycle

import (
	"fmt"
	"time"

	"jobtrack/internal/application/models"
	dErrors "jobtrack/pkg/domain-errors"
)

const (
	maxNameLen = 255
	maxLinkLen = 1000
)

// ValidateCreate checks a create payload and builds the new record. The
// caller assigns the ID; everything else is stamped here.
func ValidateCreate(req models.CreateRequest, now time.Time) (models.JobApplication, error) {
	req.Normalize()
	fields := dErrors.FieldErrors{}
	validateRequired(fields, req.Company, req.JobPosition, req.JobLink)

	dateApplied := now
	if req.DateApplied == nil || req.DateApplied.IsZero() {
		fields.Add("dateApplied", "Date applied is required")
	} else {
		dateApplied = req.DateApplied.Time
	}

	if err := fields.Err(); err != nil {
		return models.JobApplication{}, err
	}

	return models.JobApplication{
		Company:     req.Company,
		JobPosition: req.JobPosition,
		JobLink:     req.JobLink,
		Status:      models.StatusApplied,
		DateApplied: dateApplied,
		DateUpdated: now,
		CreatedAt:   now,
	}, nil
}

// ValidateUpdate merges an update payload into the current record and
// enforces the status machine:
//
//   - status transitions must be allowed from the current status
//   - IN_PROGRESS requires progress and interviewDate
//   - COMPLETED requires dateCompleted
//
// Normalization clears progress/interviewDate outside IN_PROGRESS and
// dateCompleted outside COMPLETED, even when the caller supplied values.
// dateApplied and createdAt are never editable, and hasForm is sticky once
// set.
func ValidateUpdate(current models.JobApplication, req models.UpdateRequest, now time.Time) (models.JobApplication, error) {
	req.Normalize()
	fields := dErrors.FieldErrors{}
	validateRequired(fields, req.Company, req.JobPosition, req.JobLink)

	status := current.Status
	if req.Status != nil {
		switch {
		case !req.Status.IsValid():
			fields.Add("status", fmt.Sprintf("Invalid status %q", *req.Status))
		case !current.Status.CanTransitionTo(*req.Status):
			fields.Add("status", fmt.Sprintf("Cannot change status from %s to %s",
				current.Status.Label(), req.Status.Label()))
		default:
			status = *req.Status
		}
	}

	progress := current.Progress
	if req.Progress != nil {
		if !req.Progress.IsValid() {
			fields.Add("progress", fmt.Sprintf("Invalid progress %q", *req.Progress))
		} else {
			p := *req.Progress
			progress = &p
		}
	}

	interviewDate := current.InterviewDate
	if req.InterviewDate != nil && !req.InterviewDate.IsZero() {
		t := req.InterviewDate.Time
		interviewDate = &t
	}
	dateCompleted := current.DateCompleted
	if req.DateCompleted != nil && !req.DateCompleted.IsZero() {
		t := req.DateCompleted.Time
		dateCompleted = &t
	}

	switch status {
	case models.StatusInProgress:
		if progress == nil {
			fields.Add("progress", "Progress is required when status is In Progress")
		}
		if interviewDate == nil {
			fields.Add("interviewDate", "Interview date is required when status is In Progress")
		}
	case models.StatusCompleted:
		if dateCompleted == nil {
			fields.Add("dateCompleted", "Date completed is required when status is Completed")
		}
	}

	if err := fields.Err(); err != nil {
		return models.JobApplication{}, err
	}

	if status != models.StatusInProgress {
		progress = nil
		interviewDate = nil
	}
	if status != models.StatusCompleted {
		dateCompleted = nil
	}

	updated := current
	updated.Company = req.Company
	updated.JobPosition = req.JobPosition
	updated.JobLink = req.JobLink
	updated.Status = status
	updated.Progress = progress
	updated.InterviewDate = interviewDate
	updated.DateCompleted = dateCompleted
	updated.DateUpdated = now
	if req.HasForm != nil {
		// sticky: true can never be unset through the editing flow
		updated.HasForm = updated.HasForm || *req.HasForm
	}
	return updated, nil
}

func validateRequired(fields dErrors.FieldErrors, company, jobPosition, jobLink string) {
	if company == "" {
		fields.Add("company", "Company is required")
	} else if len(company) > maxNameLen {
		fields.Add("company", fmt.Sprintf("Company must be %d characters or less", maxNameLen))
	}
	if jobPosition == "" {
		fields.Add("jobPosition", "Job Position is required")
	} else if len(jobPosition) > maxNameLen {
		fields.Add("jobPosition", fmt.Sprintf("Job Position must be %d characters or less", maxNameLen))
	}
	if jobLink == "" {
		fields.Add("jobLink", "Job Link is required")
	} else if len(jobLink) > maxLinkLen {
		fields.Add("jobLink", fmt.Sprintf("Job Link must be %d characters or less", maxLinkLen))
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"applied moves forward", StatusApplied, StatusViewed, true},
		{"applied can skip ahead", StatusApplied, StatusCompleted, true},
		{"applied can be rejected", StatusApplied, StatusRejected, true},
		{"viewed cannot go back to applied", StatusViewed, StatusApplied, false},
		{"viewed moves forward", StatusViewed, StatusInProgress, true},
		{"viewed can be ghosted", StatusViewed, StatusGhosted, true},
		{"in progress cannot go back to applied", StatusInProgress, StatusApplied, false},
		{"in progress cannot go back to viewed", StatusInProgress, StatusViewed, false},
		{"in progress can complete", StatusInProgress, StatusCompleted, true},
		{"in progress can be rejected", StatusInProgress, StatusRejected, true},
		{"completed is terminal", StatusCompleted, StatusInProgress, false},
		{"completed cannot be rejected", StatusCompleted, StatusRejected, false},
		{"completed stays completed", StatusCompleted, StatusCompleted, true},
		{"rejected can be revived", StatusRejected, StatusInProgress, true},
		{"ghosted can be revived", StatusGhosted, StatusViewed, true},
		{"same status is always allowed", StatusViewed, StatusViewed, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}
	assert.False(t, ApplicationStatus("PENDING").IsValid())
	assert.False(t, ApplicationStatus("").IsValid())
}

func TestProgressIsValid(t *testing.T) {
	assert.True(t, ProgressTechnicalInterview.IsValid())
	assert.False(t, ApplicationProgress("PHONE_SCREEN").IsValid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Ghosted", StatusGhosted.Label())
	assert.Equal(t, "Technical Exam", ProgressTechnicalExam.Label())
	assert.Equal(t, "Job Offer", ProgressJobOffer.Label())
}

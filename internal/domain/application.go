package domain

import "time"

// Application statuses. An application is "active" while pending, approved
// or in progress; submission is rejected while the caller has any active
// application, whatever its program.
const (
	ApplicationPending    = "pending"
	ApplicationApproved   = "approved"
	ApplicationRejected   = "rejected"
	ApplicationInProgress = "in-progress"
	ApplicationCompleted  = "completed"
)

func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected,
		ApplicationInProgress, ApplicationCompleted:
		return true
	}
	return false
}

// ActiveApplicationStatus reports whether s blocks a new submission.
func ActiveApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationInProgress:
		return true
	}
	return false
}

type Application struct {
	ApplicationID string       `json:"id" dynamodbav:"application_id"`
	UserID        string       `json:"user_id" dynamodbav:"user_id"`
	Program       string       `json:"program" dynamodbav:"program"`
	Experience    string       `json:"experience" dynamodbav:"experience"`
	Education     string       `json:"education" dynamodbav:"education"`
	Motivation    string       `json:"motivation" dynamodbav:"motivation"`
	Status        string       `json:"status" dynamodbav:"status"`
	Notes         string       `json:"notes" dynamodbav:"notes"`
	SubmittedAt   time.Time    `json:"submitted_at" dynamodbav:"submitted_at"`
	UpdatedAt     time.Time    `json:"updated_at" dynamodbav:"updated_at"`
	Applicant     *UserSummary `json:"applicant,omitempty" dynamodbav:"-"`
}

type SubmitApplicationRequest struct {
	Program    string `json:"program" validate:"required"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Motivation string `json:"motivation"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

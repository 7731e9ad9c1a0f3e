package handler

import (
	"strings"

	"gatehouse/internal/application/models"
	"gatehouse/internal/application/validate"
)

// SubmitRequest is the intake form as it arrives on the wire.
type SubmitRequest struct {
	Username   string `json:"username"`
	Age        int    `json:"age"`
	PlatformID string `json:"platform_id"`
	AccountURL string `json:"account_url"`
	Experience string `json:"experience"`
	Backstory  string `json:"backstory"`
}

// Validate runs the full form validation so a bad submission is rejected at
// the boundary with every violation listed.
func (r *SubmitRequest) Validate() error {
	return validate.Submission(r.Submission())
}

func (r *SubmitRequest) Submission() models.Submission {
	return models.Submission{
		Username:   strings.TrimSpace(r.Username),
		Age:        r.Age,
		PlatformID: strings.TrimSpace(r.PlatformID),
		AccountURL: strings.TrimSpace(r.AccountURL),
		Experience: r.Experience,
		Backstory:  r.Backstory,
	}
}

// DecideRequest carries a reviewer's verdict. Reason is optional; denial
// messages fall back to a generic line when it is empty.
type DecideRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`

	outcome models.Status
}

func (r *DecideRequest) Validate() error {
	outcome, err := models.ParseOutcome(r.Status)
	if err != nil {
		return err
	}
	r.outcome = outcome
	return nil
}

// Outcome returns the parsed terminal status. Only valid after Validate.
func (r *DecideRequest) Outcome() models.Status {
	return r.outcome
}

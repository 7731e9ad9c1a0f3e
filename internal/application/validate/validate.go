// Package validate enforces the intake form constraints. It is the only
// gate between raw applicant input and a models.Submission the lifecycle
// service will trust.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gatehouse/internal/application/models"
	dErrors "gatehouse/pkg/domain-errors"
)

const (
	MinUsernameLen   = 3
	MinAge           = 18
	PlatformIDDigits = 17
	MinExperienceLen = 50
	MinBackstoryLen  = 100
)

var platformIDPattern = regexp.MustCompile(`^[0-9]{17}$`)

// Submission checks every constraint and reports all violations at once, so
// applicants fix the whole form in one pass instead of one error per
// round-trip. A nil return means sub is safe to hand to the lifecycle
// service.
func Submission(sub models.Submission) error {
	var violations []dErrors.FieldViolation

	if len(strings.TrimSpace(sub.Username)) < MinUsernameLen {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "username",
			Reason: fmt.Sprintf("must be at least %d characters", MinUsernameLen),
		})
	}

	if sub.Age < MinAge {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "age",
			Reason: fmt.Sprintf("must be at least %d", MinAge),
		})
	}

	if !platformIDPattern.MatchString(sub.PlatformID) {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "platform_id",
			Reason: fmt.Sprintf("must be a %d-digit number", PlatformIDDigits),
		})
	}

	if !wellFormedURL(sub.AccountURL) {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "account_url",
			Reason: "must be a valid URL",
		})
	}

	if len(strings.TrimSpace(sub.Experience)) < MinExperienceLen {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "experience",
			Reason: fmt.Sprintf("must be at least %d characters", MinExperienceLen),
		})
	}

	if len(strings.TrimSpace(sub.Backstory)) < MinBackstoryLen {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "backstory",
			Reason: fmt.Sprintf("must be at least %d characters", MinBackstoryLen),
		})
	}

	if len(violations) > 0 {
		return dErrors.NewValidation("application failed validation", violations...)
	}
	return nil
}

func wellFormedURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/application/models"
	dErrors "gatehouse/pkg/domain-errors"
)

func validSubmission() models.Submission {
	return models.Submission{
		Username:   "roadrunner",
		Age:        18,
		PlatformID: "76561198012345678",
		AccountURL: "https://forum.cfx.re/u/roadrunner",
		Experience: strings.Repeat("roleplay ", 10),
		Backstory:  strings.Repeat("backstory ", 15),
	}
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var de *dErrors.Error
	require.True(t, errors.As(err, &de))
	fields := make([]string, 0, len(de.Fields))
	for _, v := range de.Fields {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestSubmission_ValidFormPasses(t *testing.T) {
	require.NoError(t, Submission(validSubmission()))
}

func TestSubmission_EachConstraintReportsItsField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Submission)
		field  string
	}{
		{"username too short", func(s *models.Submission) { s.Username = "ab" }, "username"},
		{"underage", func(s *models.Submission) { s.Age = 17 }, "age"},
		{"platform id too short", func(s *models.Submission) { s.PlatformID = "7656119801234567" }, "platform_id"},
		{"platform id not numeric", func(s *models.Submission) { s.PlatformID = "7656119801234567a" }, "platform_id"},
		{"account url malformed", func(s *models.Submission) { s.AccountURL = "not a url" }, "account_url"},
		{"account url missing scheme", func(s *models.Submission) { s.AccountURL = "forum.cfx.re/u/roadrunner" }, "account_url"},
		{"experience too short", func(s *models.Submission) { s.Experience = strings.Repeat("x", 40) }, "experience"},
		{"backstory too short", func(s *models.Submission) { s.Backstory = strings.Repeat("x", 99) }, "backstory"},
		{"whitespace does not pad experience", func(s *models.Submission) { s.Experience = strings.Repeat(" ", 60) }, "experience"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			err := Submission(sub)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, violationFields(t, err), tc.field)
		})
	}
}

func TestSubmission_CollectsEveryViolation(t *testing.T) {
	err := Submission(models.Submission{})
	require.Error(t, err)

	fields := violationFields(t, err)
	assert.ElementsMatch(t,
		[]string{"username", "age", "platform_id", "account_url", "experience", "backstory"},
		fields,
		"an empty form should report every field at once",
	)
}

func TestSubmission_BoundaryValuesPass(t *testing.T) {
	sub := validSubmission()
	sub.Username = "abc"
	sub.Age = 18
	sub.Experience = strings.Repeat("x", 50)
	sub.Backstory = strings.Repeat("x", 100)

	require.NoError(t, Submission(sub))
}

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

func TestAuthorize(t *testing.T) {
	p := New([]string{"321004302661451776", "", "400000000000000002"})

	t.Run("reviewer allowed on every gated operation", func(t *testing.T) {
		reviewer := domain.Identity{ProviderID: "321004302661451776"}
		for _, op := range []Operation{OpListPending, OpDecide, OpListArchived} {
			assert.NoError(t, p.Authorize(reviewer, op))
		}
	})

	t.Run("missing identity is unauthenticated, not forbidden", func(t *testing.T) {
		err := p.Authorize(domain.Identity{}, OpDecide)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("known identity off the list is forbidden", func(t *testing.T) {
		err := p.Authorize(domain.Identity{ProviderID: "999999999999999999"}, OpListArchived)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("empty allow-list entries are ignored", func(t *testing.T) {
		assert.False(t, p.IsReviewer(""))
	})
}

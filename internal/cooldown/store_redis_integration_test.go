//go:build integration

package cooldown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatehouse/internal/cooldown"
	"gatehouse/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *cooldown.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = cooldown.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestCooldownRoundTrip() {
	ctx := context.Background()
	until := time.Now().Add(14 * 24 * time.Hour).UTC().Truncate(time.Second)

	s.Require().NoError(s.store.MarkDenied(ctx, "200000000000000001", until))

	got, ok, err := s.store.DeniedUntil(ctx, "200000000000000001")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(until, got.UTC())
}

func (s *RedisStoreSuite) TestUnknownApplicantHasNoCooldown() {
	_, ok, err := s.store.DeniedUntil(context.Background(), "999999999999999999")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisStoreSuite) TestExpiredCooldownIsNotWritten() {
	ctx := context.Background()
	s.Require().NoError(s.store.MarkDenied(ctx, "200000000000000001", time.Now().Add(-time.Hour)))

	_, ok, err := s.store.DeniedUntil(ctx, "200000000000000001")
	s.Require().NoError(err)
	s.False(ok)
}

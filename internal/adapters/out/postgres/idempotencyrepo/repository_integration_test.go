package idempotencyrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/idempotencyrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/idempotency"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type IdempotencyStoreIntegrationTestSuite struct {
	suite.Suite
	pg    *pgtest.Database
	store *idempotencyrepo.GormIdempotencyStore
	now   time.Time
}

func (suite *IdempotencyStoreIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.store = idempotencyrepo.NewGormIdempotencyStore(pg.DB)
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *IdempotencyStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("idempotency_keys"))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *IdempotencyStoreIntegrationTestSuite) record(key, result string, at time.Time) *idempotency.Record {
	r, err := idempotency.NewRecord(key, json.RawMessage(result), at, 24*time.Hour)
	suite.Require().NoError(err)
	return r
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestClaimThenGet() {
	ctx := context.Background()

	claimed, err := suite.store.Claim(ctx, suite.record("scan-1", `{"ok":true}`, suite.now))
	suite.Require().NoError(err)
	suite.True(claimed)

	stored, err := suite.store.Get(ctx, "scan-1")
	suite.Require().NoError(err)
	suite.JSONEq(`{"ok":true}`, string(stored.Result()))
	suite.True(stored.ClaimedAt().Equal(suite.now))
	suite.True(stored.ExpiresAt().Equal(suite.now.Add(24 * time.Hour)))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestLiveKeyCannotBeClaimedTwice() {
	ctx := context.Background()

	claimed, err := suite.store.Claim(ctx, suite.record("scan-1", `{"first":true}`, suite.now))
	suite.Require().NoError(err)
	suite.True(claimed)

	claimed, err = suite.store.Claim(ctx, suite.record("scan-1", `{"second":true}`, suite.now.Add(time.Hour)))
	suite.Require().NoError(err)
	suite.False(claimed)

	stored, err := suite.store.Get(ctx, "scan-1")
	suite.Require().NoError(err)
	suite.JSONEq(`{"first":true}`, string(stored.Result()))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestExpiredKeyIsReclaimed() {
	ctx := context.Background()

	_, err := suite.store.Claim(ctx, suite.record("scan-1", `{"first":true}`, suite.now))
	suite.Require().NoError(err)

	later := suite.now.Add(25 * time.Hour)
	claimed, err := suite.store.Claim(ctx, suite.record("scan-1", `{"second":true}`, later))
	suite.Require().NoError(err)
	suite.True(claimed)

	stored, err := suite.store.Get(ctx, "scan-1")
	suite.Require().NoError(err)
	suite.JSONEq(`{"second":true}`, string(stored.Result()))
	suite.True(stored.ClaimedAt().Equal(later))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestPurgeExpired() {
	ctx := context.Background()

	_, err := suite.store.Claim(ctx, suite.record("old", `{}`, suite.now.Add(-48*time.Hour)))
	suite.Require().NoError(err)
	_, err = suite.store.Claim(ctx, suite.record("fresh", `{}`, suite.now))
	suite.Require().NoError(err)

	purged, err := suite.store.PurgeExpired(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	_, err = suite.store.Get(ctx, "old")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.store.Get(ctx, "fresh")
	suite.NoError(err)
}

func TestIdempotencyStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyStoreIntegrationTestSuite))
}

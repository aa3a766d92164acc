package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("shipment_lines", "shipments"))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.pg.DB, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(orderID *kernel.UUID) *shipment.Shipment {
	a, err := shipment.NewLine(kernel.NewUUID(), kernel.MustSKU("SKU-A"), 4, 0)
	suite.Require().NoError(err)
	b, err := shipment.NewLine(kernel.NewUUID(), kernel.MustSKU("SKU-B"), 2, 2)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(kernel.NewUUID(), orderID, []*shipment.Line{a, b})
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	s := suite.newShipment(&orderID)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(s))
	suite.Equal(shipment.Created, stored.Status())
	suite.Require().NotNil(stored.OrderID())
	suite.True(stored.OrderID().IsEqual(orderID))
	suite.Empty(stored.Custody())

	lines := stored.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal("SKU-A", lines[0].SKU().String())
	suite.Equal(4, lines[0].Requested())
	suite.Equal(0, lines[0].Reserved())
	suite.Equal(2, lines[1].Reserved())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestStandaloneShipmentHasNoOrder() {
	ctx := context.Background()
	s := suite.newShipment(nil)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Nil(stored.OrderID())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdatePersistsReservationsAndCustody() {
	ctx := context.Background()
	s := suite.newShipment(nil)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.Reserve(s.Lines()[0].ID(), 4))
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := s.HandOff("Dana Driver", at)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, s))

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, stored.Status())
	suite.Equal(4, stored.Lines()[0].Reserved())
	suite.Empty(stored.Shortages())

	custody := stored.Custody()
	suite.Require().Len(custody, 1)
	suite.Equal("Dana Driver", custody[0].Actor)
	suite.Equal(shipment.CustodyToDriver, custody[0].Action)
	suite.True(custody[0].At.Equal(at))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestExistsForOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	exists, err := suite.repository.ExistsForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repository.Add(ctx, suite.newShipment(&orderID)))

	exists, err = suite.repository.ExistsForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUnknownShipment() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Update(ctx, suite.newShipment(nil))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}

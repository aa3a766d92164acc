package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder() {
	ctx := context.Background()

	o, err := order.NewOrder(kernel.NewUUID())
	suite.Require().NoError(err)
	cheap, err := kernel.NewMoney(199)
	suite.Require().NoError(err)
	dear, err := kernel.NewMoney(1000)
	suite.Require().NoError(err)
	_, err = o.AddLine(kernel.NewUUID(), kernel.MustSKU("A"), 3, "", cheap)
	suite.Require().NoError(err)
	_, err = o.AddLine(kernel.NewUUID(), kernel.MustSKU("B"), 2, "cs", dear)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	response, err := queries.NewGetOrderQueryHandler(suite.pg.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(response.ID.IsEqual(o.ID()))
	suite.Equal("DRAFT", response.Status)
	suite.Require().Len(response.Lines, 2)
	suite.Equal("A", response.Lines[0].SKU)
	suite.Equal("EA", response.Lines[0].UnitOfMeasure)
	suite.Equal("OPEN", response.Lines[0].Status)
	suite.True(decimal.RequireFromString("1.99").Equal(response.Lines[0].UnitPrice))
	suite.True(decimal.RequireFromString("5.97").Equal(response.Lines[0].LineTotal))
	suite.Equal("CS", response.Lines[1].UnitOfMeasure)
	suite.True(decimal.RequireFromString("25.97").Equal(response.Total))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderUnknown() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment() {
	ctx := context.Background()

	line, err := shipment.NewLine(kernel.NewUUID(), kernel.MustSKU("A"), 5, 0)
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(kernel.NewUUID(), nil, []*shipment.Line{line})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Reserve(line.ID(), 2))
	_, err = s.HandOff("Dana Driver", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	repo := suite.factory.Create().ShipmentRepository()
	suite.Require().NoError(repo.Add(ctx, s))

	query, err := queries.NewGetShipmentQuery(s.ID())
	suite.Require().NoError(err)

	response, err := queries.NewGetShipmentQueryHandler(suite.pg.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Nil(response.OrderID)
	suite.Equal("IN_TRANSIT", response.Status)
	suite.Require().Len(response.Lines, 1)
	suite.Equal(5, response.Lines[0].Requested)
	suite.Equal(2, response.Lines[0].Reserved)
	suite.Equal(3, response.Lines[0].Shortfall)
	suite.Require().Len(response.Custody, 1)
	suite.Equal("Dana Driver", response.Custody[0].Actor)
	suite.Equal(shipment.UnknownLocation, response.Custody[0].Location)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipmentUnknown() {
	query, err := queries.NewGetShipmentQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetShipmentQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetSubjectHistory() {
	ctx := context.Background()
	store := suite.factory.Create().EventStore()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, tp := range []event.Type{event.OrderCreated, event.OrderApproved} {
		e, err := event.NewEvent(tp, "order-7", event.Payload{"orderId": "order-7"}, at.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(err)
		_, err = store.Append(ctx, e)
		suite.Require().NoError(err)
	}

	query, err := queries.NewGetSubjectHistoryQuery("order-7")
	suite.Require().NoError(err)

	history, err := queries.NewGetSubjectHistoryQueryHandler(suite.pg.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal("ORDER_CREATED", history[0].Type)
	suite.Equal(int64(1), history[0].Sequence)
	suite.Equal("ORDER_APPROVED", history[1].Type)
	suite.Equal(int64(2), history[1].Sequence)
	suite.Equal("order-7", history[1].Payload["orderId"])
	suite.True(history[1].OccurredAt.Equal(at.Add(time.Minute)))
}

func (suite *QueriesIntegrationTestSuite) TestGetSubjectHistoryUnknownIsEmpty() {
	query, err := queries.NewGetSubjectHistoryQuery("nobody")
	suite.Require().NoError(err)

	history, err := queries.NewGetSubjectHistoryQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(history)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

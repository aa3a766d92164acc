package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockOrderAllocator struct{ mock.Mock }

func (m *MockOrderAllocator) Handle(ctx context.Context, cmd commands.AllocateOrderCommand) (commands.AllocateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AllocateOrderResult), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockShipmentAdvancer struct{ mock.Mock }

func (m *MockShipmentAdvancer) Handle(ctx context.Context, cmd commands.AdvanceShipmentCommand) (shipment.Status, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(shipment.Status), args.Error(1)
}

type MockCustodyTransferrer struct{ mock.Mock }

func (m *MockCustodyTransferrer) Handle(ctx context.Context, cmd commands.TransferCustodyCommand) (commands.TransferCustodyResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransferCustodyResult), args.Error(1)
}

type MockHandoffConfirmer struct{ mock.Mock }

func (m *MockHandoffConfirmer) Handle(ctx context.Context, cmd commands.ConfirmHandoffCommand) (commands.ConfirmHandoffResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ConfirmHandoffResult), args.Error(1)
}

type MockHistoryReader struct{ mock.Mock }

func (m *MockHistoryReader) Handle(ctx context.Context, query queries.GetSubjectHistoryQuery) ([]queries.EventView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.EventView), args.Error(1)
}

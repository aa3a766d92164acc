package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/idempotency"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Reserve(ctx context.Context, sku kernel.SKU, requested int) (int, error) {
	args := m.Called(ctx, sku, requested)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) Restock(ctx context.Context, sku kernel.SKU, qty int) (*inventory.Record, error) {
	args := m.Called(ctx, sku, qty)
	r, _ := args.Get(0).(*inventory.Record)
	return r, args.Error(1)
}

func (m *MockInventoryRepository) Get(ctx context.Context, sku kernel.SKU) (*inventory.Record, error) {
	args := m.Called(ctx, sku)
	r, _ := args.Get(0).(*inventory.Record)
	return r, args.Error(1)
}

type MockEventStore struct{ mock.Mock }

func (m *MockEventStore) Append(ctx context.Context, e *event.Event) (*event.Event, error) {
	args := m.Called(ctx, e)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return e.WithSequence(1)
}

func (m *MockEventStore) History(ctx context.Context, subjectID string) ([]*event.Event, error) {
	args := m.Called(ctx, subjectID)
	events, _ := args.Get(0).([]*event.Event)
	return events, args.Error(1)
}

// appended returns the events passed to Append, in call order.
func (m *MockEventStore) appended() []*event.Event {
	var out []*event.Event
	for _, c := range m.Calls {
		if c.Method == "Append" {
			out = append(out, c.Arguments.Get(1).(*event.Event))
		}
	}
	return out
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Claim(ctx context.Context, record *idempotency.Record) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key string) (*idempotency.Record, error) {
	args := m.Called(ctx, key)
	r, _ := args.Get(0).(*idempotency.Record)
	return r, args.Error(1)
}

func (m *MockIdempotencyStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByTag(ctx context.Context, tagID string) (*user.User, error) {
	args := m.Called(ctx, tagID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// MockUnitOfWork satisfies every narrow UoW interface of the package.
// Repository accessors return the fields; only the transaction lifecycle is
// recorded as calls.
type MockUnitOfWork struct {
	mock.Mock

	orders      *MockOrderRepository
	shipments   *MockShipmentRepository
	inventory   *MockInventoryRepository
	events      *MockEventStore
	idempotency *MockIdempotencyStore
	users       *MockUserRepository
}

func newMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		orders:      new(MockOrderRepository),
		shipments:   new(MockShipmentRepository),
		inventory:   new(MockInventoryRepository),
		events:      new(MockEventStore),
		idempotency: new(MockIdempotencyStore),
		users:       new(MockUserRepository),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUnitOfWork) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUnitOfWork) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository         { return m.orders }
func (m *MockUnitOfWork) ShipmentRepository() ports.ShipmentRepository   { return m.shipments }
func (m *MockUnitOfWork) InventoryRepository() ports.InventoryRepository { return m.inventory }
func (m *MockUnitOfWork) EventStore() ports.EventStore                   { return m.events }
func (m *MockUnitOfWork) IdempotencyStore() ports.IdempotencyStore       { return m.idempotency }
func (m *MockUnitOfWork) UserRepository() ports.UserRepository           { return m.users }

// expectCommitted registers a successful Begin, Commit and the deferred Rollback.
func (m *MockUnitOfWork) expectCommitted(ctx context.Context) {
	mock.InOrder(
		m.On("Begin", ctx).Return(nil).Once(),
		m.On("Commit", ctx).Return(nil).Once(),
		m.On("Rollback", ctx).Return(nil).Once(),
	)
}

// expectRolledBack registers a successful Begin followed only by Rollback.
func (m *MockUnitOfWork) expectRolledBack(ctx context.Context) {
	mock.InOrder(
		m.On("Begin", ctx).Return(nil).Once(),
		m.On("Rollback", ctx).Return(nil).Once(),
	)
}

type uowFactory struct {
	uow *MockUnitOfWork
}

type orderUoWFactory uowFactory

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type inventoryUoWFactory uowFactory

func (f inventoryUoWFactory) Create() commands.InventoryUoW { return f.uow }

type shipmentUoWFactory uowFactory

func (f shipmentUoWFactory) Create() commands.ShipmentUoW { return f.uow }

type custodyUoWFactory uowFactory

func (f custodyUoWFactory) Create() commands.CustodyUoW { return f.uow }

type idempotencyUoWFactory uowFactory

func (f idempotencyUoWFactory) Create() commands.IdempotencyUoW { return f.uow }

type userUoWFactory uowFactory

func (f userUoWFactory) Create() commands.UserUoW { return f.uow }

type MockBillingTrigger struct{ mock.Mock }

func (m *MockBillingTrigger) CustodyTransferred(ctx context.Context, manifest services.Manifest) error {
	return m.Called(ctx, manifest).Error(0)
}

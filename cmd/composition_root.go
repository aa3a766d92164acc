package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clock.Clock
	manifests  services.ManifestBuilder
	billing    ports.BillingTrigger
	jobLocker  ports.JobLocker
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	billing ports.BillingTrigger,
	jobLocker ports.JobLocker,
	logger *slog.Logger,
) (CompositionRoot, error) {
	manifests, err := services.NewManifestBuilder(configs.DocsBaseURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.NewSystem(),
		manifests:  manifests,
		billing:    billing,
		jobLocker:  jobLocker,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) custodyUoWFactory() commands.CustodyUoWFactory {
	return FuncCustodyUoWFactory(func() commands.CustodyUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	return commands.NewAllocateOrderCommandHandler(c.orderUoWFactory(), services.NewOrderAllocator(), c.clock)
}

func (c *CompositionRoot) CreateRestockInventoryCommandHandler() commands.RestockInventoryCommandHandler {
	return commands.NewRestockInventoryCommandHandler(c.inventoryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReserveShipmentCommandHandler() commands.ReserveShipmentCommandHandler {
	return commands.NewReserveShipmentCommandHandler(c.shipmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	return commands.NewAdvanceShipmentCommandHandler(c.shipmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransferCustodyCommandHandler() commands.TransferCustodyCommandHandler {
	return commands.NewTransferCustodyCommandHandler(
		c.custodyUoWFactory(),
		c.manifests,
		c.billing,
		c.clock,
		c.configs.IdempotencyTTL,
		c.logger,
	)
}

func (c *CompositionRoot) CreateConfirmHandoffCommandHandler() commands.ConfirmHandoffCommandHandler {
	return commands.NewConfirmHandoffCommandHandler(c.custodyUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreatePurgeIdempotencyKeysCommandHandler() commands.PurgeIdempotencyKeysCommandHandler {
	var f commands.IdempotencyUoWFactory = FuncIdempotencyUoWFactory(func() commands.IdempotencyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeIdempotencyKeysCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSubjectHistoryQueryHandler() queries.GetSubjectHistoryQueryHandler {
	return queries.NewGetSubjectHistoryQueryHandler(c.gormDB)
}

// CreateHTTPHandlers bundles every use case the API exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		ApproveOrder:    c.CreateApproveOrderCommandHandler(),
		AllocateOrder:   c.CreateAllocateOrderCommandHandler(),
		Restock:         c.CreateRestockInventoryCommandHandler(),
		CreateShipment:  c.CreateCreateShipmentCommandHandler(),
		ReserveShipment: c.CreateReserveShipmentCommandHandler(),
		AdvanceShipment: c.CreateAdvanceShipmentCommandHandler(),
		TransferCustody: c.CreateTransferCustodyCommandHandler(),
		ConfirmHandoff:  c.CreateConfirmHandoffCommandHandler(),
		RegisterUser:    c.CreateRegisterUserCommandHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		GetShipment:     c.CreateGetShipmentQueryHandler(),
		GetHistory:      c.CreateGetSubjectHistoryQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeIdempotencyKeysCommandHandler(),
		c.jobLocker,
		c.configs.IdempotencyPurgeSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncCustodyUoWFactory func() commands.CustodyUoW

func (f FuncCustodyUoWFactory) Create() commands.CustodyUoW {
	return f()
}

type FuncIdempotencyUoWFactory func() commands.IdempotencyUoW

func (f FuncIdempotencyUoWFactory) Create() commands.IdempotencyUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

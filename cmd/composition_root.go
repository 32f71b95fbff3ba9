package cmd

import (
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

// CompositionRoot wires infrastructure into the use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	planner    packing.Planner
	scanTokens services.ScanTokenService
}

// NewCompositionRoot builds the object graph from configuration and an open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, planner packing.Planner) (CompositionRoot, error) {
	scanTokens, err := services.NewScanTokenService([]byte(config.HMACSecret))
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		planner:    planner,
		scanTokens: scanTokens,
	}, nil
}

// ScanTokenService returns the shared scan link signer.
func (c *CompositionRoot) ScanTokenService() services.ScanTokenService {
	return c.scanTokens
}

// ScanLinkTTL returns the configured scan link lifetime.
func (c *CompositionRoot) ScanLinkTTL() time.Duration {
	return time.Duration(c.config.ScanLinkTTLHours) * time.Hour
}

func (c *CompositionRoot) CreateRegisterOrderCommandHandler() commands.RegisterOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterOrderCommandHandler(f)
}

func (c *CompositionRoot) CreatePackOrderCommandHandler() commands.PackOrderCommandHandler {
	var f commands.PackingUoWFactory = FuncPackingUoWFactory(func() commands.PackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPackOrderCommandHandler(f, c.planner)
}

func (c *CompositionRoot) CreateCreateShelfSlotCommandHandler() commands.CreateShelfSlotCommandHandler {
	var f commands.StagingUoWFactory = FuncStagingUoWFactory(func() commands.StagingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShelfSlotCommandHandler(f)
}

func (c *CompositionRoot) CreateStagePackageCommandHandler() commands.StagePackageCommandHandler {
	var f commands.StagingUoWFactory = FuncStagingUoWFactory(func() commands.StagingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStagePackageCommandHandler(f, services.NewLeastLoadedZonePicker())
}

func (c *CompositionRoot) CreateMovePackageCommandHandler() commands.MovePackageCommandHandler {
	var f commands.RelocationUoWFactory = FuncRelocationUoWFactory(func() commands.RelocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMovePackageCommandHandler(f)
}

func (c *CompositionRoot) CreateUnstagePackageCommandHandler() commands.UnstagePackageCommandHandler {
	var f commands.RelocationUoWFactory = FuncRelocationUoWFactory(func() commands.RelocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnstagePackageCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateDispatchShipmentCommandHandler() commands.DispatchShipmentCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordScanCommandHandler() commands.RecordScanCommandHandler {
	return commands.NewRecordScanCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateMintArrivalTokenCommandHandler() commands.MintArrivalTokenCommandHandler {
	ttl := time.Duration(c.config.ArrivalTokenTTLDays) * 24 * time.Hour
	return commands.NewMintArrivalTokenCommandHandler(c.shipmentUoWFactory(), ttl, c.config.PublicBaseURL)
}

func (c *CompositionRoot) CreateConfirmArrivalCommandHandler() commands.ConfirmArrivalCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmArrivalCommandHandler(f)
}

func (c *CompositionRoot) CreateGetShipmentProgressQueryHandler() queries.GetShipmentProgressQueryHandler {
	return queries.NewGetShipmentProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFreeSlotsQueryHandler() queries.GetFreeSlotsQueryHandler {
	return queries.NewGetFreeSlotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackingPlanQueryHandler() queries.GetPackingPlanQueryHandler {
	return queries.NewGetPackingPlanQueryHandler(c.gormDB)
}

// ShipmentUoWFactory exposes the shipment unit of work factory for jobs.
func (c *CompositionRoot) ShipmentUoWFactory() commands.ShipmentUoWFactory {
	return c.shipmentUoWFactory()
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPackingUoWFactory func() commands.PackingUoW

func (f FuncPackingUoWFactory) Create() commands.PackingUoW {
	return f()
}

type FuncStagingUoWFactory func() commands.StagingUoW

func (f FuncStagingUoWFactory) Create() commands.StagingUoW {
	return f()
}

type FuncRelocationUoWFactory func() commands.RelocationUoW

func (f FuncRelocationUoWFactory) Create() commands.RelocationUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

// Package http exposes the fulfillment use cases over a REST API.
// It coordinates between HTTP handlers and application use cases,
// translating domain errors into status codes. Token values are accepted
// from callers but never echoed back in error responses or logs.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the fulfillment API.
type Server struct {
	// Command handlers
	registerOrderHandler   commands.RegisterOrderCommandHandler
	packOrderHandler       commands.PackOrderCommandHandler
	createShelfSlotHandler commands.CreateShelfSlotCommandHandler
	stagePackageHandler    commands.StagePackageCommandHandler
	movePackageHandler     commands.MovePackageCommandHandler
	unstagePackageHandler  commands.UnstagePackageCommandHandler
	createShipmentHandler  commands.CreateShipmentCommandHandler
	dispatchHandler        commands.DispatchShipmentCommandHandler
	recordScanHandler      commands.RecordScanCommandHandler
	mintTokenHandler       commands.MintArrivalTokenCommandHandler
	confirmArrivalHandler  commands.ConfirmArrivalCommandHandler

	// Query handlers
	shipmentProgressHandler queries.GetShipmentProgressQueryHandler
	freeSlotsHandler        queries.GetFreeSlotsQueryHandler
	packingPlanHandler      queries.GetPackingPlanQueryHandler

	// Scan link signing
	scanTokens  services.ScanTokenService
	scanLinkTTL time.Duration
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerOrderHandler commands.RegisterOrderCommandHandler,
	packOrderHandler commands.PackOrderCommandHandler,
	createShelfSlotHandler commands.CreateShelfSlotCommandHandler,
	stagePackageHandler commands.StagePackageCommandHandler,
	movePackageHandler commands.MovePackageCommandHandler,
	unstagePackageHandler commands.UnstagePackageCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	dispatchHandler commands.DispatchShipmentCommandHandler,
	recordScanHandler commands.RecordScanCommandHandler,
	mintTokenHandler commands.MintArrivalTokenCommandHandler,
	confirmArrivalHandler commands.ConfirmArrivalCommandHandler,
	shipmentProgressHandler queries.GetShipmentProgressQueryHandler,
	freeSlotsHandler queries.GetFreeSlotsQueryHandler,
	packingPlanHandler queries.GetPackingPlanQueryHandler,
	scanTokens services.ScanTokenService,
	scanLinkTTL time.Duration,
) *Server {
	return &Server{
		registerOrderHandler:    registerOrderHandler,
		packOrderHandler:        packOrderHandler,
		createShelfSlotHandler:  createShelfSlotHandler,
		stagePackageHandler:     stagePackageHandler,
		movePackageHandler:      movePackageHandler,
		unstagePackageHandler:   unstagePackageHandler,
		createShipmentHandler:   createShipmentHandler,
		dispatchHandler:         dispatchHandler,
		recordScanHandler:       recordScanHandler,
		mintTokenHandler:        mintTokenHandler,
		confirmArrivalHandler:   confirmArrivalHandler,
		shipmentProgressHandler: shipmentProgressHandler,
		freeSlotsHandler:        freeSlotsHandler,
		packingPlanHandler:      packingPlanHandler,
		scanTokens:              scanTokens,
		scanLinkTTL:             scanLinkTTL,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/orders", s.RegisterOrder)
	api.POST("/orders/:orderId/pack", s.PackOrder)
	api.GET("/orders/:orderId/packing-plan", s.GetPackingPlan)

	api.POST("/shelf-slots", s.CreateShelfSlot)
	api.GET("/logistic-centers/:centerId/free-slots", s.GetFreeSlots)

	api.POST("/packages", s.StagePackage)
	api.POST("/packages/:packageId/move", s.MovePackage)
	api.POST("/packages/:packageId/unstage", s.UnstagePackage)

	api.POST("/shipments", s.CreateShipment)
	api.POST("/shipments/:shipmentId/dispatch", s.DispatchShipment)
	api.POST("/shipments/:shipmentId/scans", s.RecordScan)
	api.GET("/shipments/:shipmentId/progress", s.GetShipmentProgress)
	api.POST("/shipments/:shipmentId/arrival-token", s.MintArrivalToken)
	api.POST("/shipments/:shipmentId/scan-link", s.IssueScanLink)

	// Public endpoints reached via token links
	api.POST("/arrivals/:token/confirm", s.ConfirmArrival)
	api.GET("/scan-links/:token", s.ResolveScanLink)
}

// RegisterOrder handles POST /api/v1/orders - registers an order with its line items.
func (s *Server) RegisterOrder(ctx echo.Context) error {
	var req RegisterOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	lineItems := make([]packing.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItem, err := packing.NewLineItem(item.ProduceType, parseMode(item.Mode), item.QuantityKg, item.UnitCount)
		if err != nil {
			return badRequest(ctx, "Invalid line item: "+err.Error())
		}
		lineItems = append(lineItems, lineItem)
	}

	cmd, err := commands.NewRegisterOrderCommand(orderID, lineItems)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.registerOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterOrderResponse{OrderID: orderID.String()})
}

// PackOrder handles POST /api/v1/orders/:orderId/pack - plans and persists pieces.
func (s *Server) PackOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewPackOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	pieces, err := s.packOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	response := PackOrderResponse{Pieces: make([]PieceResponse, 0, len(pieces))}
	for _, piece := range pieces {
		response.Pieces = append(response.Pieces, PieceResponse{
			ID:          piece.ID().String(),
			ProduceType: piece.ProduceType(),
			Mode:        piece.Mode().String(),
			Units:       piece.Units(),
			EstWeightKg: piece.EstWeightKg(),
			Liters:      piece.Liters(),
			Sequence:    piece.Sequence(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPackingPlan handles GET /api/v1/orders/:orderId/packing-plan.
func (s *Server) GetPackingPlan(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetPackingPlanQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	plan, err := s.packingPlanHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	response := PackOrderResponse{Pieces: make([]PieceResponse, 0, len(plan))}
	for _, piece := range plan {
		response.Pieces = append(response.Pieces, PieceResponse{
			ID:          piece.ID.String(),
			ProduceType: piece.ProduceType,
			Mode:        piece.Mode,
			Units:       piece.Units,
			EstWeightKg: piece.EstWeightKg,
			Liters:      piece.Liters,
			Sequence:    piece.Sequence,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateShelfSlot handles POST /api/v1/shelf-slots - registers a staging slot.
func (s *Server) CreateShelfSlot(ctx echo.Context) error {
	var req CreateShelfSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	centerID, err := kernel.UUIDFromString(req.LogisticCenterID)
	if err != nil {
		return badRequest(ctx, "Invalid logistic center id")
	}

	cmd, err := commands.NewCreateShelfSlotCommand(centerID, req.Zone, req.Code)
	if err != nil {
		return badRequest(ctx, "Invalid slot data: "+err.Error())
	}

	slotID, err := s.createShelfSlotHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShelfSlotResponse{SlotID: slotID.String()})
}

// GetFreeSlots handles GET /api/v1/logistic-centers/:centerId/free-slots.
func (s *Server) GetFreeSlots(ctx echo.Context) error {
	centerID, err := kernel.UUIDFromString(ctx.Param("centerId"))
	if err != nil {
		return badRequest(ctx, "Invalid logistic center id")
	}

	query, err := queries.NewGetFreeSlotsQuery(centerID)
	if err != nil {
		return badRequest(ctx, "Invalid logistic center id")
	}

	slots, err := s.freeSlotsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	response := make([]FreeSlotResponse, 0, len(slots))
	for _, slot := range slots {
		response = append(response, FreeSlotResponse{
			ID:   slot.ID.String(),
			Zone: slot.Zone,
			Code: slot.Code,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// StagePackage handles POST /api/v1/packages - consolidates pieces and claims a slot.
func (s *Server) StagePackage(ctx echo.Context) error {
	var req StagePackageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	centerID, err := kernel.UUIDFromString(req.LogisticCenterID)
	if err != nil {
		return badRequest(ctx, "Invalid logistic center id")
	}

	cmd, err := commands.NewStagePackageCommand(orderID, centerID, req.ShiftName)
	if err != nil {
		return badRequest(ctx, "Invalid staging data: "+err.Error())
	}

	result, err := s.stagePackageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, StagePackageResponse{
		PackageID:   result.PackageID.String(),
		ShelfSlotID: result.ShelfSlotID.String(),
	})
}

// MovePackage handles POST /api/v1/packages/:packageId/move.
func (s *Server) MovePackage(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, "Invalid package id")
	}

	var req MovePackageRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	toSlotID, err := kernel.UUIDFromString(req.ToSlotID)
	if err != nil {
		return badRequest(ctx, "Invalid slot id")
	}

	cmd, err := commands.NewMovePackageCommand(packageID, toSlotID)
	if err != nil {
		return badRequest(ctx, "Invalid move data: "+err.Error())
	}

	if err = s.movePackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// UnstagePackage handles POST /api/v1/packages/:packageId/unstage.
func (s *Server) UnstagePackage(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, "Invalid package id")
	}

	cmd, err := commands.NewUnstagePackageCommand(packageID)
	if err != nil {
		return badRequest(ctx, "Invalid package id")
	}

	if err = s.unstagePackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateShipment handles POST /api/v1/shipments - builds a shipment from containers.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	containers := make([]commands.ContainerInput, 0, len(req.Containers))
	for _, c := range req.Containers {
		containers = append(containers, commands.ContainerInput{
			Barcode:     c.Barcode,
			ProduceType: c.ProduceType,
			Quantity:    c.Quantity,
		})
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, orderID, containers)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{ShipmentID: shipmentID.String()})
}

// DispatchShipment handles POST /api/v1/shipments/:shipmentId/dispatch.
func (s *Server) DispatchShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewDispatchShipmentCommand(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	if err = s.dispatchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// RecordScan handles POST /api/v1/shipments/:shipmentId/scans.
func (s *Server) RecordScan(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req RecordScanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordScanCommand(shipmentID, req.Barcode, req.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid scan data: "+err.Error())
	}

	progress, err := s.recordScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ScanProgressResponse{
		Total:   progress.Total,
		Scanned: progress.Scanned,
	})
}

// GetShipmentProgress handles GET /api/v1/shipments/:shipmentId/progress.
func (s *Server) GetShipmentProgress(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentProgressQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	progress, err := s.shipmentProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	response := ShipmentProgressResponse{
		ShipmentID: progress.ShipmentID.String(),
		Status:     progress.Status,
		Total:      progress.Total,
		Scanned:    progress.Scanned,
		Containers: make([]ContainerScanStateResponse, 0, len(progress.Containers)),
	}
	for _, c := range progress.Containers {
		response.Containers = append(response.Containers, ContainerScanStateResponse{
			Barcode:   c.Barcode,
			Scanned:   c.Scanned,
			ScannedBy: c.ScannedBy,
			ScannedAt: c.ScannedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// MintArrivalToken handles POST /api/v1/shipments/:shipmentId/arrival-token.
// The token appears in the response body only; it is never logged.
func (s *Server) MintArrivalToken(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewMintArrivalTokenCommand(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	result, err := s.mintTokenHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, MintArrivalTokenResponse{
		Token:     result.Token,
		URL:       result.URL,
		ExpiresAt: result.ExpiresAt,
	})
}

// ConfirmArrival handles POST /api/v1/arrivals/:token/confirm.
// All token failures produce the same generic 401 so the response never
// reveals whether a guessed value exists, expired or was already used.
func (s *Server) ConfirmArrival(ctx echo.Context) error {
	cmd, err := commands.NewConfirmArrivalCommand(ctx.Param("token"))
	if err != nil {
		return unauthorized(ctx)
	}

	result, err := s.confirmArrivalHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ConfirmArrivalResponse{
		OK:         true,
		ShipmentID: result.ShipmentID.String(),
	})
}

// IssueScanLink handles POST /api/v1/shipments/:shipmentId/scan-link -
// issues a signed read-only link for the shipment.
func (s *Server) IssueScanLink(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	token, err := s.scanTokens.Issue("shipment", shipmentID, s.scanLinkTTL)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to issue scan link",
		})
	}

	return ctx.JSON(http.StatusCreated, ScanLinkResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.scanLinkTTL),
	})
}

// ResolveScanLink handles GET /api/v1/scan-links/:token - validates a
// signed link and returns the entity it references.
func (s *Server) ResolveScanLink(ctx echo.Context) error {
	link, err := s.scanTokens.Resolve(ctx.Param("token"))
	if err != nil {
		return unauthorized(ctx)
	}

	return ctx.JSON(http.StatusOK, ResolvedScanLinkResponse{
		EntityType: link.EntityType,
		EntityID:   link.EntityID.String(),
		ExpiresAt:  link.ExpiresAt,
	})
}

// domainError maps domain and application errors onto HTTP status codes.
// Token errors collapse into one generic 401 body regardless of cause.
func (s *Server) domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, shipment.ErrTokenNotFound),
		errors.Is(err, shipment.ErrTokenExpired),
		errors.Is(err, shipment.ErrTokenAlreadyUsed),
		errors.Is(err, services.ErrInvalidSignature),
		errors.Is(err, services.ErrScanTokenExpired):
		return unauthorized(ctx)

	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrPackageNotFound),
		errors.Is(err, commands.ErrSlotNotFound),
		errors.Is(err, commands.ErrShipmentNotFound),
		errors.Is(err, commands.ErrNoPiecesFound),
		errors.Is(err, shipment.ErrContainerNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})

	case errors.Is(err, commands.ErrNoCapacity),
		errors.Is(err, staging.ErrSlotOccupied),
		errors.Is(err, staging.ErrPackageNotInSlot),
		errors.Is(err, staging.ErrPackageNotStaged),
		errors.Is(err, shipment.ErrInvalidShipmentState),
		errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})

	case errors.Is(err, packing.ErrInvalidLineItem),
		errors.Is(err, errs.ErrValueIsRequired):
		return badRequest(ctx, err.Error())

	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Invalid or expired token",
	})
}

func parseMode(mode string) packing.Mode {
	switch mode {
	case "kg":
		return packing.ModeKg
	case "units":
		return packing.ModeUnits
	default:
		return packing.ModeUnknown
	}
}

package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/adapters/in/http/api"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	orderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	orderApprover interface {
		Handle(ctx context.Context, cmd commands.ApproveOrderCommand) (order.Status, error)
	}
	orderAllocator interface {
		Handle(ctx context.Context, cmd commands.AllocateOrderCommand) (commands.AllocateOrderResult, error)
	}
	inventoryRestocker interface {
		Handle(ctx context.Context, cmd commands.RestockInventoryCommand) (int, error)
	}
	shipmentCreator interface {
		Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (*shipment.Shipment, error)
	}
	shipmentReserver interface {
		Handle(ctx context.Context, cmd commands.ReserveShipmentCommand) ([]errs.Shortage, error)
	}
	shipmentAdvancer interface {
		Handle(ctx context.Context, cmd commands.AdvanceShipmentCommand) (shipment.Status, error)
	}
	custodyTransferrer interface {
		Handle(ctx context.Context, cmd commands.TransferCustodyCommand) (commands.TransferCustodyResult, error)
	}
	handoffConfirmer interface {
		Handle(ctx context.Context, cmd commands.ConfirmHandoffCommand) (commands.ConfirmHandoffResult, error)
	}
	userRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) error
	}
	orderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	shipmentReader interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (queries.GetShipmentQueryResponse, error)
	}
	historyReader interface {
		Handle(ctx context.Context, query queries.GetSubjectHistoryQuery) ([]queries.EventView, error)
	}
)

// Handlers are the use cases the HTTP API exposes.
type Handlers struct {
	CreateOrder     orderCreator
	ApproveOrder    orderApprover
	AllocateOrder   orderAllocator
	Restock         inventoryRestocker
	CreateShipment  shipmentCreator
	ReserveShipment shipmentReserver
	AdvanceShipment shipmentAdvancer
	TransferCustody custodyTransferrer
	ConfirmHandoff  handoffConfirmer
	RegisterUser    userRegistrar
	GetOrder        orderReader
	GetShipment     shipmentReader
	GetHistory      historyReader
}

// Server implements api.ServerInterface on top of the use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http-server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body api.NewOrder
	if err := s.bind(ctx, &body); err != nil {
		return failure(ctx, err)
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		id, err := kernel.UUIDFromBytes(body.Id[:])
		if err != nil {
			return failure(ctx, err)
		}
		orderID = id
	}

	lines := make([]commands.OrderLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		lines = append(lines, commands.OrderLineInput{
			SKU:            l.Sku,
			Quantity:       l.Quantity,
			UnitOfMeasure:  l.UnitOfMeasure,
			UnitPriceMinor: l.UnitPriceMinor,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, lines)
	if err != nil {
		return failure(ctx, err)
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return success(ctx, http.StatusCreated, api.OrderStatus{
		OrderId: orderID.Bytes(),
		Status:  order.Draft.String(),
	})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return failure(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return failure(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]api.OrderLine, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, api.OrderLine{
			Id:            l.ID.Bytes(),
			Sku:           l.SKU,
			Quantity:      l.Quantity,
			UnitOfMeasure: l.UnitOfMeasure,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
			Status:        l.Status,
		})
	}

	return success(ctx, http.StatusOK, api.Order{
		Id:     view.ID.Bytes(),
		Status: view.Status,
		Lines:  lines,
		Total:  view.Total,
	})
}

// ApproveOrder handles POST /api/v1/orders/{id}/approve.
func (s *Server) ApproveOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return failure(ctx, err)
	}
	cmd, err := commands.NewApproveOrderCommand(orderID)
	if err != nil {
		return failure(ctx, err)
	}

	status, err := s.h.ApproveOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return success(ctx, http.StatusOK, api.OrderStatus{OrderId: id, Status: status.String()})
}

// AllocateOrder handles POST /api/v1/orders/{id}/allocate.
func (s *Server) AllocateOrder(ctx echo.Context, id openapi_types.UUID, params api.AllocateOrderParams) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return failure(ctx, err)
	}
	// Approval is part of the allocate flow unless the caller opts out.
	autoApprove := params.AutoApprove == nil || *params.AutoApprove

	cmd, err := commands.NewAllocateOrderCommand(orderID, autoApprove)
	if err != nil {
		return failure(ctx, err)
	}

	result, err := s.h.AllocateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	grants := make([]api.Grant, 0, len(result.Grants))
	for _, g := range result.Grants {
		grant := api.Grant{
			LineId:    g.LineID.Bytes(),
			Sku:       g.SKU.String(),
			Requested: g.Requested,
			Granted:   g.Granted,
		}
		if g.RemainderID != nil {
			remainder := openapi_types.UUID(g.RemainderID.Bytes())
			grant.RemainderId = &remainder
		}
		grants = append(grants, grant)
	}

	return success(ctx, http.StatusOK, api.Allocation{
		OrderId: id,
		Status:  result.Status.String(),
		Grants:  grants,
	})
}

// GetOrderHistory handles GET /api/v1/orders/{id}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, id openapi_types.UUID) error {
	return s.history(ctx, id.String())
}

// RestockInventory handles POST /api/v1/inventory/{sku}/restock.
func (s *Server) RestockInventory(ctx echo.Context, sku string) error {
	var body api.Restock
	if err := s.bind(ctx, &body); err != nil {
		return failure(ctx, err)
	}

	cmd, err := commands.NewRestockInventoryCommand(sku, body.Quantity)
	if err != nil {
		return failure(ctx, err)
	}

	available, err := s.h.Restock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return success(ctx, http.StatusOK, api.StockLevel{Sku: cmd.SKU().String(), Available: available})
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body api.NewShipment
	if err := s.bind(ctx, &body); err != nil {
		return failure(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	if body.Id != nil {
		id, err := kernel.UUIDFromBytes(body.Id[:])
		if err != nil {
			return failure(ctx, err)
		}
		shipmentID = id
	}

	var (
		cmd commands.CreateShipmentCommand
		err error
	)
	if body.OrderId != nil {
		orderID, idErr := kernel.UUIDFromBytes(body.OrderId[:])
		if idErr != nil {
			return failure(ctx, idErr)
		}
		cmd, err = commands.NewCreateShipmentFromOrderCommand(shipmentID, orderID)
	} else {
		lines := make([]commands.ShipmentLineInput, 0, len(body.Lines))
		for _, l := range body.Lines {
			lines = append(lines, commands.ShipmentLineInput{SKU: l.Sku, Quantity: l.Quantity})
		}
		cmd, err = commands.NewCreateShipmentCommand(shipmentID, lines)
	}
	if err != nil {
		return failure(ctx, err)
	}

	created, err := s.h.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return success(ctx, http.StatusCreated, shipmentToAPI(created))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return failure(ctx, err)
	}
	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return failure(ctx, err)
	}

	view, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.Shipment{
		Id:      view.ID.Bytes(),
		Status:  view.Status,
		Lines:   make([]api.ShipmentLine, 0, len(view.Lines)),
		Custody: custodyToAPI(view.Custody),
	}
	if view.OrderID != nil {
		orderID := openapi_types.UUID(view.OrderID.Bytes())
		response.OrderId = &orderID
	}
	for _, l := range view.Lines {
		response.Lines = append(response.Lines, api.ShipmentLine{
			Id:        l.ID.Bytes(),
			Sku:       l.SKU,
			Requested: l.Requested,
			Reserved:  l.Reserved,
			Shortfall: l.Shortfall,
		})
	}

	return success(ctx, http.StatusOK, response)
}

// GetShipmentHistory handles GET /api/v1/shipments/{id}/history.
func (s *Server) GetShipmentHistory(ctx echo.Context, id openapi_types.UUID) error {
	return s.history(ctx, id.String())
}

// ReserveShipment handles POST /api/v1/shipments/{id}/reserve.
func (s *Server) ReserveShipment(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return failure(ctx, err)
	}
	cmd, err := commands.NewReserveShipmentCommand(shipmentID)
	if err != nil {
		return failure(ctx, err)
	}

	shortages, err := s.h.ReserveShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.Reservation{ShipmentId: id, Shortages: make([]api.Shortage, 0, len(shortages))}
	for _, sh := range shortages {
		response.Shortages = append(response.Shortages, api.Shortage{
			Sku:       sh.SKU,
			Requested: sh.Requested,
			Reserved:  sh.Reserved,
		})
	}

	return success(ctx, http.StatusOK, response)
}

func (s *Server) PickShipment(ctx echo.Context, id openapi_types.UUID) error {
	return s.advance(ctx, id, shipment.ActionPick)
}

func (s *Server) PackShipment(ctx echo.Context, id openapi_types.UUID) error {
	return s.advance(ctx, id, shipment.ActionPack)
}

// DispatchShipment answers 409 when reserved stock does not cover every line.
func (s *Server) DispatchShipment(ctx echo.Context, id openapi_types.UUID) error {
	return s.advance(ctx, id, shipment.ActionDispatch)
}

func (s *Server) DeliverShipment(ctx echo.Context, id openapi_types.UUID) error {
	return s.advance(ctx, id, shipment.ActionDeliver)
}

// TransferCustody handles POST /api/v1/nfc/transfer/{shipmentId}. Every
// failure, unknown shipment included, is a 400.
func (s *Server) TransferCustody(ctx echo.Context, shipmentId openapi_types.UUID, params api.TransferCustodyParams) error {
	shipmentID, err := kernel.UUIDFromBytes(shipmentId[:])
	if err != nil {
		return failureWithStatus(ctx, http.StatusBadRequest, err)
	}

	key := ""
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}

	cmd, err := commands.NewTransferCustodyCommand(shipmentID, key)
	if err != nil {
		return failureWithStatus(ctx, http.StatusBadRequest, err)
	}

	result, err := s.h.TransferCustody.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logIfInternal(ctx, err)
		return failureWithStatus(ctx, http.StatusBadRequest, err)
	}

	return success(ctx, http.StatusOK, result)
}

// ConfirmHandoff handles POST /api/v1/nfc/handshake. The body is flat rather
// than enveloped, as scanners expect.
func (s *Server) ConfirmHandoff(ctx echo.Context) error {
	var body api.Handshake
	if err := s.bind(ctx, &body); err != nil {
		return handshakeFailure(ctx, err)
	}

	shipmentID, err := kernel.UUIDFromBytes(body.ShipmentId[:])
	if err != nil {
		return handshakeFailure(ctx, err)
	}
	cmd, err := commands.NewConfirmHandoffCommand(body.NfcTagId, shipmentID)
	if err != nil {
		return handshakeFailure(ctx, err)
	}

	result, err := s.h.ConfirmHandoff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logIfInternal(ctx, err)
		return handshakeFailure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, api.HandshakeResult{
		Success:   true,
		Message:   result.Message,
		NewStatus: result.NewStatus.String(),
		User: &api.HandoffUser{
			Id:   result.User.ID.Bytes(),
			Name: result.User.Name,
		},
	})
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body api.NewUser
	if err := s.bind(ctx, &body); err != nil {
		return failure(ctx, err)
	}

	userID := kernel.NewUUID()
	if body.Id != nil {
		id, err := kernel.UUIDFromBytes(body.Id[:])
		if err != nil {
			return failure(ctx, err)
		}
		userID = id
	}

	cmd, err := commands.NewRegisterUserCommand(userID, body.EmployeeId, body.DisplayName)
	if err != nil {
		return failure(ctx, err)
	}
	if err = s.h.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return success(ctx, http.StatusCreated, api.User{
		Id:          userID.Bytes(),
		EmployeeId:  body.EmployeeId,
		DisplayName: body.DisplayName,
	})
}

func (s *Server) advance(ctx echo.Context, id openapi_types.UUID, action shipment.Action) error {
	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return failure(ctx, err)
	}
	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, string(action))
	if err != nil {
		return failure(ctx, err)
	}

	status, err := s.h.AdvanceShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return success(ctx, http.StatusOK, api.ShipmentStatus{ShipmentId: id, Status: status.String()})
}

func (s *Server) history(ctx echo.Context, subjectID string) error {
	query, err := queries.NewGetSubjectHistoryQuery(subjectID)
	if err != nil {
		return failure(ctx, err)
	}

	events, err := s.h.GetHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Event, 0, len(events))
	for _, e := range events {
		response = append(response, api.Event{
			Id:         e.ID.Bytes(),
			Type:       e.Type,
			Sequence:   e.Sequence,
			OccurredAt: e.OccurredAt,
			Payload:    e.Payload,
		})
	}

	return success(ctx, http.StatusOK, response)
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := ctx.Validate(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// fail logs unexpected errors before writing them.
func (s *Server) fail(ctx echo.Context, err error) error {
	s.logIfInternal(ctx, err)
	return failure(ctx, err)
}

func (s *Server) logIfInternal(ctx echo.Context, err error) {
	if errs.KindOf(err) == errs.KindInternal {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
	}
}

func handshakeFailure(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, api.HandshakeResult{Success: false, Error: errorBody(err)})
}

func shipmentToAPI(s *shipment.Shipment) api.Shipment {
	response := api.Shipment{
		Id:      s.ID().Bytes(),
		Status:  s.Status().String(),
		Lines:   make([]api.ShipmentLine, 0, len(s.Lines())),
		Custody: custodyToAPI(s.Custody()),
	}
	if s.OrderID() != nil {
		orderID := openapi_types.UUID(s.OrderID().Bytes())
		response.OrderId = &orderID
	}
	for _, l := range s.Lines() {
		response.Lines = append(response.Lines, api.ShipmentLine{
			Id:        l.ID().Bytes(),
			Sku:       l.SKU().String(),
			Requested: l.Requested(),
			Reserved:  l.Reserved(),
			Shortfall: max(l.Shortfall(), 0),
		})
	}
	return response
}

func custodyToAPI(records []shipment.CustodyRecord) []api.CustodyEntry {
	entries := make([]api.CustodyEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, api.CustodyEntry{
			Action:   r.Action,
			Actor:    r.Actor,
			At:       r.At,
			Location: r.Location,
			From:     r.From,
			To:       r.To,
		})
	}
	return entries
}

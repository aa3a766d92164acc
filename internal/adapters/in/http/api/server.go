package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface has one method per operation of the document.
type ServerInterface interface {
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	ApproveOrder(ctx echo.Context, id openapi_types.UUID) error
	AllocateOrder(ctx echo.Context, id openapi_types.UUID, params AllocateOrderParams) error
	GetOrderHistory(ctx echo.Context, id openapi_types.UUID) error
	RestockInventory(ctx echo.Context, sku string) error
	CreateShipment(ctx echo.Context) error
	GetShipment(ctx echo.Context, id openapi_types.UUID) error
	GetShipmentHistory(ctx echo.Context, id openapi_types.UUID) error
	ReserveShipment(ctx echo.Context, id openapi_types.UUID) error
	PickShipment(ctx echo.Context, id openapi_types.UUID) error
	PackShipment(ctx echo.Context, id openapi_types.UUID) error
	DispatchShipment(ctx echo.Context, id openapi_types.UUID) error
	DeliverShipment(ctx echo.Context, id openapi_types.UUID) error
	TransferCustody(ctx echo.Context, shipmentId openapi_types.UUID, params TransferCustodyParams) error
	ConfirmHandoff(ctx echo.Context) error
	RegisterUser(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) ApproveOrder(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ApproveOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) AllocateOrder(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}

	var params AllocateOrderParams
	if err = runtime.BindQueryParameter("form", true, false, "autoApprove", ctx.QueryParams(), &params.AutoApprove); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter autoApprove: %s", err))
	}

	return w.Handler.AllocateOrder(ctx, id, params)
}

func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderHistory(ctx, id)
}

func (w *ServerInterfaceWrapper) RestockInventory(ctx echo.Context) error {
	var sku string
	err := runtime.BindStyledParameterWithOptions("simple", "sku", ctx.Param("sku"), &sku,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sku: %s", err))
	}
	return w.Handler.RestockInventory(ctx, sku)
}

func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	return w.Handler.CreateShipment(ctx)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) GetShipmentHistory(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetShipmentHistory(ctx, id)
}

func (w *ServerInterfaceWrapper) ReserveShipment(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ReserveShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) PickShipment(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.PickShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) PackShipment(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.PackShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) DispatchShipment(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DispatchShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) DeliverShipment(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeliverShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) TransferCustody(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx, "shipmentId")
	if err != nil {
		return err
	}

	var params TransferCustodyParams
	if values := ctx.Request().Header.Values("Idempotency-Key"); len(values) == 1 {
		var key string
		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", values[0], &key,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}
		params.IdempotencyKey = &key
	} else if len(values) > 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Expected one value for Idempotency-Key")
	}

	return w.Handler.TransferCustody(ctx, id, params)
}

func (w *ServerInterfaceWrapper) ConfirmHandoff(ctx echo.Context) error {
	return w.Handler.ConfirmHandoff(ctx)
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func bindUUIDPath(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", w.CreateOrder)
	router.GET("/api/v1/orders/:id", w.GetOrder)
	router.POST("/api/v1/orders/:id/approve", w.ApproveOrder)
	router.POST("/api/v1/orders/:id/allocate", w.AllocateOrder)
	router.GET("/api/v1/orders/:id/history", w.GetOrderHistory)
	router.POST("/api/v1/inventory/:sku/restock", w.RestockInventory)
	router.POST("/api/v1/shipments", w.CreateShipment)
	router.GET("/api/v1/shipments/:id", w.GetShipment)
	router.GET("/api/v1/shipments/:id/history", w.GetShipmentHistory)
	router.POST("/api/v1/shipments/:id/reserve", w.ReserveShipment)
	router.POST("/api/v1/shipments/:id/pick", w.PickShipment)
	router.POST("/api/v1/shipments/:id/pack", w.PackShipment)
	router.POST("/api/v1/shipments/:id/dispatch", w.DispatchShipment)
	router.POST("/api/v1/shipments/:id/deliver", w.DeliverShipment)
	router.POST("/api/v1/nfc/transfer/:shipmentId", w.TransferCustody)
	router.POST("/api/v1/nfc/handshake", w.ConfirmHandoff)
	router.POST("/api/v1/users", w.RegisterUser)
}

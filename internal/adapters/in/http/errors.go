package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/adapters/in/http/api"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidTransition, errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindInsufficientReserved:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) *api.Error {
	kind := errs.KindOf(err)
	body := &api.Error{Kind: string(kind), Message: err.Error()}

	if kind == errs.KindInternal {
		body.Message = "internal error"
	}

	var short *errs.InsufficientReservedError
	if errors.As(err, &short) {
		shortages := make([]api.Shortage, 0, len(short.Shortages))
		for _, s := range short.Shortages {
			shortages = append(shortages, api.Shortage{Sku: s.SKU, Requested: s.Requested, Reserved: s.Reserved})
		}
		body.Details = shortages
	}

	return body
}

func success(ctx echo.Context, status int, data any) error {
	return ctx.JSON(status, api.Envelope{Success: true, Data: data})
}

// failure writes err with the status of its kind.
func failure(ctx echo.Context, err error) error {
	return failureWithStatus(ctx, statusOf(errs.KindOf(err)), err)
}

func failureWithStatus(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, api.Envelope{Success: false, Error: errorBody(err)})
}

// HTTPErrorHandler renders echo's own errors (unknown route, bad parameter
// format, validation middleware) in the envelope.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal error"
	kind := errs.KindInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
		switch {
		case status == http.StatusNotFound:
			kind = errs.KindNotFound
		case status < http.StatusInternalServerError:
			kind = errs.KindValidation
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(status)
		return
	}
	_ = ctx.JSON(status, api.Envelope{
		Success: false,
		Error:   &api.Error{Kind: string(kind), Message: message},
	})
}

package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func getStatusRules() []struct {
	status  int
	targets []error
} {
	return []struct {
		status  int
		targets []error
	}{
		{http.StatusNotFound, []error{
			commands.ErrRouteNotFound,
			commands.ErrDriverNotFound,
			queries.ErrRouteNotFound,
			queries.ErrDriverNotFound,
			route.ErrItemNotFound,
			errs.ErrObjectNotFound,
		}},
		{http.StatusConflict, []error{
			route.ErrInvalidTransition,
			route.ErrRouteIsClosed,
			route.ErrRouteNotAccepting,
			route.ErrRouteIsFull,
			route.ErrSecondLargeItem,
			route.ErrDriverCannotCarry,
			route.ErrItemAlreadyOnRoute,
			commands.ErrItemAlreadyAssigned,
			driver.ErrDriverIsBusy,
			driver.ErrDriverIsInactive,
		}},
		{http.StatusBadRequest, []error{
			driver.ErrInvalidProfile,
			errs.ErrValueIsRequired,
			errs.ErrValueIsInvalid,
			errs.ErrValueIsOutOfRange,
		}},
	}
}

func statusFor(err error) int {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	for _, rule := range getStatusRules() {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.status
			}
		}
	}
	return http.StatusInternalServerError
}

func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = http.StatusText(status)
	}
	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}

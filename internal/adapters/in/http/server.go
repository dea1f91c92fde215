// Package http exposes the assignment engine over HTTP with echo. Handlers
// bind and validate requests, call one command or query, and map domain
// errors to status codes.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the server calls.
type Handlers struct {
	RegisterDriver   commands.RegisterDriverCommandHandler
	DeactivateDriver commands.DeactivateDriverCommandHandler
	SubmitItem       commands.SubmitItemCommandHandler
	RemoveItem       commands.RemoveItemCommandHandler
	SetRouteStatus   commands.SetRouteStatusCommandHandler

	GetRoute            queries.GetRouteQueryHandler
	GetDriverRoutes     queries.GetDriverRoutesQueryHandler
	FindEligibleDrivers queries.FindEligibleDriversQueryHandler
	GetPendingItems     queries.GetPendingItemsQueryHandler
	GetStats            queries.GetStatsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts every route on e and installs the request validator
// unless e already has one.
func (s *Server) Register(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = NewRequestValidator()
	}

	e.GET("/health", s.Health)

	e.POST("/drivers", s.RegisterDriver)
	e.GET("/drivers/eligible", s.FindEligibleDrivers)
	e.POST("/drivers/:id/deactivate", s.DeactivateDriver)
	e.GET("/drivers/:id/routes", s.GetDriverRoutes)

	e.POST("/items", s.SubmitItem)
	e.GET("/items/pending", s.GetPendingItems)

	e.GET("/routes/:id", s.GetRoute)
	e.PUT("/routes/:id/status", s.SetRouteStatus)
	e.DELETE("/routes/:id/items/:itemId", s.RemoveItem)

	e.GET("/stats", s.GetStats)
}

func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterDriver handles POST /drivers.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var req RegisterDriverRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	profile, err := req.toProfile()
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := s.h.RegisterDriver.Handle(ctx.Request().Context(), commands.NewRegisterDriverCommand(profile))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterDriverResponse{
		DriverID:    uint64(res.DriverID),
		Assignments: newAssignmentResponses(res.Assignments),
	})
}

// DeactivateDriver handles POST /drivers/:id/deactivate.
func (s *Server) DeactivateDriver(ctx echo.Context) error {
	id, err := kernel.ParseDriverID(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeactivateDriverCommand(id)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.DeactivateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverRoutes handles GET /drivers/:id/routes.
func (s *Server) GetDriverRoutes(ctx echo.Context) error {
	id, err := kernel.ParseDriverID(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDriverRoutesQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}
	views, err := s.h.GetDriverRoutes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]RouteResponse, 0, len(views))
	for _, v := range views {
		response = append(response, newRouteResponse(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// FindEligibleDrivers handles GET /drivers/eligible?size=large.
func (s *Server) FindEligibleDrivers(ctx echo.Context) error {
	size, err := item.ParseSize(ctx.QueryParam("size"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewFindEligibleDriversQuery(size)
	if err != nil {
		return respondError(ctx, err)
	}
	ids, err := s.h.FindEligibleDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := EligibleDriversResponse{Size: size.String(), DriverIDs: make([]uint64, 0, len(ids))}
	for _, id := range ids {
		response.DriverIDs = append(response.DriverIDs, uint64(id))
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubmitItem handles POST /items. A placed item answers 201; an item left in
// the queue answers 202.
func (s *Server) SubmitItem(ctx echo.Context) error {
	var req SubmitItemRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	params, err := req.toParams()
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewSubmitItemCommand(params)
	if err != nil {
		return respondError(ctx, err)
	}

	assignment, err := s.h.SubmitItem.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, services.ErrNoEligibleDriver) {
		return ctx.JSON(http.StatusAccepted, SubmitItemResponse{
			ItemID: params.ID.String(),
			Status: itemQueued,
		})
	}
	if err != nil {
		return respondError(ctx, err)
	}

	a := newAssignmentResponse(assignment)
	return ctx.JSON(http.StatusCreated, SubmitItemResponse{
		ItemID:     params.ID.String(),
		Status:     itemAssigned,
		Assignment: &a,
	})
}

// GetPendingItems handles GET /items/pending.
func (s *Server) GetPendingItems(ctx echo.Context) error {
	views, err := s.h.GetPendingItems.Handle(ctx.Request().Context(), queries.NewGetPendingItemsQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newItemResponses(views))
}

// GetRoute handles GET /routes/:id.
func (s *Server) GetRoute(ctx echo.Context) error {
	id, err := kernel.ParseRouteID(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRouteQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}
	view, err := s.h.GetRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newRouteResponse(view))
}

// SetRouteStatus handles PUT /routes/:id/status.
func (s *Server) SetRouteStatus(ctx echo.Context) error {
	id, err := kernel.ParseRouteID(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req SetRouteStatusRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	status, err := route.ParseStatus(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetRouteStatusCommand(id, status)
	if err != nil {
		return respondError(ctx, err)
	}
	res, err := s.h.SetRouteStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SetRouteStatusResponse{
		RouteID:     uint64(id),
		Status:      res.Status.String(),
		Requeued:    res.Requeued,
		Assignments: newAssignmentResponses(res.Assignments),
	})
}

// RemoveItem handles DELETE /routes/:id/items/:itemId.
func (s *Server) RemoveItem(ctx echo.Context) error {
	routeID, err := kernel.ParseRouteID(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	itemID, err := kernel.ParseUUID(ctx.Param("itemId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req RemoveItemRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveItemCommand(routeID, itemID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}
	if _, err = s.h.RemoveItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStats handles GET /stats.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.h.GetStats.Handle(ctx.Request().Context(), queries.NewGetStatsQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newStatsResponse(stats))
}

func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}

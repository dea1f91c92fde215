package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type GetRouteQueryHandler struct {
	reader ports.StateReader
}

func NewGetRouteQueryHandler(reader ports.StateReader) GetRouteQueryHandler {
	return GetRouteQueryHandler{reader: reader}
}

// Handle returns ErrRouteNotFound for unknown ids.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (RouteView, error) {
	if err := query.Validate(); err != nil {
		return RouteView{}, err
	}

	var out RouteView
	err := h.reader.Read(ctx, func(view ports.StateView) error {
		r, err := view.Route(query.RouteID())
		if err != nil {
			return err
		}
		out = newRouteView(r)
		return nil
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		return RouteView{}, ErrRouteNotFound
	}
	if err != nil {
		return RouteView{}, err
	}

	return out, nil
}

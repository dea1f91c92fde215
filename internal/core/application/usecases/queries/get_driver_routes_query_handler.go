package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type GetDriverRoutesQueryHandler struct {
	reader ports.StateReader
}

func NewGetDriverRoutesQueryHandler(reader ports.StateReader) GetDriverRoutesQueryHandler {
	return GetDriverRoutesQueryHandler{reader: reader}
}

// Handle returns ErrDriverNotFound for unknown drivers and an empty slice for
// drivers without routes.
func (h GetDriverRoutesQueryHandler) Handle(ctx context.Context, query GetDriverRoutesQuery) ([]RouteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	out := make([]RouteView, 0)
	err := h.reader.Read(ctx, func(view ports.StateView) error {
		if _, err := view.Driver(query.DriverID()); err != nil {
			return err
		}
		for _, r := range view.RoutesByDriver(query.DriverID()) {
			out = append(out, newRouteView(r))
		}
		return nil
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}
